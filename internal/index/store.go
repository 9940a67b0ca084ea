package index

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

var (
	// ErrUnknownCollection is returned for a key no loaded collection has.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrNotLoaded is returned by lookups before Load succeeded.
	ErrNotLoaded = errors.New("record store not loaded")
)

// Loader reads the full catalog from its source.
type Loader interface {
	Load() (*domain.Catalog, error)
}

// RecordStore holds the loaded collections in memory.
// The source is read once; every later call serves the same catalog.
type RecordStore struct {
	loader Loader

	once     sync.Once
	mu       sync.RWMutex
	catalog  *domain.Catalog
	options  map[string]map[string][]domain.FilterOption // collection key -> column -> options
	loadErr  error
	loadedAt time.Time
}

// NewRecordStore creates a store reading from loader.
func NewRecordStore(loader Loader) *RecordStore {
	return &RecordStore{loader: loader}
}

// Load reads the source on the first call and returns the cached result
// afterwards, including a cached error.
func (s *RecordStore) Load() (*domain.Catalog, error) {
	s.once.Do(func() {
		catalog, err := s.loader.Load()
		if err != nil {
			s.setLoadErr(fmt.Errorf("failed to load collections: %w", err))
			return
		}
		s.set(catalog)
	})

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.loadErr
}

func (s *RecordStore) setLoadErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

func (s *RecordStore) set(catalog *domain.Catalog) {
	options := make(map[string]map[string][]domain.FilterOption, catalog.Len())
	for _, col := range catalog.Collections() {
		byColumn := make(map[string][]domain.FilterOption, len(col.Schema.FilterColumns))
		for _, column := range col.Schema.FilterColumns {
			byColumn[column] = domain.Options(col.Records, column)
		}
		options[col.Key()] = byColumn
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog
	s.options = options
	s.loadedAt = time.Now()
}

// Catalog returns the loaded catalog, or nil before Load.
func (s *RecordStore) Catalog() *domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Collection retrieves a collection by key
func (s *RecordStore) Collection(key string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil, ErrNotLoaded
	}
	col, ok := s.catalog.Collection(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, key)
	}
	return col, nil
}

// Collections returns every collection in registration order
func (s *RecordStore) Collections() []*domain.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return []*domain.Collection{}
	}
	return s.catalog.Collections()
}

// Options returns the cached filter options of a collection, keyed by
// filter column. The returned map is a copy.
func (s *RecordStore) Options(key string) (map[string][]domain.FilterOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return nil, ErrNotLoaded
	}
	byColumn, ok := s.options[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, key)
	}
	out := make(map[string][]domain.FilterOption, len(byColumn))
	for col, opts := range byColumn {
		out[col] = opts
	}
	return out, nil
}

// Count returns the number of records across all collections
func (s *RecordStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog == nil {
		return 0
	}
	return s.catalog.RecordCount()
}

// Loaded reports whether the catalog is available.
func (s *RecordStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog != nil
}

// LoadedAt returns the timestamp of the successful load
func (s *RecordStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
