// Package bookmarks keeps the user's bookmark set in memory and writes
// every change through to a persistence backend.
package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
	"github.com/MrSnakeDoc/csfinder/internal/logger"
)

// ErrInvalidBookmark is returned for a bookmark without a link.
var ErrInvalidBookmark = errors.New("bookmark has no link")

// Persister reads and writes the full bookmark set.
type Persister interface {
	Read(ctx context.Context) ([]domain.Bookmark, error)
	Write(ctx context.Context, bookmarks []domain.Bookmark) error
	Name() string
}

// Service is the Bookmark Store. It is safe for concurrent use.
type Service struct {
	mu        sync.RWMutex
	set       []domain.Bookmark
	persister Persister
	log       logger.Logger
}

// NewService creates an empty service. Call Load to read the persisted set.
func NewService(persister Persister, log logger.Logger) *Service {
	return &Service{
		set:       []domain.Bookmark{},
		persister: persister,
		log:       log,
	}
}

// Backend returns the persister name.
func (s *Service) Backend() string {
	return s.persister.Name()
}

// Load replaces the in-memory set with the persisted one.
// Unreadable or corrupt state yields an empty set and a warning.
func (s *Service) Load(ctx context.Context) int {
	set, err := s.persister.Read(ctx)
	if err != nil {
		s.log.Warn("bookmarks unreadable, starting with an empty set",
			logger.String("backend", s.persister.Name()),
			logger.Error(err))
		set = []domain.Bookmark{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	return len(set)
}

// List returns a copy of the set in insertion order.
func (s *Service) List() []domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Bookmark, len(s.set))
	copy(out, s.set)
	return out
}

// Count returns the number of bookmarks.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.set)
}

// Contains reports whether a bookmark holds link.
func (s *Service) Contains(link string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.IndexOfLink(s.set, link) >= 0
}

// Links returns the set of bookmarked links.
func (s *Service) Links() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]bool, len(s.set))
	for _, b := range s.set {
		out[b.Link] = true
	}
	return out
}

// Add appends b unless its link is already bookmarked. The full set is
// persisted before Add returns; on failure the set is left unchanged.
func (s *Service) Add(ctx context.Context, b domain.Bookmark) (domain.AddResult, error) {
	if !b.Valid() {
		return domain.Invalid, ErrInvalidBookmark
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, res := domain.AddBookmark(s.set, b)
	if res == domain.AlreadyExists {
		return res, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return res, err
	}
	return res, nil
}

// Remove drops the bookmark at index (0-based, insertion order).
func (s *Service) Remove(ctx context.Context, index int) (domain.RemoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, res := domain.RemoveBookmarkAt(s.set, index)
	if res == domain.NotFound {
		return res, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return res, err
	}
	return res, nil
}

// RemoveLink drops the bookmark holding link.
func (s *Service) RemoveLink(ctx context.Context, link string) (domain.RemoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, res := domain.RemoveBookmarkAt(s.set, domain.IndexOfLink(s.set, link))
	if res == domain.NotFound {
		return res, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return res, err
	}
	return res, nil
}

// Toggle bookmarks the referenced record, or removes it when its link is
// already bookmarked. It reports whether the record is bookmarked afterwards.
func (s *Service) Toggle(ctx context.Context, ref domain.Reference) (bool, error) {
	b := ref.Bookmark()
	if !b.Valid() {
		return false, ErrInvalidBookmark
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.IndexOfLink(s.set, b.Link); i >= 0 {
		next, _ := domain.RemoveBookmarkAt(s.set, i)
		if err := s.commit(ctx, next); err != nil {
			return true, err
		}
		return false, nil
	}

	next, _ := domain.AddBookmark(s.set, b)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// commit persists next and swaps it in. Caller holds the write lock.
func (s *Service) commit(ctx context.Context, next []domain.Bookmark) error {
	if err := s.persister.Write(ctx, next); err != nil {
		s.log.Error("failed to persist bookmarks",
			logger.String("backend", s.persister.Name()),
			logger.Error(err))
		return fmt.Errorf("persist bookmarks: %w", err)
	}
	s.set = next
	return nil
}
