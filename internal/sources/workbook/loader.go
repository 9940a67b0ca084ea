package workbook

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

// ErrMissingSheet is returned when a schema collection has no sheet in the workbook.
var ErrMissingSheet = errors.New("sheet missing from workbook")

// Loader handles loading of the collection workbook (.xlsx)
type Loader struct {
	filePath string
	schema   SchemaConfig
	mapper   *Mapper
}

// NewLoader creates a new workbook loader
func NewLoader(filePath string, schema SchemaConfig) *Loader {
	return &Loader{
		filePath: filePath,
		schema:   schema,
		mapper:   NewMapper(),
	}
}

// Load reads every sheet of the workbook into a catalog.
//
// Schema collections come first in schema order, followed by any other
// sheet in workbook order. A missing file, an unreadable sheet, or a schema
// collection without a sheet is an error.
func (l *Loader) Load() (*domain.Catalog, error) {
	f, err := excelize.OpenFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = f.Close() // read-only, nothing to flush
	}()

	sheets := f.GetSheetList()
	present := make(map[string]bool, len(sheets))
	for _, s := range sheets {
		present[s] = true
	}

	collections := make([]*domain.Collection, 0, len(sheets))
	known := make(map[string]bool, len(l.schema.Collections))
	keys := make(map[string]bool, len(sheets))

	for _, def := range l.schema.Collections {
		if !present[def.Name] {
			return nil, fmt.Errorf("%w: %q", ErrMissingSheet, def.Name)
		}
		rows, err := f.GetRows(def.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", def.Name, err)
		}

		schema := def.Schema()
		known[def.Name] = true
		keys[schema.Key] = true
		collections = append(collections, &domain.Collection{
			Schema:  schema,
			Records: l.mapper.MapRows(schema, rows),
		})
	}

	for _, sheet := range sheets {
		if known[sheet] {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		var header []string
		if len(rows) > 0 {
			header = rows[0]
		}

		schema := l.mapper.InferSchema(sheet, header)
		schema.Key = uniqueKey(schema.Key, keys)
		keys[schema.Key] = true
		collections = append(collections, &domain.Collection{
			Schema:  schema,
			Records: l.mapper.MapRows(schema, rows),
		})
	}

	return domain.NewCatalog(collections...), nil
}

// uniqueKey appends a numeric suffix until key is not taken.
func uniqueKey(key string, taken map[string]bool) string {
	if key == "" {
		key = "sheet"
	}
	if !taken[key] {
		return key
	}
	for i := 2; ; i++ {
		candidate := key + "-" + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}
