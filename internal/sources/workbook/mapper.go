package workbook

import (
	"strings"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

// Mapper converts raw sheet rows to domain records
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapRows converts a sheet (header row first) to records of the given schema.
//
// Header cells are matched to schema columns ignoring case and surrounding
// spaces. Schema columns missing from the header, blank cells and short
// rows all leave the field absent. Rows without any value are skipped.
func (m *Mapper) MapRows(schema domain.Schema, rows [][]string) []domain.Record {
	if len(rows) == 0 {
		return []domain.Record{}
	}

	columnAt := headerColumns(schema.Columns, rows[0])
	records := make([]domain.Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		fields := make(map[string]string, len(schema.Columns))
		for i, cell := range row {
			col, ok := columnAt[i]
			if !ok {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			fields[col] = cell
		}

		if len(fields) == 0 {
			continue
		}

		records = append(records, domain.Record{
			Collection: schema.Name,
			Title:      fields[schema.TitleColumn],
			Link:       fields[schema.LinkColumn],
			Fields:     fields,
		})
	}

	return records
}

// InferSchema builds a schema for a sheet the schema file does not know:
// every non-blank header becomes a searchable column and no filter is offered.
func (m *Mapper) InferSchema(sheet string, header []string) domain.Schema {
	columns := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || seen[normalizeHeader(h)] {
			continue
		}
		seen[normalizeHeader(h)] = true
		columns = append(columns, h)
	}

	def := CollectionDef{
		Name:    sheet,
		Columns: columns,
		Title:   findColumn(columns, "Title"),
		Link:    findColumn(columns, "Link"),
	}
	return def.Schema()
}

// headerColumns maps header cell positions to schema column names.
func headerColumns(columns []string, header []string) map[int]string {
	byName := make(map[string]string, len(columns))
	for _, c := range columns {
		byName[normalizeHeader(c)] = c
	}

	out := make(map[int]string, len(header))
	taken := make(map[string]bool, len(header))
	for i, h := range header {
		col, ok := byName[normalizeHeader(h)]
		if !ok || taken[col] {
			continue
		}
		taken[col] = true
		out[i] = col
	}
	return out
}

// findColumn returns the column equal to want ignoring case, or want itself.
func findColumn(columns []string, want string) string {
	for _, c := range columns {
		if normalizeHeader(c) == normalizeHeader(want) {
			return c
		}
	}
	return want
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
