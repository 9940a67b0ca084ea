package handlers

import (
	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

type collectionSummary struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Records       int      `json:"records"`
	Columns       []string `json:"columns"`
	FilterColumns []string `json:"filter_columns"`
}

type cellResponse struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

type rowResponse struct {
	Title      string           `json:"title"`
	Link       string           `json:"link,omitempty"`
	LinkLabel  string           `json:"link_label"`
	Cells      []cellResponse   `json:"cells"`
	Bookmarked bool             `json:"bookmarked"`
	Reference  domain.Reference `json:"reference"`
}

type filterResponse struct {
	Column   string                `json:"column"`
	Selected string                `json:"selected"`
	Options  []domain.FilterOption `json:"options"`
}

type viewResponse struct {
	Collection collectionSummary `json:"collection"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
	PageSize   int               `json:"page_size"`
	Search     string            `json:"search"`
	Filters    []filterResponse  `json:"filters"`
	Rows       []rowResponse     `json:"rows"`
}

type groupResponse struct {
	Key   string        `json:"key"`
	Name  string        `json:"name"`
	Label string        `json:"label"`
	Count int           `json:"count"`
	Rows  []rowResponse `json:"rows"`
}

type searchResponse struct {
	Query  string          `json:"query"`
	Total  int             `json:"total"`
	Groups []groupResponse `json:"groups"`
}

func summarize(c *domain.Collection) collectionSummary {
	return collectionSummary{
		Key:           c.Key(),
		Name:          c.Name(),
		Label:         c.Label(),
		Records:       c.Len(),
		Columns:       nonNil(c.Schema.Columns),
		FilterColumns: nonNil(c.Schema.FilterColumns),
	}
}

// toRows renders records with placeholders. Title and link columns are
// exposed as dedicated fields, every other schema column as a cell.
func toRows(schema domain.Schema, records []domain.Record, bookmarked map[string]bool) []rowResponse {
	rows := make([]rowResponse, 0, len(records))
	for _, rec := range records {
		cells := make([]cellResponse, 0, len(schema.Columns))
		for _, col := range schema.Columns {
			if col == schema.TitleColumn || col == schema.LinkColumn {
				continue
			}
			cells = append(cells, cellResponse{Column: col, Value: rec.Display(col)})
		}

		linkLabel := domain.PlaceholderLink
		if rec.HasLink() {
			linkLabel = rec.Link
		}

		rows = append(rows, rowResponse{
			Title:      rec.DisplayTitle(),
			Link:       rec.Link,
			LinkLabel:  linkLabel,
			Cells:      cells,
			Bookmarked: rec.HasLink() && bookmarked[rec.Link],
			Reference:  rec.Reference(),
		})
	}
	return rows
}

func toView(v domain.View, options map[string][]domain.FilterOption, bookmarked map[string]bool) viewResponse {
	schema := v.Collection.Schema

	filters := make([]filterResponse, 0, len(schema.FilterColumns))
	for _, col := range schema.FilterColumns {
		selected := domain.AllOption
		if val, ok := v.Criteria[col]; ok {
			selected = val
		}
		opts := options[col]
		if opts == nil {
			opts = []domain.FilterOption{}
		}
		filters = append(filters, filterResponse{Column: col, Selected: selected, Options: opts})
	}

	return viewResponse{
		Collection: summarize(v.Collection),
		Page:       v.Page,
		TotalPages: v.TotalPages,
		Total:      v.Total,
		PageSize:   domain.PageSize,
		Search:     v.Search,
		Filters:    filters,
		Rows:       toRows(schema, v.Records, bookmarked),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
