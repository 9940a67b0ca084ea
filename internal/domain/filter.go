package domain

import (
	"sort"
	"strings"
)

// AllOption is the sentinel filter value meaning "no filter on this column".
const AllOption = "All"

// Criteria maps a column name to the selected value.
// Missing columns, empty values and AllOption do not filter.
type Criteria map[string]string

// Active returns a copy holding only the constraining entries.
func (c Criteria) Active() Criteria {
	out := make(Criteria, len(c))
	for col, val := range c {
		if val == "" || val == AllOption {
			continue
		}
		out[col] = val
	}
	return out
}

// Clone returns an independent copy of the criteria.
func (c Criteria) Clone() Criteria {
	out := make(Criteria, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// FilterOption is one selectable value of a filter column.
type FilterOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// IsBlank reports whether a search term should be ignored.
func IsBlank(term string) bool {
	return strings.TrimSpace(term) == ""
}

// Apply narrows a collection by equality criteria and a free-text term.
//
// Both constraints are ANDed. The source collection is never modified;
// the result is always a new slice, empty when nothing matches.
func Apply(c *Collection, criteria Criteria, term string) []Record {
	if c == nil {
		return []Record{}
	}
	return Filter(c.Records, criteria, term, c.Schema.SearchColumns)
}

// Filter is Apply over a plain record slice with an explicit searchable set.
func Filter(records []Record, criteria Criteria, term string, searchColumns []string) []Record {
	active := criteria.Active()
	search := !IsBlank(term)
	needle := strings.ToLower(term)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !MatchesCriteria(r, active) {
			continue
		}
		if search && !matchesLower(r, needle, searchColumns) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MatchesCriteria reports whether r satisfies every active criterion.
// A column absent from the record never equals a selection.
func MatchesCriteria(r Record, criteria Criteria) bool {
	for col, want := range criteria {
		if want == "" || want == AllOption {
			continue
		}
		got, ok := r.Value(col)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// MatchesTerm reports whether any searchable column of r contains term,
// ignoring case.
func MatchesTerm(r Record, term string, searchColumns []string) bool {
	return matchesLower(r, strings.ToLower(term), searchColumns)
}

func matchesLower(r Record, needle string, searchColumns []string) bool {
	for _, col := range searchColumns {
		v, ok := r.Value(col)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// Options returns the distinct present values of column, sorted ascending,
// with the number of records holding each value.
func Options(records []Record, column string) []FilterOption {
	counts := make(map[string]int)
	for _, r := range records {
		if v, ok := r.Value(column); ok {
			counts[v]++
		}
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)

	opts := make([]FilterOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, FilterOption{Value: v, Count: counts[v]})
	}
	return opts
}
