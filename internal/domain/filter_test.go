package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Title)
	}
	return out
}

func TestApply(t *testing.T) {
	col := sampleArticles()

	tests := []struct {
		name     string
		criteria Criteria
		term     string
		expected []string
	}{
		{
			name:     "no criteria no term returns everything",
			expected: []string{"Board Meetings Explained", "Related Party Transactions", "Independent Directors", "CSR Spending"},
		},
		{
			name:     "single equality filter",
			criteria: Criteria{"Author": "A. Rao"},
			expected: []string{"Board Meetings Explained", "Independent Directors"},
		},
		{
			name:     "All sentinel does not filter",
			criteria: Criteria{"Author": AllOption, "Month": ""},
			expected: []string{"Board Meetings Explained", "Related Party Transactions", "Independent Directors", "CSR Spending"},
		},
		{
			name:     "filters compose with AND",
			criteria: Criteria{"Author": "A. Rao", "Section": "149"},
			expected: []string{"Independent Directors"},
		},
		{
			name:     "filter is case sensitive",
			criteria: Criteria{"Month": "january"},
			expected: []string{},
		},
		{
			name:     "absent field never equals a selection",
			criteria: Criteria{"Author": "B. Shah"},
			expected: []string{"Related Party Transactions"},
		},
		{
			name:     "unknown column matches nothing",
			criteria: Criteria{"Nope": "x"},
			expected: []string{},
		},
		{
			name:     "search is case insensitive substring",
			term:     "DIRECTOR",
			expected: []string{"Independent Directors"},
		},
		{
			name:     "search looks at every searchable column",
			term:     "rao",
			expected: []string{"Board Meetings Explained", "Independent Directors"},
		},
		{
			name:     "search ignores non searchable columns",
			term:     "12",
			expected: []string{},
		},
		{
			name:     "blank term is ignored",
			term:     "   ",
			expected: []string{"Board Meetings Explained", "Related Party Transactions", "Independent Directors", "CSR Spending"},
		},
		{
			name:     "filter and search combined",
			criteria: Criteria{"Month": "January"},
			term:     "board",
			expected: []string{"Board Meetings Explained"},
		},
		{
			name:     "section with no record yields empty result",
			criteria: Criteria{"Section": "25"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(col, tt.criteria, tt.term)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, titles(got))
		})
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	col := sampleArticles()
	before := titles(col.Records)

	got := Apply(col, Criteria{"Author": "A. Rao"}, "")
	require.Len(t, got, 2)
	got[0] = Record{Title: "changed"}

	assert.Equal(t, before, titles(col.Records))
}

func TestApplySubsetAndIdempotent(t *testing.T) {
	col := sampleArticles()
	criteria := []Criteria{
		{},
		{"Author": "A. Rao"},
		{"Month": "January", "Section": "173"},
		{"Section": "999"},
	}

	for _, c := range criteria {
		first := Apply(col, c, "")

		for _, r := range first {
			assert.Contains(t, titles(col.Records), r.Title)
		}

		again := Apply(&Collection{Schema: col.Schema, Records: first}, c, "")
		assert.Equal(t, titles(first), titles(again))
	}
}

func TestApplyOrderIndependent(t *testing.T) {
	col := sampleArticles()
	criteria := Criteria{"Month": "January"}

	combined := Apply(col, criteria, "rao")
	searchFirst := Apply(&Collection{Schema: col.Schema, Records: Apply(col, nil, "rao")}, criteria, "")

	assert.Equal(t, titles(combined), titles(searchFirst))
}

func TestApplyNilCollection(t *testing.T) {
	got := Apply(nil, Criteria{"a": "b"}, "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOptions(t *testing.T) {
	col := sampleArticles()

	got := Options(col.Records, "Month")
	assert.Equal(t, []FilterOption{
		{Value: "February", Count: 1},
		{Value: "January", Count: 2},
		{Value: "March", Count: 1},
	}, got)

	// Absent values contribute nothing.
	authors := Options(col.Records, "Author")
	assert.Equal(t, []FilterOption{
		{Value: "A. Rao", Count: 2},
		{Value: "B. Shah", Count: 1},
	}, authors)

	assert.Empty(t, Options(col.Records, "Unknown"))
}

func TestCriteriaActive(t *testing.T) {
	c := Criteria{"a": "x", "b": AllOption, "c": ""}
	assert.Equal(t, Criteria{"a": "x"}, c.Active())
	assert.Len(t, c, 3)
}
