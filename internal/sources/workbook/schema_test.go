package workbook

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSchema(t *testing.T) {
	cfg, err := DefaultSchema()
	if err != nil {
		t.Fatalf("DefaultSchema() error = %v", err)
	}

	want := []struct {
		name    string
		key     string
		filters int
	}{
		{"Articles", "articles", 3},
		{"Judgements", "judgements", 2},
		{"Updates", "updates", 2},
		{"ROC & RD Adjudication", "roc-rd-adjudication", 3},
	}
	if len(cfg.Collections) != len(want) {
		t.Fatalf("DefaultSchema() has %d collections, want %d", len(cfg.Collections), len(want))
	}
	for i, w := range want {
		s := cfg.Collections[i].Schema()
		if s.Name != w.name || s.Key != w.key || len(s.FilterColumns) != w.filters {
			t.Errorf("collection[%d] = %s/%s/%d filters, want %s/%s/%d",
				i, s.Name, s.Key, len(s.FilterColumns), w.name, w.key, w.filters)
		}
	}
}

func TestLoadSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := `collections:
  - name: Circulars
    columns: [Title, Issuer, Link]
    filters: [Issuer]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	cfg, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("LoadSchema() error = %v", err)
	}
	s := cfg.Collections[0].Schema()
	if s.Key != "circulars" || s.Label != "Circulars" {
		t.Errorf("defaults not applied: %+v", s)
	}
	if len(s.SearchColumns) != 2 {
		t.Errorf("SearchColumns = %v, want Title and Issuer", s.SearchColumns)
	}
}

func TestParseSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "invalid yaml", yaml: "collections: [:"},
		{name: "no collections", yaml: "collections: []"},
		{name: "missing name", yaml: "collections:\n  - columns: [Title]\n"},
		{name: "duplicate key", yaml: "collections:\n  - name: A B\n  - name: a-b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSchema([]byte(tt.yaml)); err == nil {
				t.Error("ParseSchema() should return error")
			}
		})
	}
}

func TestLoadSchemaFileNotFound(t *testing.T) {
	if _, err := LoadSchema("/nonexistent/schema.yaml"); err == nil {
		t.Error("LoadSchema() with missing file should return error")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Articles", "articles"},
		{"ROC & RD Adjudication", "roc-rd-adjudication"},
		{"  Mixed  Case 2024 ", "mixed-case-2024"},
		{"&&&", ""},
		{"Régularisation Orders", "regularisation-orders"},
		{"Société Générale", "societe-generale"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
