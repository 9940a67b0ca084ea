package workbook

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

//go:embed default_schema.yaml
var defaultSchemaYAML []byte

// SchemaConfig is the root structure of a schema file.
type SchemaConfig struct {
	Collections []CollectionDef `yaml:"collections"`
}

// CollectionDef describes one sheet of the workbook.
type CollectionDef struct {
	Name    string   `yaml:"name"`
	Key     string   `yaml:"key,omitempty"`
	Label   string   `yaml:"label,omitempty"`
	Title   string   `yaml:"title,omitempty"`
	Link    string   `yaml:"link,omitempty"`
	Columns []string `yaml:"columns"`
	Filters []string `yaml:"filters,omitempty"`
	Search  []string `yaml:"search,omitempty"`
}

// DefaultSchema returns the embedded layout of the four known collections.
func DefaultSchema() (SchemaConfig, error) {
	return ParseSchema(defaultSchemaYAML)
}

// LoadSchema reads a schema file. An empty path selects the embedded default.
func LoadSchema(path string) (SchemaConfig, error) {
	if path == "" {
		return DefaultSchema()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SchemaConfig{}, fmt.Errorf("failed to read schema file: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema decodes schema YAML and checks that names and keys are unique.
func ParseSchema(data []byte) (SchemaConfig, error) {
	var cfg SchemaConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SchemaConfig{}, fmt.Errorf("failed to parse schema yaml: %w", err)
	}
	if len(cfg.Collections) == 0 {
		return SchemaConfig{}, fmt.Errorf("schema declares no collections")
	}

	names := make(map[string]bool, len(cfg.Collections))
	keys := make(map[string]bool, len(cfg.Collections))
	for _, def := range cfg.Collections {
		if strings.TrimSpace(def.Name) == "" {
			return SchemaConfig{}, fmt.Errorf("schema collection without name")
		}
		s := def.Schema()
		if names[s.Name] {
			return SchemaConfig{}, fmt.Errorf("duplicate collection name %q", s.Name)
		}
		if keys[s.Key] {
			return SchemaConfig{}, fmt.Errorf("duplicate collection key %q", s.Key)
		}
		names[s.Name] = true
		keys[s.Key] = true
	}
	return cfg, nil
}

// Schema converts the definition to a domain schema, filling defaults:
// key from the slugified name, label from the name, "Title" and "Link"
// for the title and link columns, and every column as searchable.
func (d CollectionDef) Schema() domain.Schema {
	s := domain.Schema{
		Name:          d.Name,
		Key:           d.Key,
		Label:         d.Label,
		Columns:       d.Columns,
		FilterColumns: d.Filters,
		SearchColumns: d.Search,
		TitleColumn:   d.Title,
		LinkColumn:    d.Link,
	}
	if s.Key == "" {
		s.Key = Slugify(d.Name)
	}
	if s.Label == "" {
		s.Label = d.Name
	}
	if s.TitleColumn == "" {
		s.TitleColumn = "Title"
	}
	if s.LinkColumn == "" {
		s.LinkColumn = "Link"
	}
	if len(s.SearchColumns) == 0 {
		s.SearchColumns = searchableDefault(s.Columns, s.LinkColumn)
	}
	return s
}

// searchableDefault makes every displayed text column searchable except the link.
func searchableDefault(columns []string, link string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == link {
			continue
		}
		out = append(out, c)
	}
	return out
}

// foldAccents decomposes letters and drops combining marks: "é" -> "e".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a sheet name into a URL-safe ASCII key.
// Example: "ROC & RD Adjudication" -> "roc-rd-adjudication"
func Slugify(name string) string {
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(folded)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
