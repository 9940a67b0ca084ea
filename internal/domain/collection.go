package domain

// Schema describes the fixed column layout of a collection.
// It is implicit: rows are never validated against it.
type Schema struct {
	// Name is the source sheet name, also used as bookmark type.
	Name string

	// Key is the URL-safe identifier of the collection.
	Key string

	// Label is the human-readable heading.
	Label string

	// Columns lists every known column in display order.
	Columns []string

	// FilterColumns are the columns offered as equality filters.
	FilterColumns []string

	// SearchColumns are the columns inspected by free-text search.
	SearchColumns []string

	// TitleColumn and LinkColumn name the columns holding the
	// record title and document link.
	TitleColumn string
	LinkColumn  string
}

// HasFilterColumn reports whether column is a declared filter column.
func (s Schema) HasFilterColumn(column string) bool {
	for _, c := range s.FilterColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Collection is a named, ordered, immutable sequence of records.
type Collection struct {
	Schema  Schema
	Records []Record
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.Schema.Name }

// Key returns the URL-safe collection key.
func (c *Collection) Key() string { return c.Schema.Key }

// Label returns the display label, falling back to the name.
func (c *Collection) Label() string {
	if c.Schema.Label != "" {
		return c.Schema.Label
	}
	return c.Schema.Name
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.Records) }

// Catalog holds every loaded collection in registration order.
type Catalog struct {
	order []*Collection
	byKey map[string]*Collection
}

// NewCatalog builds a catalog. Registration order is the order of cols.
func NewCatalog(cols ...*Collection) *Catalog {
	c := &Catalog{
		order: make([]*Collection, 0, len(cols)),
		byKey: make(map[string]*Collection, len(cols)),
	}
	for _, col := range cols {
		c.order = append(c.order, col)
		c.byKey[col.Key()] = col
	}
	return c
}

// Collections returns the collections in registration order.
func (c *Catalog) Collections() []*Collection {
	out := make([]*Collection, len(c.order))
	copy(out, c.order)
	return out
}

// Collection looks a collection up by key.
func (c *Catalog) Collection(key string) (*Collection, bool) {
	col, ok := c.byKey[key]
	return col, ok
}

// Len returns the number of collections.
func (c *Catalog) Len() int { return len(c.order) }

// RecordCount returns the number of records across all collections.
func (c *Catalog) RecordCount() int {
	n := 0
	for _, col := range c.order {
		n += col.Len()
	}
	return n
}
