package domain

const (
	// PlaceholderText is displayed for blank or missing cells.
	PlaceholderText = "—"
	// PlaceholderTitle is displayed for records without a title.
	PlaceholderTitle = "Untitled"
	// PlaceholderLink is displayed for records without a document link.
	PlaceholderLink = "No link"
)

// Record is one row of a collection.
//
// Records are immutable once loaded. A column that is blank in the source
// is simply absent from Fields: it never matches a filter or a search term
// and is rendered with a placeholder.
type Record struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// Collection is the name of the owning collection (sheet name).
	Collection string

	// Title is the record title, empty when the cell was blank.
	Title string

	// Link is the URI of the external document, empty when absent.
	Link string

	// ─────────────────────────────
	// Row content
	// ─────────────────────────────

	// Fields holds every non-blank cell keyed by schema column,
	// including the title and link columns.
	Fields map[string]string
}

// Value returns the text of a column and whether it is present.
func (r Record) Value(column string) (string, bool) {
	v, ok := r.Fields[column]
	return v, ok
}

// Display returns the text of a column, or a placeholder when absent.
func (r Record) Display(column string) string {
	if v, ok := r.Fields[column]; ok {
		return v
	}
	return PlaceholderText
}

// DisplayTitle returns the title or PlaceholderTitle.
func (r Record) DisplayTitle() string {
	if r.Title == "" {
		return PlaceholderTitle
	}
	return r.Title
}

// HasLink reports whether the record points to a document.
func (r Record) HasLink() bool {
	return r.Link != ""
}

// Reference returns the (collection, title, link) key of the record.
func (r Record) Reference() Reference {
	return Reference{
		Collection: r.Collection,
		Title:      r.Title,
		Link:       r.Link,
	}
}

// Reference identifies a record outside of its collection.
// No record field is guaranteed unique, so the triple is used as the key.
type Reference struct {
	Collection string `json:"collection"`
	Title      string `json:"title"`
	Link       string `json:"link"`
}

// Bookmark converts the reference to a persisted bookmark.
func (r Reference) Bookmark() Bookmark {
	return Bookmark{
		Type:  r.Collection,
		Title: r.Title,
		Link:  r.Link,
	}
}
