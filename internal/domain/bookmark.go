package domain

import "strings"

// Bookmark is a persisted user selection of a record reference.
// Bookmarks form a set keyed by Link alone: type and title are ignored
// when checking for duplicates.
type Bookmark struct {
	// Type is the name of the collection the record came from.
	// Example: Judgements
	Type string `json:"type" yaml:"type"`

	// Title is the record title at the time it was bookmarked.
	Title string `json:"title" yaml:"title"`

	// Link is the external document URI and the set key.
	// Example: https://example.com/docs/cs-2024-01.pdf
	Link string `json:"link" yaml:"link"`
}

// Valid reports whether the bookmark can be stored.
func (b Bookmark) Valid() bool {
	return strings.TrimSpace(b.Link) != ""
}

// AddResult is the outcome of adding a bookmark.
type AddResult int

const (
	Added AddResult = iota
	AlreadyExists
	// Invalid is returned for a bookmark without a link.
	Invalid
)

func (r AddResult) String() string {
	switch r {
	case AlreadyExists:
		return "already-exists"
	case Invalid:
		return "invalid"
	default:
		return "added"
	}
}

// RemoveResult is the outcome of removing a bookmark.
type RemoveResult int

const (
	Removed RemoveResult = iota
	NotFound
)

func (r RemoveResult) String() string {
	if r == NotFound {
		return "not-found"
	}
	return "removed"
}

// IndexOfLink returns the position of the bookmark holding link, or -1.
func IndexOfLink(set []Bookmark, link string) int {
	for i, b := range set {
		if b.Link == link {
			return i
		}
	}
	return -1
}

// AddBookmark appends b unless its link is already present.
// The input slice is never modified.
func AddBookmark(set []Bookmark, b Bookmark) ([]Bookmark, AddResult) {
	if IndexOfLink(set, b.Link) >= 0 {
		return set, AlreadyExists
	}
	out := make([]Bookmark, 0, len(set)+1)
	out = append(out, set...)
	out = append(out, b)
	return out, Added
}

// RemoveBookmarkAt drops the entry at index.
// The input slice is never modified.
func RemoveBookmarkAt(set []Bookmark, index int) ([]Bookmark, RemoveResult) {
	if index < 0 || index >= len(set) {
		return set, NotFound
	}
	out := make([]Bookmark, 0, len(set)-1)
	out = append(out, set[:index]...)
	out = append(out, set[index+1:]...)
	return out, Removed
}
