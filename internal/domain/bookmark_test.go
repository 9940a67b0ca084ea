package domain

import "testing"

func TestAddBookmark(t *testing.T) {
	set := []Bookmark{}

	set, res := AddBookmark(set, Bookmark{Type: "Articles", Title: "One", Link: "http://x/doc.pdf"})
	if res != Added {
		t.Fatalf("first add = %v, want added", res)
	}

	// Different collection and title, same link.
	next, res := AddBookmark(set, Bookmark{Type: "Judgements", Title: "Two", Link: "http://x/doc.pdf"})
	if res != AlreadyExists {
		t.Errorf("second add = %v, want already-exists", res)
	}
	if len(next) != 1 {
		t.Errorf("set size = %d, want 1", len(next))
	}
}

func TestAddResultString(t *testing.T) {
	for res, want := range map[AddResult]string{
		Added:         "added",
		AlreadyExists: "already-exists",
		Invalid:       "invalid",
	} {
		if got := res.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(res), got, want)
		}
	}
}

func TestAddBookmarkDoesNotAlias(t *testing.T) {
	base := make([]Bookmark, 1, 4)
	base[0] = Bookmark{Link: "a"}

	a, _ := AddBookmark(base, Bookmark{Link: "b"})
	b, _ := AddBookmark(base, Bookmark{Link: "c"})

	if a[1].Link != "b" || b[1].Link != "c" {
		t.Errorf("results alias each other: %v %v", a, b)
	}
}

func TestRemoveBookmarkAt(t *testing.T) {
	set := []Bookmark{{Link: "a"}, {Link: "b"}, {Link: "c"}}

	tests := []struct {
		name     string
		index    int
		expected RemoveResult
		size     int
	}{
		{name: "middle", index: 1, expected: Removed, size: 2},
		{name: "negative", index: -1, expected: NotFound, size: 3},
		{name: "past the end", index: 3, expected: NotFound, size: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, res := RemoveBookmarkAt(set, tt.index)
			if res != tt.expected {
				t.Errorf("result = %v, want %v", res, tt.expected)
			}
			if len(out) != tt.size {
				t.Errorf("size = %d, want %d", len(out), tt.size)
			}
		})
	}

	if len(set) != 3 || set[1].Link != "b" {
		t.Errorf("input set modified: %v", set)
	}
}

func TestReferenceBookmark(t *testing.T) {
	r := Record{Collection: "Updates", Title: "Circular", Link: "https://example.com/u.pdf"}
	b := r.Reference().Bookmark()
	if b.Type != "Updates" || b.Title != "Circular" || b.Link != "https://example.com/u.pdf" {
		t.Errorf("unexpected bookmark %+v", b)
	}
	if !b.Valid() {
		t.Error("bookmark with link should be valid")
	}
	if (Bookmark{Title: "x"}).Valid() {
		t.Error("bookmark without link should be invalid")
	}
}

func TestRecordPlaceholders(t *testing.T) {
	r := Record{Fields: map[string]string{"Author": "A"}}
	if r.Display("Author") != "A" {
		t.Errorf("Display(Author) = %q", r.Display("Author"))
	}
	if r.Display("Section") != PlaceholderText {
		t.Errorf("Display(Section) = %q, want placeholder", r.Display("Section"))
	}
	if r.DisplayTitle() != PlaceholderTitle {
		t.Errorf("DisplayTitle() = %q, want placeholder", r.DisplayTitle())
	}
	if r.HasLink() {
		t.Error("HasLink() = true for record without link")
	}
}
