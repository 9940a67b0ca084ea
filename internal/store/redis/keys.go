package redis

const (
	// DefaultKeyPrefix namespaces every key written by the store
	DefaultKeyPrefix = "csfinder:"

	keyBookmarks = "bookmarks"
)

// BookmarksKey returns the key holding the full bookmark set as JSON
func (s *Store) BookmarksKey() string {
	return s.prefix + keyBookmarks
}
