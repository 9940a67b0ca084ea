package domain

// ResultGroup is the set of matches of one collection in a global search.
type ResultGroup struct {
	Collection string
	Key        string
	Label      string
	Records    []Record
}

// SearchAll runs term over every collection of the catalog, each with its
// own searchable columns and no filter criteria.
//
// Groups follow registration order and collections without matches are
// left out. A blank term yields no groups.
func SearchAll(catalog *Catalog, term string) []ResultGroup {
	if catalog == nil || IsBlank(term) {
		return nil
	}

	groups := make([]ResultGroup, 0, catalog.Len())
	for _, col := range catalog.Collections() {
		matches := Apply(col, nil, term)
		if len(matches) == 0 {
			continue
		}
		groups = append(groups, ResultGroup{
			Collection: col.Name(),
			Key:        col.Key(),
			Label:      col.Label(),
			Records:    matches,
		})
	}
	return groups
}
