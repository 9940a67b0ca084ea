package domain

// ViewState is the browsing state of one collection inside a session.
type ViewState struct {
	Criteria Criteria
	Search   string
	Page     int
}

// Session is the explicit per-user browsing state.
//
// Sessions are values: every With* method returns an updated copy and
// leaves the receiver untouched, so no state is shared between sessions.
type Session struct {
	Views map[string]ViewState
}

// NewSession returns an empty session.
func NewSession() Session {
	return Session{Views: make(map[string]ViewState)}
}

// View returns the state of a collection. Unvisited collections start on
// page 1 with no criteria and no search term.
func (s Session) View(key string) ViewState {
	v, ok := s.Views[key]
	if !ok {
		return ViewState{Criteria: Criteria{}, Page: 1}
	}
	if v.Criteria == nil {
		v.Criteria = Criteria{}
	}
	return v
}

// WithFilter selects value for column. AllOption or an empty value clears it.
// The current page is kept as is.
func (s Session) WithFilter(key, column, value string) Session {
	v := s.View(key)
	v.Criteria = v.Criteria.Clone()
	if value == "" || value == AllOption {
		delete(v.Criteria, column)
	} else {
		v.Criteria[column] = value
	}
	return s.with(key, v)
}

// WithSearch sets the free-text term of a collection.
// The current page is kept as is.
func (s Session) WithSearch(key, term string) Session {
	v := s.View(key)
	v.Criteria = v.Criteria.Clone()
	v.Search = term
	return s.with(key, v)
}

// WithPage stores the requested page number without validating it.
func (s Session) WithPage(key string, page int) Session {
	v := s.View(key)
	v.Criteria = v.Criteria.Clone()
	v.Page = page
	return s.with(key, v)
}

func (s Session) with(key string, v ViewState) Session {
	views := make(map[string]ViewState, len(s.Views)+1)
	for k, old := range s.Views {
		views[k] = old
	}
	views[key] = v
	return Session{Views: views}
}

// View is one rendered page of a collection.
type View struct {
	Collection *Collection
	Records    []Record
	Total      int
	Page       int
	TotalPages int
	Criteria   Criteria
	Search     string
}

// BuildView filters the collection with the view state and cuts the
// current page out of the result.
func BuildView(c *Collection, state ViewState) View {
	matches := Apply(c, state.Criteria, state.Search)
	page, totalPages := Paginate(matches, PageSize, state.Page)
	return View{
		Collection: c,
		Records:    page,
		Total:      len(matches),
		Page:       state.Page,
		TotalPages: totalPages,
		Criteria:   state.Criteria.Active(),
		Search:     state.Search,
	}
}
