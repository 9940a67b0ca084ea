package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/mw"
	"github.com/MrSnakeDoc/csfinder/internal/logger"
)

type filterRequest struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

type searchRequest struct {
	Term string `json:"term"`
}

type pageRequest struct {
	Page int `json:"page"`
}

// Collections lists every collection in registration order.
func Collections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cols := d.Records.Collections()
		out := make([]collectionSummary, 0, len(cols))
		for _, c := range cols {
			out = append(out, summarize(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Collection renders the current page of a collection for the session.
func Collection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "name")
		if _, err := d.Records.Collection(key); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		state, _ := d.Sessions.Get(mw.SessionID(r.Context()))
		renderView(w, d, key, state.View(key))
	}
}

// CollectionFilter sets one filter column. The value "All" clears it.
func CollectionFilter(d deps.Deps) http.HandlerFunc {
	return updateView(d, func(w http.ResponseWriter, r *http.Request, key string) (sessionUpdate, error) {
		var req filterRequest
		if err := decodeBody(w, r, &req); err != nil {
			return nil, err
		}
		if req.Column == "" {
			return nil, badRequest("column is required")
		}
		return func(s domain.Session) domain.Session {
			return s.WithFilter(key, req.Column, req.Value)
		}, nil
	})
}

// CollectionSearch sets the free-text term.
func CollectionSearch(d deps.Deps) http.HandlerFunc {
	return updateView(d, func(w http.ResponseWriter, r *http.Request, key string) (sessionUpdate, error) {
		var req searchRequest
		if err := decodeBody(w, r, &req); err != nil {
			return nil, err
		}
		return func(s domain.Session) domain.Session {
			return s.WithSearch(key, req.Term)
		}, nil
	})
}

// CollectionPage stores the requested page. Out of range pages render empty.
func CollectionPage(d deps.Deps) http.HandlerFunc {
	return updateView(d, func(w http.ResponseWriter, r *http.Request, key string) (sessionUpdate, error) {
		var req pageRequest
		if err := decodeBody(w, r, &req); err != nil {
			return nil, err
		}
		return func(s domain.Session) domain.Session {
			return s.WithPage(key, req.Page)
		}, nil
	})
}

type (
	sessionUpdate func(domain.Session) domain.Session
	viewUpdate    func(w http.ResponseWriter, r *http.Request, key string) (sessionUpdate, error)
)

// updateView decodes the request with fn, applies the resulting update to
// the session and renders the updated view.
func updateView(d deps.Deps, fn viewUpdate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "name")
		if _, err := d.Records.Collection(key); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		apply, err := fn(w, r, key)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		state := d.Sessions.Update(mw.SessionID(r.Context()), apply)
		view := state.View(key)

		d.Logger.Debug("view updated",
			logger.String("collection", key),
			logger.Int("page", view.Page),
			logger.String("search", view.Search))

		renderView(w, d, key, view)
	}
}

func renderView(w http.ResponseWriter, d deps.Deps, key string, state domain.ViewState) {
	col, err := d.Records.Collection(key)
	if err != nil {
		writeError(w, d.Logger, err)
		return
	}
	options, err := d.Records.Options(key)
	if err != nil {
		writeError(w, d.Logger, err)
		return
	}

	view := domain.BuildView(col, state)
	writeJSON(w, http.StatusOK, toView(view, options, d.Bookmarks.Links()))
}
