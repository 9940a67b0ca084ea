package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/csfinder/internal/logger"
)

type bookmarkResponse struct {
	Index int `json:"index"`
	domain.Bookmark
}

type addBookmarkResponse struct {
	Result   string          `json:"result"`
	Bookmark domain.Bookmark `json:"bookmark"`
}

type toggleResponse struct {
	Bookmarked bool   `json:"bookmarked"`
	Link       string `json:"link"`
}

// Bookmarks lists the bookmark set in insertion order.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := d.Bookmarks.List()
		out := make([]bookmarkResponse, 0, len(list))
		for i, b := range list {
			out = append(out, bookmarkResponse{Index: i, Bookmark: b})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// AddBookmark stores a bookmark. A link already bookmarked yields 409.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b domain.Bookmark
		if err := decodeBody(w, r, &b); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		res, err := d.Bookmarks.Add(r.Context(), b)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if res == domain.AlreadyExists {
			writeError(w, d.Logger, conflict("bookmark already exists"))
			return
		}

		d.Logger.Info("bookmark added",
			logger.String("type", b.Type),
			logger.String("link", b.Link))
		writeJSON(w, http.StatusCreated, addBookmarkResponse{Result: res.String(), Bookmark: b})
	}
}

// ToggleBookmark adds the referenced record, or removes it when its link
// is already bookmarked.
func ToggleBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ref domain.Reference
		if err := decodeBody(w, r, &ref); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		on, err := d.Bookmarks.Toggle(r.Context(), ref)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		d.Logger.Info("bookmark toggled",
			logger.String("link", ref.Link),
			logger.Bool("bookmarked", on))
		writeJSON(w, http.StatusOK, toggleResponse{Bookmarked: on, Link: ref.Link})
	}
}

// DeleteBookmark removes the bookmark at the given 0-based index.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeError(w, d.Logger, badRequest("index must be an integer"))
			return
		}

		res, err := d.Bookmarks.Remove(r.Context(), index)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if res == domain.NotFound {
			writeError(w, d.Logger, notFound("bookmark not found"))
			return
		}

		d.Logger.Info("bookmark removed", logger.Int("index", index))
		w.WriteHeader(http.StatusNoContent)
	}
}
