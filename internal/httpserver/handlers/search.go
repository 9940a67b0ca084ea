package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/csfinder/internal/logger"
)

// Search runs a free-text query over every collection. Collections without
// a match are left out; a blank query returns no groups.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		groups := domain.SearchAll(d.Records.Catalog(), query)
		links := d.Bookmarks.Links()

		resp := searchResponse{
			Query:  strings.TrimSpace(query),
			Groups: make([]groupResponse, 0, len(groups)),
		}
		for _, g := range groups {
			resp.Groups = append(resp.Groups, groupResponse{
				Key:   g.Key,
				Name:  g.Collection,
				Label: g.Label,
				Count: len(g.Records),
				Rows:  toRows(schemaOf(d, g.Key), g.Records, links),
			})
			resp.Total += len(g.Records)
		}

		d.Logger.Debug("global search",
			logger.String("query", resp.Query),
			logger.Int("groups", len(resp.Groups)),
			logger.Int("total", resp.Total))

		writeJSON(w, http.StatusOK, resp)
	}
}

func schemaOf(d deps.Deps, key string) domain.Schema {
	col, err := d.Records.Collection(key)
	if err != nil {
		return domain.Schema{}
	}
	return col.Schema
}
