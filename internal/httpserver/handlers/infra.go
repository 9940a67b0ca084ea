package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/csfinder/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	Collections *int   `json:"collections,omitempty"`
	Records     *int   `json:"records,omitempty"`
	Bookmarks   *int   `json:"bookmarks,omitempty"`
	Sessions    *int   `json:"sessions,omitempty"`
	LoadedAt    string `json:"loaded_at,omitempty"`
	Backend     string `json:"backend,omitempty"`
	Source      string `json:"source,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		collections := len(d.Records.Collections())
		records := d.Records.Count()
		loadedAt := d.Records.LoadedAt()
		loadedAtStr := "never"
		if !loadedAt.IsZero() {
			loadedAtStr = loadedAt.Format("2006-01-02 15:04:05")
		}

		bookmarkCount := d.Bookmarks.Count()
		sessionCount := d.Sessions.Count()

		bookmarkStatus := checkBookmarkBackend(r.Context(), d)
		bookmarkStatus.Bookmarks = &bookmarkCount

		components := map[string]componentStatus{
			"records": {
				OK:          d.Records.Loaded(),
				Collections: &collections,
				Records:     &records,
				LoadedAt:    loadedAtStr,
				Source:      d.DataFile,
			},
			"bookmarks": bookmarkStatus,
			"sessions": {
				OK:       true,
				Sessions: &sessionCount,
			},
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	if records, exists := components["records"]; exists && !records.OK {
		return "critical"
	}

	// Bookmark backend down: browsing works, bookmark changes fail
	if bm, exists := components["bookmarks"]; exists && !bm.OK {
		return "degraded"
	}

	return "operational"
}

func checkBookmarkBackend(ctx context.Context, d deps.Deps) componentStatus {
	backend := d.Bookmarks.Backend()

	var ping func(context.Context) error
	switch {
	case d.RedisClient != nil:
		ping = func(ctx context.Context) error { return d.RedisClient.Ping(ctx).Err() }
	case d.SQLite != nil:
		ping = d.SQLite.Ping
	default:
		return componentStatus{OK: true, Backend: backend}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := ping(ctx); err != nil {
		return componentStatus{
			OK:      false,
			Backend: backend,
			Impact:  "bookmark-changes-failing",
			Error:   err.Error(),
		}
	}

	return componentStatus{OK: true, Backend: backend}
}
