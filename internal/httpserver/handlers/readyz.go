package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/csfinder/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready       bool `json:"ready"`
	Collections int  `json:"collections"`
	Records     int  `json:"records"`
}

// Readyz reports ready once the record store holds the catalog.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ready := d.Records != nil && d.Records.Loaded()
		resp := readyzResponse{Ready: ready}
		if ready {
			resp.Collections = len(d.Records.Collections())
			resp.Records = d.Records.Count()
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(resp)
	}
}
