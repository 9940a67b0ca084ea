package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/csfinder/internal/bookmarks"
	"github.com/MrSnakeDoc/csfinder/internal/index"
	"github.com/MrSnakeDoc/csfinder/internal/logger"
)

// apiError is the JSON body of every error response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	status  int
}

func (e *apiError) Error() string { return e.Message }

func notFound(msg string) *apiError {
	return &apiError{Code: "NOT_FOUND", Message: msg, status: http.StatusNotFound}
}

func badRequest(msg string) *apiError {
	return &apiError{Code: "VALIDATION_ERROR", Message: msg, status: http.StatusBadRequest}
}

func conflict(msg string) *apiError {
	return &apiError{Code: "CONFLICT", Message: msg, status: http.StatusConflict}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps known errors to their status and hides everything else
// behind a 500.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var apiErr *apiError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, index.ErrUnknownCollection):
		apiErr = notFound("collection not found")
	case errors.Is(err, bookmarks.ErrInvalidBookmark):
		apiErr = badRequest(err.Error())
	default:
		log.Error("request failed", logger.Error(err))
		apiErr = &apiError{Code: "INTERNAL_ERROR", Message: "internal server error", status: http.StatusInternalServerError}
	}
	writeJSON(w, apiErr.status, apiErr)
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON body")
	}
	return nil
}
