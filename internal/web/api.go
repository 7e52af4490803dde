package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/evcraddock/rentivo/internal/app"
	"github.com/evcraddock/rentivo/internal/avatar"
	"github.com/evcraddock/rentivo/internal/inquiry"
	"github.com/evcraddock/rentivo/internal/property"
	"github.com/evcraddock/rentivo/internal/session"
	"github.com/evcraddock/rentivo/internal/validation"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// decodeJSON reads a JSON body into v, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeJSONLimit(w, r, v, maxBodyBytes)
}

func decodeJSONLimit(w http.ResponseWriter, r *http.Request, v any, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case validation.IsValidationError(err),
		errors.Is(err, session.ErrInvalidRole),
		errors.Is(err, avatar.ErrNoImage),
		errors.Is(err, avatar.ErrUnsupportedImage),
		errors.Is(err, property.ErrIncompleteDraft):
		return http.StatusBadRequest
	case errors.Is(err, avatar.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, session.ErrNoActiveSession):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrNotLandlord),
		errors.Is(err, inquiry.ErrNotReceiver):
		return http.StatusForbidden
	case errors.Is(err, property.ErrNotFound),
		errors.Is(err, inquiry.ErrInquiryNotFound):
		return http.StatusNotFound
	case errors.Is(err, inquiry.ErrNoSelectedProperty),
		errors.Is(err, inquiry.ErrInvalidTransition),
		errors.Is(err, property.ErrDuplicateID):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError answers with the status err maps to. Validation failures list
// the offending fields.
func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		apiJSON(w, map[string]any{"error": err.Error(), "fields": verr.Fields}, code)
		return
	}
	apiError(w, err.Error(), code)
}
