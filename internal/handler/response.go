package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError so that all
// responses share one shape.
//
// CONSISTENT ERROR FORMAT:
//
//	{"error": "not_found", "message": "article not found with id 7"}
//
// A 500 never carries the real error. It carries an incident id instead,
// and the same id is logged next to the real error:
//
//	{"error": "internal_error", "message": "...", "incident": "cs3q5kq0ff3b5h0ak2ag"}

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"

	"github.com/mozafut/revista/internal/apperror"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error    string `json:"error"`              // machine-readable kind, e.g. "not_found"
	Message  string `json:"message"`            // human-readable description
	Field    string `json:"field,omitempty"`    // offending input field, when known
	Incident string `json:"incident,omitempty"` // set on 500s only
}

// MessageResponse acknowledges a write.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

// SuccessResponse is the account endpoints' acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// writeJSON sends data as JSON with the given status. Headers must be set
// before WriteHeader, so the order below matters.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// headers are already sent; all we can do is log
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// errorKinds maps each sentinel to its status and wire name. Order matters
// only in that the first match wins.
var errorKinds = []struct {
	target error
	status int
	kind   string
}{
	{apperror.ErrValidation, http.StatusBadRequest, "validation_error"},
	{apperror.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperror.ErrConflict, http.StatusBadRequest, "conflict"},
	{apperror.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{apperror.ErrUnsupportedType, http.StatusBadRequest, "unsupported_type"},
	{apperror.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large"},
}

// writeError maps a domain error to a status code and sends it.
//
// errors.Is walks the whole chain, so a service returning
// fmt.Errorf("creating team: %w", apperror.ValidationFailed(...)) still
// maps to 400.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		for _, k := range errorKinds {
			if errors.Is(err, k.target) {
				writeJSON(w, k.status, ErrorResponse{
					Error:   k.kind,
					Message: appErr.Message,
					Field:   appErr.Field,
				})
				return
			}
		}
	}

	// Anything else is a fault: storage failure, I/O error, a bug. Never
	// expose it; the raw message may contain SQL or file paths.
	incident := xid.New().String()
	logger.Error("request failed",
		slog.String("incident", incident),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:    "internal_error",
		Message:  "an internal error occurred",
		Incident: incident,
	})
}
