package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/logger"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Code    apperrors.Kind    `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// writeError maps err onto a status and a body safe for end users. Store
// failures keep their detail in the log only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	body := errorBody{
		Code:    apperrors.KindOf(err),
		Message: apperrors.PublicMessage(err),
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind != apperrors.KindStore {
		body.Details = appErr.Details
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else if status == http.StatusUnauthorized || status == http.StatusForbidden {
		logger.WarnContext(r.Context(), "Request denied", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		logger.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

// decodeJSON reads a single JSON object into dst.
func decodeJSON(r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apperrors.Validation(op, "invalid request body", map[string]string{"body": err.Error()})
	}
	return nil
}
