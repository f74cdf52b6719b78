package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"voucherhub/internal/model"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeBadRequest writes a 400 response carrying code.
func writeBadRequest(w http.ResponseWriter, r *http.Request, code, message string, logger zerolog.Logger) {
	logger.Debug().Str("code", code).Str("message", message).Msg("bad request")
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: chimiddleware.GetReqID(r.Context()),
	}, logger)
}

// writeError maps err to a status code and writes the error response.
// Internal errors are logged and reported without their cause.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	code := model.ErrorCode(err)
	status := statusFor(code)

	resp := model.ErrorResponse{
		Error:         code,
		Message:       err.Error(),
		CorrelationID: chimiddleware.GetReqID(r.Context()),
	}

	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		resp.Message = "request validation failed"
		resp.Details = vErr.Fields
	}

	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", resp.CorrelationID).
			Msg("handler error")
		resp.Message = "internal server error"
	}

	writeJSON(w, status, resp, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeValidationFailed, model.ErrCodeInvalidArgument, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeNotFound, model.ErrCodeNoRowsUpdated:
		return http.StatusNotFound
	case model.ErrCodeDuplicate:
		return http.StatusConflict
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses the chi URL parameter name as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s format", name)
	}
	return id, nil
}
