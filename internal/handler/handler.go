package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"fabric-shop/internal/middleware"
	"fabric-shop/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response. Domain errors keep their message;
// anything else is reported as a generic internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	status, resp := errorResponse(err)
	resp.CorrelationID = middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("code", resp.Error).
		Int("status", status).
		Str("correlation_id", resp.CorrelationID).
		Msg("handler error")

	writeJSON(w, status, resp)
}

// errorResponse maps an error to its HTTP status and response body.
func errorResponse(err error) (int, model.ErrorResponse) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		}
	}

	resp := model.ErrorResponse{Error: domainErr.Code, Message: domainErr.Message}

	switch {
	case domainErr.Code == model.ErrCodeInvalidCredentials,
		domainErr.Code == model.ErrCodeUnauthorised:
		return http.StatusUnauthorized, resp
	case domainErr.Kind == model.KindValidation:
		return http.StatusBadRequest, resp
	case domainErr.Kind == model.KindAuthorization:
		return http.StatusForbidden, resp
	case domainErr.Kind == model.KindNotFound, domainErr.Kind == model.KindRouting:
		return http.StatusNotFound, resp
	case domainErr.Kind == model.KindBusinessRule:
		return http.StatusConflict, resp
	default:
		return http.StatusInternalServerError, resp
	}
}
