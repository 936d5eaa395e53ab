package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/resilience"
	"github.com/heartmarshall/reading-copilot/internal/service/reading"
)

// Error codes of the JSON error envelope.
const (
	codeBadRequest      = "BAD_REQUEST"
	codeValidation      = "VALIDATION_ERROR"
	codeNotFound        = "NOT_FOUND"
	codeConflict        = "CONFLICT"
	codeUnauthorized    = "UNAUTHORIZED"
	codeForbidden       = "FORBIDDEN"
	codeInvalidAnalysis = "INVALID_ANALYSIS"
	codeUnavailable     = "SERVICE_UNAVAILABLE"
	codeInternal        = "INTERNAL_ERROR"
)

// handleError maps a service error onto the HTTP response. Unexpected errors
// are logged and reported as 500 without details.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve  *domain.ValidationError
		rle *domain.RateLimitError
	)

	switch {
	case errors.As(err, &ve):
		body := errorBody{Error: errorDetail{Code: codeValidation, Message: ve.Error()}}
		for _, fe := range ve.Errors {
			body.Error.Fields = append(body.Error.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.As(err, &rle):
		secs := rle.RetryAfterSeconds()
		w.Header().Set("Retry-After", strconv.Itoa(secs))
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: errorDetail{
			Code:              rle.Code(),
			Message:           "analysis rate limit exceeded",
			RetryAfterSeconds: secs,
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, codeConflict, "conflict")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidAnalysis):
		writeError(w, http.StatusBadGateway, codeInvalidAnalysis, "the analysis service returned an unreadable response")
	case errors.Is(err, resilience.ErrCircuitOpen):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "the analysis service is temporarily unavailable")
	case errors.Is(err, reading.ErrImportDisabled), errors.Is(err, errAIDisabled):
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, codeBadRequest, message)
}
