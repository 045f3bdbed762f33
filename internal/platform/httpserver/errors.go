package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	submissionerrors "photocontest/contexts/photo-contest/submission-service/domain/errors"
	"photocontest/contracts/errkind"

	"github.com/dustin/go-humanize"
)

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type errorEnvelope struct {
	Status    string    `json:"status"`
	Error     errorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string, details map[string]any) {
	writeJSON(w, status, errorEnvelope{
		Status: "error",
		Error: errorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, string(errkind.Validation), message, nil)
}

func statusForKind(kind errkind.Kind) int {
	switch kind {
	case errkind.NotFound:
		return http.StatusNotFound
	case errkind.Validation:
		return http.StatusBadRequest
	case errkind.Forbidden:
		return http.StatusForbidden
	case errkind.Unauthenticated:
		return http.StatusUnauthorized
	case errkind.Conflict, errkind.InvalidState:
		return http.StatusConflict
	case errkind.QuotaExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps classified errors by kind. Anything unclassified is a
// storage or programming failure: it is logged and reported generically.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind, ok := errkind.KindOf(err)
	if !ok {
		s.logger.Error("request failed",
			"event", "http_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", nil)
		return
	}
	writeError(w, statusForKind(kind), string(kind), err.Error(), errorDetails(err))
}

func errorDetails(err error) map[string]any {
	var limitErr submissionerrors.SubmissionLimitError
	if errors.As(err, &limitErr) {
		return map[string]any{"limit": limitErr.Limit}
	}
	var sizeErr submissionerrors.FileTooLargeError
	if errors.As(err, &sizeErr) {
		return maxSizeDetails(sizeErr.MaxBytes)
	}
	return nil
}

func maxSizeDetails(maxBytes int64) map[string]any {
	return map[string]any{
		"max_size":  humanize.IBytes(uint64(maxBytes)),
		"max_bytes": maxBytes,
	}
}
