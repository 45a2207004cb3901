package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"workforce/internal/domain/records"
	"workforce/internal/transport/http/api"
)

// DecodeJSON reads the request body into dst, writing the failure response itself.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any, requestID string) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		api.FailWithDetails(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", map[string]any{"reason": err.Error()}, requestID)
		return false
	}
	return true
}

// FailStore maps record store errors onto the response envelope.
func FailStore(w http.ResponseWriter, err error, entity, requestID string) {
	if verr, ok := records.IsValidation(err); ok {
		FailValidation(w, requestID, verr.Issues)
		return
	}
	switch {
	case errors.Is(err, records.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", entity+" not found", requestID)
	case errors.Is(err, records.ErrConflict):
		api.Fail(w, http.StatusConflict, entity+"_conflict", entity+" conflicts with an existing record", requestID)
	default:
		zap.L().Error("store operation failed", zap.String("entity", entity), zap.String("requestId", requestID), zap.Error(err))
		api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to process "+entity, requestID)
	}
}
