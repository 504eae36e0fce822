package api

import (
	"encoding/json"
	"net/http"

	"github.com/blockswap/blockswap/pkg/errors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps domain error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidCategory,
		errors.ErrCodeInvalidProfile,
		errors.ErrCodeInvalidBlueprint,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeUnknownCategory,
		errors.ErrCodeUnknownProfile,
		errors.ErrCodeBlueprintMissing:
		return http.StatusNotFound
	case errors.ErrCodeMappingConflict,
		errors.ErrCodeAmbiguousReverse,
		errors.ErrCodeCyclicCostModel:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: string(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
