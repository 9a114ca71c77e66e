// Package handlers implements the HTTP request handlers of the scoring API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeAppError maps application errors to HTTP status codes via their error
// code.  Server-side failures are masked; client-side failures carry the
// code and detail so callers can distinguish a malformed molfile from an
// unsupported element.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	if !errors.IsClientError(code) {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    errors.ErrCodeInternal.String(),
			Message: errors.DefaultMessageForCode(errors.ErrCodeInternal),
		})
		return
	}

	resp := ErrorResponse{
		Code:    code.String(),
		Message: errors.DefaultMessageForCode(code),
	}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			resp.Message = appErr.Message
		}
		resp.Detail = appErr.Detail
	}
	writeJSON(w, status, resp)
}
