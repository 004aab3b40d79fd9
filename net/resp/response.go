package resp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ncobase/tasklist/ecode"
)

// Exception represents the error response structure.
type Exception struct {
	Status  int    `json:"-"`                 // HTTP status
	Code    int    `json:"code,omitempty"`    // Business code
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Validation errors
}

// Success writes data with status 200.
func Success(w http.ResponseWriter, data any) {
	WithStatusCode(w, http.StatusOK, data)
}

// WithStatusCode writes data with a custom success status. A nil or string payload
// is wrapped as {"message": ...}.
func WithStatusCode(w http.ResponseWriter, statusCode int, data any) {
	switch v := data.(type) {
	case nil:
		data = map[string]any{"message": "ok"}
	case string:
		data = map[string]any{"message": v}
	}
	writeJSON(w, statusCode, data)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail writes an error response. A nil exception becomes a generic 500.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = &Exception{Status: http.StatusInternalServerError, Code: ecode.ServerErr}
	}
	status, body := buildFailureResponse(r)
	writeJSON(w, status, body)
}

// buildFailureResponse fills missing fields from the business code.
func buildFailureResponse(r *Exception) (int, *Exception) {
	code := r.Code
	if code == 0 {
		code = ecode.RequestErr
	}
	status := r.Status
	if status == 0 {
		status = ecode.ToHTTPStatus(code)
	}
	message := r.Message
	if message == "" {
		message = ecode.Text(code)
	}
	return status, &Exception{Status: status, Code: code, Message: message, Errors: r.Errors}
}

// BadRequest builds a 400 with the ParamErr code.
func BadRequest(message string, errs ...any) *Exception {
	return &Exception{Status: http.StatusBadRequest, Code: ecode.ParamErr, Message: message, Errors: first(errs)}
}

// NotFound builds a 404 with the NothingFound code.
func NotFound(message string) *Exception {
	return &Exception{Status: http.StatusNotFound, Code: ecode.NothingFound, Message: message}
}

// InternalServer builds a 500 with the ServerErr code.
func InternalServer(message string) *Exception {
	return &Exception{Status: http.StatusInternalServerError, Code: ecode.ServerErr, Message: message}
}

// FromError maps err onto a failure response. Internal error text is not exposed.
func FromError(err error) *Exception {
	var verr *ecode.ValidationError
	switch {
	case errors.As(err, &verr):
		var fields any
		if verr.Field != "" {
			fields = map[string]string{verr.Field: verr.Message}
		}
		return BadRequest(verr.Message, fields)
	case errors.Is(err, ecode.ErrNotFound):
		return NotFound(ecode.ErrNotFound.Error())
	default:
		return InternalServer(ecode.Text(ecode.ServerErr))
	}
}

func first(v []any) any {
	if len(v) > 0 {
		return v[0]
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
