package ecode

import "net/http"

// Business codes.
const (
	OK           = 0
	RequestErr   = -200
	ParamErr     = -201
	NothingFound = -300
	Conflict     = -301
	ServerErr    = -500
	Unavailable  = -503
)

var codeText = map[int]string{
	OK:           "OK",
	RequestErr:   "Invalid request",
	ParamErr:     "Invalid parameters",
	NothingFound: "Resource not found",
	Conflict:     "Resource conflict",
	ServerErr:    "Internal server error",
	Unavailable:  "Service unavailable",
}

var codeStatus = map[int]int{
	OK:           http.StatusOK,
	RequestErr:   http.StatusBadRequest,
	ParamErr:     http.StatusBadRequest,
	NothingFound: http.StatusNotFound,
	Conflict:     http.StatusConflict,
	ServerErr:    http.StatusInternalServerError,
	Unavailable:  http.StatusServiceUnavailable,
}

// Text returns the message registered for code.
func Text(code int) string {
	if text, ok := codeText[code]; ok {
		return text
	}
	return codeText[ServerErr]
}

// ToHTTPStatus maps a business code to an HTTP status.
func ToHTTPStatus(code int) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
