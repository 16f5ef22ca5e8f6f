package dto

import "net/http"

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"BAD_REQUEST":    http.StatusBadRequest,
	"INVALID_INPUT":  http.StatusBadRequest,
	"UNAUTHORIZED":   http.StatusUnauthorized,
	"FORBIDDEN":      http.StatusForbidden,
	"INVALID_STATE":  http.StatusUnprocessableEntity,
}

// HTTPStatus returns the HTTP status for a domain error code, defaulting to
// 500 for anything unmapped.
func HTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// StatusWord returns the envelope status for an HTTP status code: 4xx is the
// caller's fault, everything else a server fault.
func StatusWord(httpStatus int) string {
	if httpStatus >= 400 && httpStatus < 500 {
		return StatusFail
	}
	return StatusError
}
