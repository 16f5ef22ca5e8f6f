// Package dto defines the wire envelope and the error-code to HTTP-status
// taxonomy shared by all handlers.
package dto

// Response statuses. "fail" covers caller mistakes, "error" server faults.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response is the envelope every endpoint answers with. TotalCount is set on
// list responses only and reflects the structural filter, never the page.
type Response struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	TotalCount *int64 `json:"totalCount,omitempty"`
}

// NewSuccessResponse creates a success envelope
func NewSuccessResponse(message string, data any) Response {
	return Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// NewListResponse creates a success envelope carrying the structural total
func NewListResponse(message string, data any, totalCount int64) Response {
	return Response{
		Status:     StatusSuccess,
		Message:    message,
		Data:       data,
		TotalCount: &totalCount,
	}
}

// NewFailResponse creates an envelope for a caller mistake
func NewFailResponse(message string) Response {
	return Response{
		Status:  StatusFail,
		Message: message,
	}
}

// NewErrorResponse creates an envelope for a server fault
func NewErrorResponse(message string) Response {
	return Response{
		Status:  StatusError,
		Message: message,
	}
}
