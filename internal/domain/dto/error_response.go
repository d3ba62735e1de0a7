package dto

import "time"

// ErrorResponse is the generic error envelope used outside the sales
// endpoint (panics, unhandled gin errors, rate limiting).
type ErrorResponse struct {
	Message      string    `json:"message" example:"Internal server error"`
	ErrorDetails string    `json:"error,omitempty" example:"connection refused"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel
// through c.Error() and be rendered later by middleware.ErrorHandler.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
