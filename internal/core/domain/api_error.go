package domain

import (
	"errors"
	"fmt"
)

const (
	NetworkErrorMessage     = "Network error"
	UnexpectedFormatMessage = "Unexpected response format"
)

// APIError - the uniform error every backend call is normalized into.
// Status is the HTTP status code, or 0 when no response was received.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// NewNetworkError - no response was received at all.
func NewNetworkError() *APIError {
	return &APIError{Message: NetworkErrorMessage, Status: 0}
}

// NewStatusError - the backend answered with a non-2xx status and no usable message.
func NewStatusError(status int) *APIError {
	return &APIError{Message: fmt.Sprintf("Request failed (%d)", status), Status: status}
}

// MessageOf returns the human-readable message carried by err, or fallback
// when err is not an APIError.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
