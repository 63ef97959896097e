package trakt

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid trakt configuration")
	// ErrNoAccessToken indicates an authorized request was attempted with no stored token
	ErrNoAccessToken = errors.New("no access token: sign in first")
	// ErrEmptyBody indicates a response with the expected status but no body
	ErrEmptyBody = errors.New("empty response body")
)

// StatusError is returned when a response status code differs from the
// expected one. Code carries the actual status.
type StatusError struct {
	Code int
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("trakt API error: status %d", e.Code)
	}
	return fmt.Sprintf("trakt API error: status %d: %s", e.Code, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *StatusError) IsNotFound() bool {
	return e.Code == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *StatusError) IsUnauthorized() bool {
	return e.Code == 401 || e.Code == 403
}

// IsRateLimited checks if the error indicates the rate limit was hit
func (e *StatusError) IsRateLimited() bool {
	return e.Code == 429
}

// DecodeError is returned when a response body could not be decoded into
// the requested shape. Field names the missing required field when the
// JSON parsed but failed validation.
type DecodeError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("failed to decode response: missing required field %q", e.Field)
	}
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

// Unwrap returns the underlying parse error, if any
func (e *DecodeError) Unwrap() error {
	return e.Err
}
