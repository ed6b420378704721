package luron

import (
	"errors"
	"fmt"
)

// ErrConnection marks a transport-level failure: the API could not be reached
// at all. It is always distinct from a non-2xx response.
var ErrConnection = errors.New("connection failed, check your internet connection and try again")

var (
	ErrCallNotFound = errors.New("call not found")
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError is a 400/422 rejection of the request shape or content.
// Message prefers the server-supplied reason.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("luron validation failed (%d): %s", e.Status, e.Message)
}

// APIError covers every other non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("luron request failed (%d): %s", e.Status, e.Message)
}
