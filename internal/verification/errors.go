package verification

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	// Check order in Verify: not found, expired, too many attempts, invalid code.
	ErrNotFound        = errors.New("no pending verification found, request a new code")
	ErrExpired         = errors.New("verification code has expired, request a new code")
	ErrTooManyAttempts = errors.New("too many failed attempts, request a new code")
	ErrInvalidCode     = errors.New("invalid verification code")
)

// SchedulingError means the external verification call could not be placed.
// The pending row is marked superseded before this is returned.
type SchedulingError struct {
	Err error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("failed to schedule verification call: %v", e.Err)
}

func (e *SchedulingError) Unwrap() error { return e.Err }

// PersistenceError means a database write failed. Op names the failing write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("verification %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// RateLimitedError carries the remaining resend cooldown in whole seconds.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("wait %d seconds before requesting a new code", e.RetryAfterSeconds)
}
