package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("Unknown %s", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError covers malformed bodies and malformed list queries.
type ValidationError struct {
	Field string
	Code  string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" && e.Code == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError is raised when a unique field is already owned by another record.
type ConflictError struct {
	Resource string
	Field    string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("%s is already registered", capitalize(e.Field))
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// Code returns the boundary code, e.g. "email_already_taken".
func (e ConflictError) Code() string {
	if e.Field == "" {
		return "conflict"
	}
	return e.Field + "_already_taken"
}

// InternalError marks a store-level failure. The cause is kept for logs only.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// CredentialsError reports a failed credential check. Attempts is the
// throttle counter after the failure, zero when the throttle was not involved.
type CredentialsError struct {
	Attempts int
	Msg      string
}

func (e CredentialsError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("Wrong email or password. Login Attempts = %d", e.Attempts)
}

// LockedError is returned while the login throttle window is active.
type LockedError struct {
	RemainingMinutes int
}

func (e LockedError) Error() string {
	return fmt.Sprintf("Too many failed login attempts. Please try again after %d minutes.", e.RemainingMinutes)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsCredentials(err error) bool {
	var target CredentialsError
	return errors.As(err, &target)
}

func IsLocked(err error) bool {
	var target LockedError
	return errors.As(err, &target)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
