package domain

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

// AmountMismatchError is a validation failure on the claimed transfer amount.
type AmountMismatchError struct {
	Expected int64
	Got      int64
}

func (e AmountMismatchError) Error() string {
	return fmt.Sprintf("transfer amount must match the total amount: expected %d, got %d", e.Expected, e.Got)
}

// AuthRequiredError carries where the caller wanted to go before login.
type AuthRequiredError struct {
	RedirectTo string
}

func (e AuthRequiredError) Error() string {
	return "authentication required"
}

type PersistenceError struct {
	Op        string
	Err       error
	Retryable bool
}

func (e PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg == "" {
		return "forbidden"
	}
	return e.Msg
}

var (
	ErrBookingOverlap       = errors.New("equipment is already booked for the selected dates")
	ErrEquipmentUnavailable = errors.New("equipment is not available for booking")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailNotConfirmed    = errors.New("email not confirmed")
	ErrInvalidAuthCode      = errors.New("invalid or expired auth code")
)

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAmountMismatch(err error) bool {
	var target AmountMismatchError
	return errors.As(err, &target)
}

func IsAuthRequired(err error) bool {
	var target AuthRequiredError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}

// IsRetryable reports whether err is a persistence failure worth retrying.
func IsRetryable(err error) bool {
	var target PersistenceError
	return errors.As(err, &target) && target.Retryable
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}
