// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Domain-level failure reasons. Every service operation surfaces one of
// these (wrapped) on rejection; the HTTP boundary classifies them into
// status codes. None are retried anywhere.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSelfTransfer        = errors.New("cannot transfer to the same account")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrStorageFailure      = errors.New("storage failure")
	ErrInvalidInput        = errors.New("invalid input provided")
)

// NotFoundError carries the id of the account that failed to resolve so
// the boundary can report which side of an operation was missing.
type NotFoundError struct {
	AccountID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("account with id %d not found", e.AccountID)
}

// Is makes errors.Is(err, ErrAccountNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrAccountNotFound
}

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
