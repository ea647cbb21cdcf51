// internal/api/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"github.com/andarpratama/nufaza-ewallet-test/internal/util"
)

// ErrorConfig is one entry of the failure taxonomy exposed to clients:
// a stable code, the HTTP status it maps to, and a default message.
type ErrorConfig struct {
	Code    string
	Status  int
	Message string
}

// ErrorClassifier maps domain failure reasons to ErrorConfig entries.
// It is built once at startup and never mutated afterwards; handlers
// hold it by reference.
type ErrorClassifier struct {
	entries []classification
	unknown ErrorConfig
}

type classification struct {
	sentinel error
	config   ErrorConfig
}

// NewErrorClassifier constructs the immutable reason-to-status table.
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{
		entries: []classification{
			{util.ErrAccountNotFound, ErrorConfig{"AccountNotFound", http.StatusNotFound, "account not found"}},
			{util.ErrInsufficientBalance, ErrorConfig{"InsufficientBalance", http.StatusConflict, "Your balance is not enough."}},
			{util.ErrSelfTransfer, ErrorConfig{"SelfTransfer", http.StatusBadRequest, "You cannot transfer to yourself."}},
			{util.ErrInvalidAmount, ErrorConfig{"InvalidAmount", http.StatusUnprocessableEntity, "amount is not representable"}},
			{util.ErrDuplicateEmail, ErrorConfig{"DuplicateEmail", http.StatusConflict, "Email already exists"}},
			{util.ErrInvalidInput, ErrorConfig{"ValidationFailed", http.StatusBadRequest, "Request validation failed"}},
			{util.ErrStorageFailure, ErrorConfig{"StorageFailure", http.StatusInternalServerError, "Internal server error"}},
		},
		unknown: ErrorConfig{"InternalServerError", http.StatusInternalServerError, "Internal server error"},
	}
}

// Classify resolves err to its ErrorConfig. A NotFoundError's message
// names the missing account id; every unclassified error collapses to
// an opaque internal failure.
func (c *ErrorClassifier) Classify(err error) ErrorConfig {
	for _, entry := range c.entries {
		if !errors.Is(err, entry.sentinel) {
			continue
		}
		config := entry.config
		var notFound *util.NotFoundError
		if errors.As(err, &notFound) {
			config.Message = notFound.Error()
		}
		return config
	}
	return c.unknown
}
