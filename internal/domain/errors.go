package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store, the synchronizer and the handlers.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrPolicyBlocked = errors.New("write blocked by access policy")
	ErrValidation    = errors.New("validation error")
)

// TransientError is a network or backend failure that may succeed on retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// NewTransientError wraps err as a TransientError for op.
func NewTransientError(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsTransient reports whether err is worth one more attempt.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
