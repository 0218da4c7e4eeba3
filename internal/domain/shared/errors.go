package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError
type ErrorKind int

const (
	// KindValidation marks input that violates a value-object or aggregate rule
	KindValidation ErrorKind = iota
	// KindConflict marks an operation not allowed in the aggregate's current state
	KindConflict
	// KindNotFound marks an absent resource
	KindNotFound
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	kind    ErrorKind
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Kind returns the error classification
func (e *DomainError) Kind() ErrorKind {
	return e.kind
}

// Is reports whether target is the category sentinel for this error's kind,
// or a DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	switch t {
	case ErrValidation:
		return e.kind == KindValidation
	case ErrConflict:
		return e.kind == KindConflict
	}
	return e.Code == t.Code
}

// NewDomainError creates a new validation error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		kind:    KindValidation,
	}
}

// NewConflictError creates an error for an operation rejected by the current state
func NewConflictError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		kind:    KindConflict,
	}
}

// Category sentinels, matched with errors.Is
var (
	ErrValidation = &DomainError{Code: "VALIDATION", Message: "Validation failed", kind: KindValidation}
	ErrConflict   = &DomainError{Code: "CONFLICT", Message: "Operation conflicts with current state", kind: KindConflict}
)

// Common domain errors
var (
	ErrNotFound               = &DomainError{Code: "NOT_FOUND", Message: "Resource not found", kind: KindNotFound}
	ErrAlreadyExists          = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidState           = NewConflictError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock      = NewConflictError("INSUFFICIENT_STOCK", "Insufficient stock available")
	// ErrConcurrentModification reports a lost optimistic-lock race
	ErrConcurrentModification = NewConflictError("CONCURRENT_MODIFICATION", "Aggregate was modified by another transaction")
)

// PersistenceError wraps a storage failure with the operation that produced it
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying driver error
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps err, returning nil when err is nil
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsPersistenceError reports whether err carries a PersistenceError
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
