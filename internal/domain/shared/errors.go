package shared

import "fmt"

// Error codes shared by all bounded contexts
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeValidation          = "VALIDATION_ERROR"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeDuplicateNumber     = "DUPLICATE_NUMBER"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidState        = "INVALID_STATE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so that
// errors.Is(err, ErrNotFound) holds for every not-found variant.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput        = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrValidation          = NewDomainError(CodeValidation, "Validation failed")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrDuplicateNumber     = NewDomainError(CodeDuplicateNumber, "Generated number is already in use")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NewValidationError reports malformed or missing caller input
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// NewNotFoundError reports that no entity of the kind matches id (and owner).
// Ownership mismatches use it too.
func NewNotFoundError(kind string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", kind, id))
}

// InvalidStateTransition is returned when an operation is not permitted from
// the aggregate's current status. It matches ErrInvalidState via errors.Is.
type InvalidStateTransition struct {
	Entity    string
	ID        any
	Current   string
	Operation string
}

// Error implements the error interface
func (e *InvalidStateTransition) Error() string {
	return fmt.Sprintf("cannot %s %s %v in status %s", e.Operation, e.Entity, e.ID, e.Current)
}

// Is makes InvalidStateTransition match ErrInvalidState
func (e *InvalidStateTransition) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == CodeInvalidState
}

// AsDomainError exposes the transition failure as a DomainError
func (e *InvalidStateTransition) AsDomainError() *DomainError {
	return NewDomainError(CodeInvalidState, e.Error())
}

// NewInvalidStateTransition builds an InvalidStateTransition error
func NewInvalidStateTransition(entity string, id any, current, operation string) *InvalidStateTransition {
	return &InvalidStateTransition{
		Entity:    entity,
		ID:        id,
		Current:   current,
		Operation: operation,
	}
}

// NewDuplicateNumberError reports that a count-derived number collided with
// an existing one. Callers must not retry.
func NewDuplicateNumberError(kind, number string) *DomainError {
	return NewDomainError(CodeDuplicateNumber, fmt.Sprintf("%s number %s is already in use", kind, number))
}
