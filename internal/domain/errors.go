package domain

import "fmt"

// ValidationError reports malformed or out-of-range input to a value object
// or entity constructor. It is raised at the point of construction; nothing
// is partially applied.
type ValidationError struct {
	msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.msg }

// InvalidOperationError reports a structurally valid request made against an
// aggregate in the wrong lifecycle state. State carries the current status so
// callers can explain the rejection.
type InvalidOperationError struct {
	msg   string
	State string
}

func NewInvalidOperationError(state, format string, args ...any) *InvalidOperationError {
	return &InvalidOperationError{msg: fmt.Sprintf(format, args...), State: state}
}

func (e *InvalidOperationError) Error() string { return e.msg }

// BusinessRuleError reports a state-valid request that violates a domain
// policy, such as checking out an empty cart or exceeding the cart capacity.
type BusinessRuleError struct {
	msg string
}

func NewBusinessRuleError(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{msg: fmt.Sprintf(format, args...)}
}

func (e *BusinessRuleError) Error() string { return e.msg }

// NotFoundError reports a missing aggregate at the application boundary.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}
