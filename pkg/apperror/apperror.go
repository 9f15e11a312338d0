// Package apperror defines the error kinds returned by the service layer.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInfrastructure Kind = iota
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "infrastructure"
	}
}

// Error is a tagged error. Message is safe to show to API callers for
// NotFound and Validation; for Infrastructure it is only logged.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that the entity with the given id does not exist.
func NotFound(entity string, id uint) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with ID %d not found", entity, id),
	}
}

func Validation(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Field:   field,
	}
}

// WithCause attaches the underlying error, e.g. the validator's field
// errors, so callers can still reach it with errors.As.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// Infrastructure wraps a storage or transport failure for the named operation.
func Infrastructure(op string, err error) *Error {
	return &Error{
		Kind:    KindInfrastructure,
		Message: op + " failed",
		Err:     err,
	}
}

// KindOf returns the kind of err. Errors not produced by this package are
// treated as infrastructure failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInfrastructure
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}
