// Package apperrors holds the error kinds shared by the store, the service
// layer and the HTTP adapter.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Kind sentinels. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("resource conflict")
	ErrStorage    = errors.New("storage error")
)

type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == ErrStorage {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

func Validation(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, id interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s with id %v not found", entity, id)}
}

func Conflict(cause error, format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...), Err: cause}
}

func Storage(op string, cause error) error {
	return &Error{Kind: ErrStorage, Message: op, Err: cause}
}

// IsConstraint reports whether err is a uniqueness or foreign key violation
// raised by the store.
func IsConstraint(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// FromStorage wraps a store error for op. Errors that already carry a kind are
// returned unchanged and constraint violations become conflicts.
func FromStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if IsConstraint(err) {
		return Conflict(err, "%s: constraint violation", op)
	}
	return Storage(op, err)
}

// StatusCode maps an error kind to an HTTP status.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
