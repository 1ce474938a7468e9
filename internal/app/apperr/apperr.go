// Package apperr is the error taxonomy shared by the access layer and the
// HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrValidation           = errors.New("validation failed")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrInternal             = errors.New("internal error")
)

const (
	CodeNotFound             = "NOT_FOUND"
	CodeReferentialIntegrity = "REFERENTIAL_INTEGRITY_VIOLATION"
	CodeValidation           = "VALIDATION_FAILED"
	CodeStoreUnavailable     = "STORE_UNAVAILABLE"
	CodeInternal             = "INTERNAL_ERROR"
)

// FieldError describes one invalid field of a payload.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error is a classified failure with the HTTP status it maps to.
type Error struct {
	Kind       error
	Code       string
	Message    string
	HTTPStatus int
	Fields     []FieldError
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

// NotFound reports a missing row of the named entity.
func NotFound(entity string, id uint) *Error {
	return Missing(fmt.Sprintf("%s %d not found", entity, id))
}

// Missing reports a missing object that is not a catalog row.
func Missing(message string) *Error {
	return &Error{
		Kind:       ErrNotFound,
		Code:       CodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// ReferentialIntegrity reports a write rejected by a foreign key.
func ReferentialIntegrity(entity, constraint string, err error) *Error {
	msg := entity + " is referenced by or references a missing row"
	if constraint != "" {
		msg += " (" + constraint + ")"
	}
	return &Error{
		Kind:       ErrReferentialIntegrity,
		Code:       CodeReferentialIntegrity,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
		Err:        err,
	}
}

func Validation(message string, fields []FieldError, err error) *Error {
	return &Error{
		Kind:       ErrValidation,
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
		Err:        err,
	}
}

func StoreUnavailable(err error) *Error {
	return &Error{
		Kind:       ErrStoreUnavailable,
		Code:       CodeStoreUnavailable,
		Message:    "store is unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func Internal(err error) *Error {
	return &Error{
		Kind:       ErrInternal,
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// From returns err as an *Error, classifying unknown errors as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
