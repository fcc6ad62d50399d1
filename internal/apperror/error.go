package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindStoreFailure Kind = "store_failure"
)

// Error is the uniform {status, message} failure returned by the services.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return e.Status
}

func New(kind Kind, status int, message string) *Error {
	return &Error{
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

func InvalidInput(status int, message string) *Error {
	return New(KindInvalidInput, status, message)
}

func NotFound(status int, message string) *Error {
	return New(KindNotFound, status, message)
}

// StatusCoder is implemented by errors that know which status they map to.
type StatusCoder interface {
	StatusCode() int
}

// Normalize turns any error into an *Error. An *Error passes through untouched.
// Other errors become store failures that keep their own status when they
// carry one (500 otherwise) and their own message (fallback otherwise).
func Normalize(err error, fallback string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	status := http.StatusInternalServerError
	var sc StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() != 0 {
		status = sc.StatusCode()
	}

	message := err.Error()
	if message == "" {
		message = fallback
	}

	return &Error{
		Kind:    KindStoreFailure,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// StatusOf returns the status an error maps to, 500 for unknown errors.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind of err, or an empty Kind for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStoreFailure
}
