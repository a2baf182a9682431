package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput wraps every validation failure; the wrapped message
	// names the offending field and is safe to show to clients.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned for any failed login, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrInvalidInput }

func invalidf(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}
