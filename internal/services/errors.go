package services

import "errors"

// Error kinds. Handlers map them onto HTTP statuses with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
)

// Error is a service failure with a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

var (
	errUserExists         = &Error{Kind: ErrConflict, Message: "user exists"}
	errInvalidCredentials = &Error{Kind: ErrUnauthenticated, Message: "invalid credentials"}
	errNotFound           = &Error{Kind: ErrNotFound, Message: "not found"}
	errInvalidID          = &Error{Kind: ErrValidation, Message: "invalid id"}
	errPasswordTooLong    = &Error{Kind: ErrValidation, Message: "password must be at most 72 bytes"}
)
