package shared

import "errors"

var (
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates no identity could be resolved for the request.
	ErrUnauthenticated = errors.New("access denied")
	// ErrInvalidToken indicates a malformed, tampered or expired identity token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden indicates the resolved identity lacks rights on the target.
	ErrForbidden = errors.New("permission denied")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates missing or malformed request fields.
	ErrValidation = errors.New("validation failed")
)

type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string { return e.msg }

func (e *messageError) Unwrap() error { return e.kind }

// Validation returns a validation error carrying a caller-facing message.
func Validation(msg string) error {
	return &messageError{kind: ErrValidation, msg: msg}
}

// NotFound returns a not-found error carrying a caller-facing message.
func NotFound(msg string) error {
	return &messageError{kind: ErrNotFound, msg: msg}
}
