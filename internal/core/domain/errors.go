package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrDocumentInUse      = errors.New("document already registered")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
)

// Payment errors
var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrMalformedResource   = errors.New("malformed notification resource")
	ErrInvalidSignature    = errors.New("invalid notification signature")
)

// ValidationError carries a message that is safe to show to the caller.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError builds a ValidationError
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
