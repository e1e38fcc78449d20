package errors

import (
	"errors"
	"fmt"
)

// Common error types for the ticketing client
var (
	// Gateway errors
	ErrAuthenticationRequired = errors.New("Authentication required")
	ErrInvalidResponseFormat  = errors.New("Invalid response format")
	ErrTransport              = errors.New("request failed")

	// Credential errors
	ErrNoToken         = errors.New("no access token")
	ErrNoRefreshToken  = errors.New("no refresh token")
	ErrSessionClosed   = errors.New("session closed")
	ErrInvalidSealKey  = errors.New("invalid credentials key")
	ErrCorruptedSealed = errors.New("sealed credentials could not be opened")

	// Input errors
	ErrValidation = errors.New("validation failed")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Validationf builds an ErrValidation error with a readable message
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
