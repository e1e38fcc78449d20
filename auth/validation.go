package auth

import (
	"fmt"
	"net/mail"
	"strings"

	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
)

// MinPasswordLength is the shortest password the backend accepts
const MinPasswordLength = 6

// Validator checks form input before it is sent to the backend
type Validator struct{}

// NewValidator creates a new Validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateLogin checks the login form
func (v *Validator) ValidateLogin(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	return v.validatePassword(password)
}

// ValidateEmail accepts a bare address with a dotted domain, e.g. "a@b.com"
func (v *Validator) ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid(InvalidEmailErr)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return invalid(InvalidEmailErr)
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return invalid(InvalidEmailErr)
	}
	return nil
}

// ValidatePasswordChange checks the new password form
func (v *Validator) ValidatePasswordChange(password, confirmPassword string) error {
	if err := v.validatePassword(password); err != nil {
		return err
	}
	if len(confirmPassword) < MinPasswordLength {
		return invalid(PasswordTooShortErr)
	}
	if password != confirmPassword {
		return invalid(PasswordsDontMatchErr)
	}
	return nil
}

func (v *Validator) validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return invalid(PasswordTooShortErr)
	}
	return nil
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
}
