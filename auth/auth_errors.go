package auth

import (
	"errors"

	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
)

var (
	InvalidEmailErr          = errors.New("Please enter a valid email address")
	PasswordTooShortErr      = errors.New("Password must be at least 6 characters")
	PasswordsDontMatchErr    = errors.New("Passwords do not match")
	MissingLoginResponseErr  = errors.New("login response is missing the user or tokens")
	MissingRefreshTokenErr   = apperrors.ErrNoRefreshToken
	MissingRefreshedTokenErr = errors.New("refresh response is missing the access token")
)
