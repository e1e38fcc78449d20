package auth_test

import (
	"testing"

	"github.com/jrsteele09/go-ticketing-client/auth"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateLogin(t *testing.T) {
	v := auth.NewValidator()

	t.Run("valid credentials", func(t *testing.T) {
		require.NoError(t, v.ValidateLogin("user@example.com", "secret1"))
	})

	t.Run("empty email", func(t *testing.T) {
		err := v.ValidateLogin("", "secret1")
		require.ErrorIs(t, err, apperrors.ErrValidation)
		require.ErrorIs(t, err, auth.InvalidEmailErr)
	})

	for _, email := range []string{"userexample.com", "user@localhost", "Name <user@example.com>", "user@.com", "user@example."} {
		t.Run("invalid email "+email, func(t *testing.T) {
			err := v.ValidateLogin(email, "secret1")
			require.ErrorIs(t, err, auth.InvalidEmailErr)
		})
	}

	t.Run("short password", func(t *testing.T) {
		err := v.ValidateLogin("user@example.com", "12345")
		require.ErrorIs(t, err, auth.PasswordTooShortErr)
		require.Contains(t, err.Error(), "at least 6 characters")
	})
}

func TestValidator_ValidatePasswordChange(t *testing.T) {
	v := auth.NewValidator()

	t.Run("matching", func(t *testing.T) {
		require.NoError(t, v.ValidatePasswordChange("secret1", "secret1"))
	})

	t.Run("short", func(t *testing.T) {
		require.ErrorIs(t, v.ValidatePasswordChange("123", "123"), auth.PasswordTooShortErr)
	})

	t.Run("short confirmation", func(t *testing.T) {
		require.ErrorIs(t, v.ValidatePasswordChange("secret1", "sec"), auth.PasswordTooShortErr)
	})

	t.Run("mismatch", func(t *testing.T) {
		err := v.ValidatePasswordChange("secret1", "secret2")
		require.ErrorIs(t, err, auth.PasswordsDontMatchErr)
		require.Contains(t, err.Error(), "Passwords do not match")
	})
}
