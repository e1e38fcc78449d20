package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
)

// ReadSecret reads a password from file, or prompts on the terminal with echo
// disabled when file is empty or "-".
func ReadSecret(prompt, file string) (string, error) {
	if file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		secret := strings.TrimRight(string(data), "\r\n")
		if secret == "" {
			return "", apperrors.Validationf("file %s is empty", file)
		}
		return secret, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", apperrors.Validationf("no terminal available for the password prompt (use --password-file)")
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(secret), nil
}
