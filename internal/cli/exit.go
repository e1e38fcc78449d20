package cli

import (
	"fmt"

	"github.com/jrsteele09/go-ticketing-client/guard"
)

// RedirectError is returned when the route guard turned a command away. The
// guidance has already been printed.
type RedirectError struct {
	Decision guard.Decision
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirected to %s", e.Decision.Target)
}

func (e *RedirectError) ExitCode() int {
	if e.Decision.Target == guard.RouteLogin {
		return 2
	}
	return 3
}
