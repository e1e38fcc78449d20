package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jrsteele09/go-ticketing-client/auth"
	"github.com/jrsteele09/go-ticketing-client/guard"
	"github.com/jrsteele09/go-ticketing-client/internal/cli"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/token"
	"github.com/jrsteele09/go-ticketing-client/users"
)

func (a *app) loginCommand() *cli.Command {
	var passwordFile, returnTo string

	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and save the session locally",
		Usage:   "ticketing login <email> [--password-file path] [--return-to path]",
		Route:   guard.RouteLogin,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
			fs.StringVar(&passwordFile, "password-file", "", "read the password from a file (default: prompt)")
			fs.StringVar(&returnTo, "return-to", "", "location to continue with after signing in")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return apperrors.Validationf("exactly one email address is required")
			}
			password, err := cli.ReadSecret("Password: ", passwordFile)
			if err != nil {
				return err
			}

			resp, err := a.auth.Login(ctx, auth.Credentials{Email: args[0], Password: password})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", resp.User.Email, resp.User.Role)
			next := guard.RouteDashboard
			if returnTo != "" && guard.Check(a.session.State(), returnTo).Outcome == guard.Render {
				next = returnTo
			}
			fmt.Fprintf(a.out, "Continue at %s\n", next)
			return nil
		},
	}
}

func (a *app) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Revoke the refresh token and forget the local session",
		Run: func(ctx context.Context, _ []string) error {
			err := a.auth.Logout(ctx)
			fmt.Fprintln(a.out, "Logged out")
			return err
		},
	}
}

func (a *app) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the signed in user and token expiry",
		Route:   guard.RouteDashboard,
		Run: func(_ context.Context, _ []string) error {
			state := a.session.State()
			fmt.Fprintf(a.out, "User:   %s (id %d)\n", state.User.Email, state.User.ID)
			fmt.Fprintf(a.out, "Role:   %s\n", displayRole(state.User.Role))

			if state.AccessToken == "" {
				fmt.Fprintln(a.out, "Token:  none")
				return nil
			}
			claims, err := token.Inspect(state.AccessToken)
			if err != nil {
				fmt.Fprintln(a.out, "Token:  opaque")
				return nil
			}
			switch {
			case claims.ExpiresAt.IsZero():
				fmt.Fprintln(a.out, "Token:  no expiry")
			case claims.Expired():
				fmt.Fprintf(a.out, "Token:  expired %s (run 'ticketing refresh')\n", claims.ExpiresAt.Format(time.RFC3339))
			default:
				fmt.Fprintf(a.out, "Token:  valid until %s\n", claims.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func (a *app) refreshCommand() *cli.Command {
	return &cli.Command{
		Name:    "refresh",
		Summary: "Exchange the refresh token for a new access token",
		Run: func(ctx context.Context, _ []string) error {
			if _, err := a.auth.Refresh(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Access token refreshed")
			return nil
		},
	}
}

func (a *app) forgotPasswordCommand() *cli.Command {
	var passwordFile string

	return &cli.Command{
		Name:    "forgot-password",
		Summary: "Set a new password for an account",
		Usage:   "ticketing forgot-password <email> [--password-file path]",
		Route:   guard.RouteForgotPassword,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("forgot-password", pflag.ContinueOnError)
			fs.StringVar(&passwordFile, "password-file", "", "read the new password from a file (default: prompt twice)")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return apperrors.Validationf("exactly one email address is required")
			}
			email := strings.TrimSpace(args[0])
			if err := auth.NewValidator().ValidateEmail(email); err != nil {
				return err
			}

			account, err := a.users.FindByEmail(ctx, email)
			if err != nil {
				return err
			}

			password, err := cli.ReadSecret("New password: ", passwordFile)
			if err != nil {
				return err
			}
			confirm := password
			if passwordFile == "" || passwordFile == "-" {
				if confirm, err = cli.ReadSecret("Confirm password: ", ""); err != nil {
					return err
				}
			}

			if err := a.auth.ForgotPassword(ctx, account.ID, password, confirm); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Password updated, continue at %s\n", guard.RouteLogin)
			return nil
		},
	}
}

func (a *app) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Summary: "Show what the signed in user can do",
		Route:   guard.RouteDashboard,
		Run: func(_ context.Context, _ []string) error {
			user := a.session.User()
			fmt.Fprintf(a.out, "Welcome back, %s\n", user.Email)

			groups := guard.NavigationFor(user.Role)
			if user.HasRole(users.RoleClient) {
				groups = append(groups, guard.NavGroup{
					Label: "Tickets",
					Children: []guard.NavItem{
						{Label: "Browse Events", Href: guard.RouteClientEvents},
						{Label: "My Reservations", Href: guard.RouteClientReservations},
					},
				})
			}
			for _, group := range groups {
				fmt.Fprintf(a.out, "\n%s\n", group.Label)
				for _, item := range group.Children {
					fmt.Fprintf(a.out, "  %-20s %s\n", item.Label, item.Href)
				}
			}
			return nil
		},
	}
}

func displayRole(role users.Role) string {
	if role == "" {
		return "none"
	}
	return strings.ReplaceAll(string(role), "_", " ")
}
