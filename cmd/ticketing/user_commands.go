package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jrsteele09/go-ticketing-client/auth"
	"github.com/jrsteele09/go-ticketing-client/guard"
	"github.com/jrsteele09/go-ticketing-client/internal/cli"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/users"
)

func (a *app) usersCommand() *cli.Command {
	return &cli.Command{
		Name:    "users",
		Summary: "Manage platform users",
		Subcommands: []*cli.Command{
			a.usersListCommand(),
			a.usersAdminsCommand(),
			a.usersGetCommand(),
			a.usersCreateCommand("create-admin", users.RoleAdmin, guard.RouteCreateAdmin),
			a.usersCreateCommand("create-super-admin", users.RoleSuperAdmin, guard.RouteCreateSuperAdmin),
			a.usersUpdateCommand(),
			a.usersDeleteCommand(),
			a.usersFindCommand(),
		},
	}
}

func (a *app) usersListCommand() *cli.Command {
	var role string
	return &cli.Command{
		Name:    "list",
		Summary: "List users",
		Route:   guard.RouteManageUsers,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
			fs.StringVar(&role, "role", "", "only list users with this role")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			var (
				accounts []users.Account
				err      error
			)
			if role != "" {
				accounts, err = a.users.ListByRole(ctx, users.Role(role))
			} else {
				accounts, err = a.users.List(ctx)
			}
			if err != nil {
				return err
			}
			return a.printAccounts(accounts)
		},
	}
}

func (a *app) usersAdminsCommand() *cli.Command {
	return &cli.Command{
		Name:    "admins",
		Summary: "List admins",
		Route:   guard.RouteManageUsers,
		Run: func(ctx context.Context, _ []string) error {
			accounts, err := a.users.ListByRole(ctx, users.RoleAdmin)
			if err != nil {
				return err
			}
			return a.printAccounts(accounts)
		},
	}
}

func (a *app) usersGetCommand() *cli.Command {
	return &cli.Command{
		Name:    "get",
		Summary: "Show one user",
		Usage:   "ticketing users get <id>",
		Route:   guard.RouteEditUser,
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "user")
			if err != nil {
				return err
			}
			account, err := a.users.Get(ctx, id)
			if err != nil {
				return err
			}
			return cli.PrintJSON(a.out, account)
		},
	}
}

func (a *app) usersCreateCommand(name string, role users.Role, route string) *cli.Command {
	var input users.CreateInput
	var passwordFile string
	return &cli.Command{
		Name:    name,
		Summary: fmt.Sprintf("Create a user with the %s role", role),
		Route:   route,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
			fs.StringVar(&input.FirstName, "first-name", "", "first name")
			fs.StringVar(&input.LastName, "last-name", "", "last name")
			fs.StringVar(&input.Email, "email", "", "email address")
			fs.StringVar(&input.Birthday, "birthday", "", "birthday (YYYY-MM-DD)")
			fs.StringVar(&passwordFile, "password-file", "", "read the initial password from a file (default: prompt)")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			if input.FirstName == "" || input.LastName == "" {
				return apperrors.Validationf("first and last name are required")
			}
			input.Email = strings.TrimSpace(input.Email)
			if err := auth.NewValidator().ValidateEmail(input.Email); err != nil {
				return err
			}
			password, err := cli.ReadSecret("Initial password: ", passwordFile)
			if err != nil {
				return err
			}
			if err := auth.NewValidator().ValidatePasswordChange(password, password); err != nil {
				return err
			}

			create := input
			create.Password = password
			create.Role = role
			account, err := a.users.Create(ctx, create)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created %s %d: %s\n", account.Role, account.ID, account.Email)
			return nil
		},
	}
}

func (a *app) usersUpdateCommand() *cli.Command {
	var input users.UpdateInput
	return &cli.Command{
		Name:    "update",
		Summary: "Update a user's name and email",
		Usage:   "ticketing users update <id> --first-name ... --last-name ... --email ...",
		Route:   guard.RouteEditUser,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
			fs.StringVar(&input.FirstName, "first-name", "", "first name")
			fs.StringVar(&input.LastName, "last-name", "", "last name")
			fs.StringVar(&input.Email, "email", "", "email address")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "user")
			if err != nil {
				return err
			}
			input.Email = strings.TrimSpace(input.Email)
			if err := auth.NewValidator().ValidateEmail(input.Email); err != nil {
				return err
			}
			account, err := a.users.Update(ctx, id, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated user %d: %s\n", account.ID, account.Email)
			return nil
		},
	}
}

func (a *app) usersDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a user",
		Usage:   "ticketing users delete <id>",
		Route:   guard.RouteEditUser,
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "user")
			if err != nil {
				return err
			}
			resp, err := a.users.Delete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s (%s)\n", resp.Message, resp.User.Email)
			return nil
		},
	}
}

func (a *app) usersFindCommand() *cli.Command {
	return &cli.Command{
		Name:    "find",
		Summary: "Find a user by email",
		Usage:   "ticketing users find <email>",
		Route:   guard.RouteManageUsers,
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return apperrors.Validationf("exactly one email address is required")
			}
			account, err := a.users.FindByEmail(ctx, args[0])
			if err != nil {
				return err
			}
			return cli.PrintJSON(a.out, account)
		},
	}
}

func (a *app) printAccounts(accounts []users.Account) error {
	rows := make([][]string, 0, len(accounts))
	for _, u := range accounts {
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.FirstName + " " + u.LastName, u.Email, displayRole(u.Role)})
	}
	return cli.Table(a.out, []string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
}
