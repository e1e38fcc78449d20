package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-ticketing-client/credstore"
	"github.com/jrsteele09/go-ticketing-client/guard"
	"github.com/jrsteele09/go-ticketing-client/internal/cli"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/sessions"
	"github.com/jrsteele09/go-ticketing-client/users"
)

type invocation struct {
	ran  bool
	args []string
	city string
}

func newTree(stderr *bytes.Buffer, inv *invocation) *cli.Command {
	return &cli.Command{
		Name:   "ticketing",
		Stderr: stderr,
		Subcommands: []*cli.Command{
			{
				Name: "events",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Route: guard.RouteManageEvents,
						Flags: func() *pflag.FlagSet {
							fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
							fs.StringVar(&inv.city, "city", "", "filter by city")
							return fs
						},
						Run: func(_ context.Context, args []string) error {
							inv.ran = true
							inv.args = args
							return nil
						},
					},
					{
						Name:  "edit",
						Route: guard.RouteEditEvent,
						Run: func(_ context.Context, args []string) error {
							inv.ran = true
							inv.args = args
							return nil
						},
					},
					{
						Name:  "show",
						Route: guard.RouteEventDetails,
						Run: func(_ context.Context, args []string) error {
							inv.ran = true
							inv.args = args
							return nil
						},
					},
				},
			},
		},
	}
}

func sessionContext(u *users.User) context.Context {
	holder := sessions.Open(credstore.New(credstore.NewMemoryBackend(), nil), nil)
	if u != nil {
		holder.SetSession(u, "T1", "R1")
	}
	return sessions.NewContext(context.Background(), holder)
}

func TestCommand_Execute(t *testing.T) {
	t.Run("dispatches and parses flags", func(t *testing.T) {
		var stderr bytes.Buffer
		var inv invocation
		ctx := sessionContext(&users.User{ID: 1, Role: users.RoleAdmin})

		err := newTree(&stderr, &inv).Execute(ctx, []string{"events", "list", "--city", "Lisbon", "extra"})
		require.NoError(t, err)
		require.True(t, inv.ran)
		require.Equal(t, "Lisbon", inv.city)
		require.Equal(t, []string{"extra"}, inv.args)
	})

	t.Run("signed out users are sent to login", func(t *testing.T) {
		var stderr bytes.Buffer
		var inv invocation

		err := newTree(&stderr, &inv).Execute(sessionContext(nil), []string{"events", "edit", "5"})
		var redirect *cli.RedirectError
		require.ErrorAs(t, err, &redirect)
		require.Equal(t, guard.RouteLogin, redirect.Decision.Target)
		require.Equal(t, "/events/5/edit", redirect.Decision.From)
		require.Equal(t, 2, redirect.ExitCode())
		require.False(t, inv.ran)
		require.Contains(t, stderr.String(), "ticketing login")
	})

	t.Run("wrong role is sent to the dashboard", func(t *testing.T) {
		var stderr bytes.Buffer
		var inv invocation
		ctx := sessionContext(&users.User{ID: 1, Role: users.RoleClient})

		err := newTree(&stderr, &inv).Execute(ctx, []string{"events", "list"})
		var redirect *cli.RedirectError
		require.ErrorAs(t, err, &redirect)
		require.Equal(t, guard.RouteDashboard, redirect.Decision.Target)
		require.Equal(t, 3, redirect.ExitCode())
		require.False(t, inv.ran)
		require.Contains(t, stderr.String(), "ticketing dashboard")
	})

	t.Run("the declared route decides whatever the id expands to", func(t *testing.T) {
		var stderr bytes.Buffer
		var inv invocation
		client := sessionContext(&users.User{ID: 1, Role: users.RoleClient})

		err := newTree(&stderr, &inv).Execute(client, []string{"events", "edit", "1/x"})
		var redirect *cli.RedirectError
		require.ErrorAs(t, err, &redirect)
		require.Equal(t, guard.RouteDashboard, redirect.Decision.Target)
		require.False(t, inv.ran)

		err = newTree(&stderr, &inv).Execute(sessionContext(nil), []string{"events", "show", "public"})
		require.ErrorAs(t, err, &redirect)
		require.Equal(t, guard.RouteLogin, redirect.Decision.Target)
		require.Equal(t, "/events/public", redirect.Decision.From)
		require.False(t, inv.ran)

		require.NoError(t, newTree(&stderr, &inv).Execute(client, []string{"events", "show", "7"}))
		require.True(t, inv.ran)
	})

	t.Run("unknown commands and flags", func(t *testing.T) {
		var stderr bytes.Buffer
		var inv invocation
		ctx := sessionContext(&users.User{ID: 1, Role: users.RoleAdmin})

		require.ErrorContains(t, newTree(&stderr, &inv).Execute(ctx, []string{"concerts"}), `unknown command "concerts"`)
		require.ErrorContains(t, newTree(&stderr, &inv).Execute(ctx, []string{"events", "list", "--venue", "x"}), "unknown flag")
		require.Error(t, newTree(&stderr, &inv).Execute(ctx, []string{"events"}))
		require.False(t, inv.ran)
	})

	t.Run("help prints subcommands", func(t *testing.T) {
		var stderr bytes.Buffer
		var inv invocation
		require.NoError(t, newTree(&stderr, &inv).Execute(context.Background(), []string{"--help"}))
		require.Contains(t, stderr.String(), "events")
	})
}

func TestParseID(t *testing.T) {
	id, err := cli.ParseID([]string{"42"}, "event")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	for _, args := range [][]string{nil, {"abc"}, {"0"}} {
		_, err := cli.ParseID(args, "event")
		require.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, cli.Table(&out, []string{"ID", "NAME"}, [][]string{{"1", "Jazz Night"}}))
	require.Contains(t, out.String(), "Jazz Night")
	require.Contains(t, out.String(), "ID")
}
