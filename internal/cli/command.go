package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/jrsteele09/go-ticketing-client/guard"
	"github.com/jrsteele09/go-ticketing-client/sessions"
)

// Command is a node in the CLI tree
type Command struct {
	Name    string
	Summary string
	Usage   string

	// Route is the navigation path the command stands for. When set, the
	// route guard runs against the session in the context before Run. A
	// "{id}" segment is filled from the first positional argument.
	Route string

	// Flags builds the flag set. It may be called more than once, so it must
	// bind to variables owned by the command constructor.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	Run func(ctx context.Context, args []string) error

	// Stderr receives help and guard messages; nil means os.Stderr
	Stderr io.Writer

	parent *Command
}

// Execute parses flags, dispatches to subcommands and guards the route before
// running the command.
func (c *Command) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.stderr())
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		for _, sub := range c.Subcommands {
			if sub.Name == args[0] {
				sub.parent = c
				return sub.Execute(ctx, args[1:])
			}
		}
		return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", args[0], c.FullName())
	}

	if len(c.Subcommands) > 0 && c.Run == nil {
		c.PrintHelp(c.stderr())
		return fmt.Errorf("subcommand required")
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			return fmt.Errorf("%s\n\nRun '%s --help' for usage.", err, c.FullName())
		}
		args = flagSet.Args()
	}

	if c.Run == nil {
		c.PrintHelp(c.stderr())
		return fmt.Errorf("no action defined for %q", c.FullName())
	}

	if c.Route != "" {
		if err := c.guard(ctx, args); err != nil {
			return err
		}
	}
	return c.Run(ctx, args)
}

// Location is the concrete path this invocation navigates to
func (c *Command) Location(args []string) string {
	if strings.Contains(c.Route, "{id}") && len(args) > 0 {
		return guard.Expand(c.Route, args[0])
	}
	return c.Route
}

func (c *Command) guard(ctx context.Context, args []string) error {
	holder := sessions.MustFromContext(ctx)
	location := c.Location(args)
	decision := guard.CheckRoute(holder.State(), c.Route, location)

	switch decision.Outcome {
	case guard.Render:
		return nil
	case guard.RenderNothing:
		return fmt.Errorf("%s: session is still loading", c.FullName())
	}

	switch decision.Target {
	case guard.RouteLogin:
		fmt.Fprintf(c.stderr(), "You need to sign in to open %s.\nRun '%s login', then run this command again.\n", decision.From, c.root().Name)
	default:
		fmt.Fprintf(c.stderr(), "Your account cannot open %s.\nRun '%s dashboard' to see what you can do.\n", location, c.root().Name)
	}
	return &RedirectError{Decision: decision}
}

// PrintHelp writes the usage, subcommands and flags of c to w
func (c *Command) PrintHelp(w io.Writer) {
	name := c.FullName()
	if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	switch {
	case c.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	case len(c.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		var flagHelp strings.Builder
		flagSet := c.Flags()
		flagSet.SetOutput(&flagHelp)
		flagSet.PrintDefaults()
		if flagHelp.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", flagHelp.String())
		}
	}
}

// FullName is the command path, e.g. "ticketing events list"
func (c *Command) FullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.FullName() + " " + c.Name
}

func (c *Command) root() *Command {
	if c.parent == nil {
		return c
	}
	return c.parent.root()
}

func (c *Command) stderr() io.Writer {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.Stderr != nil {
			return cmd.Stderr
		}
	}
	return os.Stderr
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
