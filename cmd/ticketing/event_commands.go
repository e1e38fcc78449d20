package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/jrsteele09/go-ticketing-client/events"
	"github.com/jrsteele09/go-ticketing-client/guard"
	"github.com/jrsteele09/go-ticketing-client/internal/cli"
	"github.com/jrsteele09/go-ticketing-client/internal/utils"
)

type eventFilterFlags struct {
	status  string
	country string
	city    string
}

func (f *eventFilterFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.status, "status", "", "filter by status (OPEN, ONGOING, CLOSED, CANCELLED, DONE)")
	fs.StringVar(&f.country, "country", "", "filter by country")
	fs.StringVar(&f.city, "city", "", "filter by city")
}

func (f *eventFilterFlags) params() events.ListParams {
	params := events.ListParams{Country: f.country, City: f.city}
	if f.status != "" {
		params.Status = utils.Ptr(events.Status(f.status))
	}
	return params
}

type eventInputFlags struct {
	input  events.Input
	status string
}

func (f *eventInputFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.input.Name, "name", "", "event name")
	fs.StringVar(&f.input.Description, "description", "", "event description")
	fs.StringVar(&f.input.StartDate, "start", "", "start date (RFC 3339)")
	fs.StringVar(&f.input.EndDate, "end", "", "end date (RFC 3339)")
	fs.StringVar(&f.input.Venue, "venue", "", "venue name")
	fs.StringVar(&f.input.Country, "country", "", "country")
	fs.StringVar(&f.input.City, "city", "", "city")
	fs.StringVar(&f.status, "status", "", "status (default: backend default)")
	fs.IntVar(&f.input.MaxCapacity, "capacity", 0, "maximum number of reservations")
	fs.Float64Var(&f.input.Price, "price", 0, "ticket price")
}

func (f *eventInputFlags) value() events.Input {
	input := f.input
	if f.status != "" {
		input.Status = utils.Ptr(events.Status(f.status))
	}
	return input
}

func (a *app) eventsCommand() *cli.Command {
	return &cli.Command{
		Name:    "events",
		Summary: "Browse and manage events",
		Subcommands: []*cli.Command{
			a.eventsListCommand(),
			a.eventsPublicCommand(),
			a.eventsGetCommand(),
			a.eventsCreateCommand(),
			a.eventsUpdateCommand(),
			a.eventsDeleteCommand(),
		},
	}
}

func (a *app) eventsListCommand() *cli.Command {
	var filter eventFilterFlags
	return &cli.Command{
		Name:    "list",
		Summary: "List events for staff",
		Route:   guard.RouteManageEvents,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
			filter.bind(fs)
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			list, err := a.events.List(ctx, filter.params())
			if err != nil {
				return err
			}
			return a.printEvents(list)
		},
	}
}

func (a *app) eventsPublicCommand() *cli.Command {
	var filter eventFilterFlags
	return &cli.Command{
		Name:    "public",
		Summary: "List the public catalogue, no sign in needed",
		Route:   guard.RoutePublicEvents,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("public", pflag.ContinueOnError)
			filter.bind(fs)
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			list, err := a.events.ListPublicSorted(ctx, filter.params())
			if err != nil {
				return err
			}
			return a.printEvents(list)
		},
	}
}

func (a *app) eventsGetCommand() *cli.Command {
	return &cli.Command{
		Name:    "get",
		Summary: "Show one event",
		Usage:   "ticketing events get <id>",
		Route:   guard.RouteEventDetails,
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "event")
			if err != nil {
				return err
			}
			event, err := a.events.Get(ctx, id)
			if err != nil {
				return err
			}
			return cli.PrintJSON(a.out, event)
		},
	}
}

func (a *app) eventsCreateCommand() *cli.Command {
	var flags eventInputFlags
	return &cli.Command{
		Name:    "create",
		Summary: "Create an event",
		Route:   guard.RouteCreateEvent,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.bind(fs)
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			event, err := a.events.Create(ctx, flags.value())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created event %d: %s\n", event.ID, event.Name)
			return nil
		},
	}
}

func (a *app) eventsUpdateCommand() *cli.Command {
	var flags eventInputFlags
	return &cli.Command{
		Name:    "update",
		Summary: "Replace an event's details",
		Usage:   "ticketing events update <id> [flags]",
		Route:   guard.RouteEditEvent,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.bind(fs)
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "event")
			if err != nil {
				return err
			}
			event, err := a.events.Update(ctx, id, flags.value())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated event %d: %s\n", event.ID, event.Name)
			return nil
		},
	}
}

func (a *app) eventsDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete an event",
		Usage:   "ticketing events delete <id>",
		Route:   guard.RouteEditEvent,
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "event")
			if err != nil {
				return err
			}
			resp, err := a.events.Delete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, resp.Message)
			return nil
		},
	}
}

func (a *app) printEvents(list []events.Event) error {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			string(e.Status),
			e.City + ", " + e.Country,
			e.StartDate,
			strconv.Itoa(e.RemainingSeats()),
			strconv.FormatFloat(e.Price, 'f', 2, 64),
		})
	}
	return cli.Table(a.out, []string{"ID", "NAME", "STATUS", "WHERE", "STARTS", "SEATS", "PRICE"}, rows)
}
