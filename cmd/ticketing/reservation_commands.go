package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/jrsteele09/go-ticketing-client/guard"
	"github.com/jrsteele09/go-ticketing-client/internal/cli"
	apperrors "github.com/jrsteele09/go-ticketing-client/internal/errors"
	"github.com/jrsteele09/go-ticketing-client/reservations"
)

func (a *app) reservationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "reservations",
		Summary: "Book, cancel and list reservations",
		Subcommands: []*cli.Command{
			a.reservationsCreateCommand(),
			a.reservationsCancelCommand(),
			a.reservationsMineCommand(),
			a.reservationsForEventCommand(),
		},
	}
}

func (a *app) reservationsCreateCommand() *cli.Command {
	var quantity int
	return &cli.Command{
		Name:    "create",
		Summary: "Reserve seats for an event",
		Usage:   "ticketing reservations create <event-id> [--quantity n]",
		Route:   guard.RouteReserve,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
			fs.IntVarP(&quantity, "quantity", "n", 1, "number of seats")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			eventID, err := cli.ParseID(args, "event")
			if err != nil {
				return err
			}

			event, err := a.events.Get(ctx, eventID)
			if err != nil {
				return err
			}
			if !event.Bookable() {
				return apperrors.Validationf("event %d is not open for reservations", eventID)
			}
			if quantity > event.RemainingSeats() {
				return apperrors.Validationf("only %d seats left", event.RemainingSeats())
			}

			input := reservations.CreateInput{UserID: a.session.User().ID, EventID: eventID}
			created, err := a.reservations.CreateMany(ctx, input, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Successfully created %d reservation(s) for %s\n", len(created), event.Name)
			return nil
		},
	}
}

func (a *app) reservationsCancelCommand() *cli.Command {
	return &cli.Command{
		Name:    "cancel",
		Summary: "Cancel a reservation",
		Usage:   "ticketing reservations cancel <id>",
		Route:   guard.RouteClientReservations,
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "reservation")
			if err != nil {
				return err
			}
			resp, err := a.reservations.Cancel(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, resp.Message)
			return nil
		},
	}
}

func (a *app) reservationsMineCommand() *cli.Command {
	var includeCancelled bool
	return &cli.Command{
		Name:    "mine",
		Summary: "List your reservations",
		Route:   guard.RouteClientReservations,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("mine", pflag.ContinueOnError)
			fs.BoolVar(&includeCancelled, "include-cancelled", false, "include cancelled reservations")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			list, err := a.reservations.ListByUser(ctx, a.session.User().ID, reservations.ListOptions{IncludeCancelled: includeCancelled})
			if err != nil {
				return err
			}
			return a.printReservations(list)
		},
	}
}

func (a *app) reservationsForEventCommand() *cli.Command {
	var includeCancelled bool
	return &cli.Command{
		Name:    "for-event",
		Summary: "List the reservations of an event",
		Usage:   "ticketing reservations for-event <event-id>",
		Route:   guard.RouteEventReservations,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("for-event", pflag.ContinueOnError)
			fs.BoolVar(&includeCancelled, "include-cancelled", false, "include cancelled reservations")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			eventID, err := cli.ParseID(args, "event")
			if err != nil {
				return err
			}
			list, err := a.reservations.ListByEvent(ctx, eventID, reservations.ListOptions{IncludeCancelled: includeCancelled})
			if err != nil {
				return err
			}
			return a.printReservations(list)
		},
	}
}

func (a *app) printReservations(list []reservations.Reservation) error {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		event, who := strconv.FormatInt(r.EventID, 10), strconv.FormatInt(r.UserID, 10)
		if r.Event != nil {
			event = r.Event.Name
		}
		if r.User != nil {
			who = r.User.Email
		}
		state := "active"
		if r.IsCancelled {
			state = "cancelled"
		}
		rows = append(rows, []string{strconv.FormatInt(r.ID, 10), event, who, strconv.FormatFloat(r.Price, 'f', 2, 64), state})
	}
	return cli.Table(a.out, []string{"ID", "EVENT", "USER", "PRICE", "STATE"}, rows)
}
