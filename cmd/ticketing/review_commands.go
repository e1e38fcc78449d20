package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jrsteele09/go-ticketing-client/guard"
	"github.com/jrsteele09/go-ticketing-client/internal/cli"
	"github.com/jrsteele09/go-ticketing-client/reviews"
)

func (a *app) reviewsCommand() *cli.Command {
	return &cli.Command{
		Name:    "reviews",
		Summary: "Write and remove event reviews",
		Subcommands: []*cli.Command{
			a.reviewsCreateCommand(),
			a.reviewsDeleteCommand(),
		},
	}
}

func (a *app) reviewsCreateCommand() *cli.Command {
	var text string
	var rating int
	return &cli.Command{
		Name:    "create",
		Summary: "Review an event",
		Usage:   "ticketing reviews create <event-id> --rating n --text \"...\"",
		Route:   guard.RouteClientReviews,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
			fs.StringVar(&text, "text", "", "review text")
			fs.IntVar(&rating, "rating", 5, "rating from 0 to 5")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			eventID, err := cli.ParseID(args, "event")
			if err != nil {
				return err
			}
			review, err := a.reviews.Create(ctx, reviews.CreateInput{
				ReviewText: text,
				Rating:     rating,
				EventID:    eventID,
				UserID:     a.session.User().ID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Review %d saved\n", review.ID)
			return nil
		},
	}
}

func (a *app) reviewsDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a review",
		Usage:   "ticketing reviews delete <id>",
		Route:   guard.RouteClientReviews,
		Run: func(ctx context.Context, args []string) error {
			id, err := cli.ParseID(args, "review")
			if err != nil {
				return err
			}
			resp, err := a.reviews.Delete(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, resp.Message)
			return nil
		},
	}
}
