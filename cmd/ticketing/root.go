package main

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-ticketing-client/internal/cli"
)

func (a *app) rootCommand() *cli.Command {
	return &cli.Command{
		Name:    "ticketing",
		Summary: "Command line client for the event ticketing platform",
		Subcommands: []*cli.Command{
			a.loginCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.refreshCommand(),
			a.forgotPasswordCommand(),
			a.dashboardCommand(),
			a.eventsCommand(),
			a.reservationsCommand(),
			a.reviewsCommand(),
			a.usersCommand(),
			a.versionCommand(),
		},
	}
}

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print the client version",
		Run: func(_ context.Context, _ []string) error {
			displayAppname(a.config.GetAppName())
			fmt.Fprintf(a.out, "%s %s (%s)\n", a.config.GetAppName(), Version, a.config.GetAPIBaseURL())
			return nil
		},
	}
}
