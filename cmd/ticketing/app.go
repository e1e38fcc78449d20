package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-ticketing-client/apiclient"
	"github.com/jrsteele09/go-ticketing-client/auth"
	"github.com/jrsteele09/go-ticketing-client/credstore"
	"github.com/jrsteele09/go-ticketing-client/events"
	"github.com/jrsteele09/go-ticketing-client/internal/config"
	"github.com/jrsteele09/go-ticketing-client/reservations"
	"github.com/jrsteele09/go-ticketing-client/reviews"
	"github.com/jrsteele09/go-ticketing-client/sessions"
	"github.com/jrsteele09/go-ticketing-client/token"
	"github.com/jrsteele09/go-ticketing-client/users"
)

// app holds everything a command needs
type app struct {
	config  config.Config
	out     io.Writer
	store   *credstore.Store
	session *sessions.Holder
	gateway *apiclient.Gateway

	auth         *auth.Service
	users        *users.Service
	events       *events.Service
	reservations *reservations.Service
	reviews      *reviews.Service
}

func newApp(c config.Config, out io.Writer) (*app, error) {
	sealer, err := credstore.NewSealerFromHex(c.GetCredentialsKey())
	if err != nil {
		return nil, fmt.Errorf("credentials key: %w", err)
	}

	diag := credstore.NewLogDiagnostics()
	store := credstore.New(credstore.NewFileBackend(c.GetCredentialsFile(), sealer), diag)
	session := sessions.Open(store, diag)

	gateway := apiclient.New(c.GetAPIBaseURL(), token.NewStoreSource(store),
		apiclient.WithTimeout(c.GetRequestTimeout()),
		apiclient.WithUserAgent(c.GetUserAgent()),
		apiclient.WithLogger(log.Logger),
	)

	return &app{
		config:       c,
		out:          out,
		store:        store,
		session:      session,
		gateway:      gateway,
		auth:         auth.NewService(gateway, session),
		users:        users.NewService(gateway),
		events:       events.NewService(gateway),
		reservations: reservations.NewService(gateway),
		reviews:      reviews.NewService(gateway),
	}, nil
}

func (a *app) Close() {
	a.session.Close()
}
