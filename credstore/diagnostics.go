package credstore

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Diagnostics receives storage failures that are deliberately not returned
// to callers.
type Diagnostics interface {
	Warn(message string, err error)
}

// LogDiagnostics writes warnings to a zerolog logger
type LogDiagnostics struct {
	Logger zerolog.Logger
}

var _ Diagnostics = LogDiagnostics{}

// NewLogDiagnostics returns a sink on the global zerolog logger
func NewLogDiagnostics() LogDiagnostics {
	return LogDiagnostics{Logger: log.Logger.With().Str("component", "credstore").Logger()}
}

func (d LogDiagnostics) Warn(message string, err error) {
	d.Logger.Warn().Err(err).Msg(message)
}

// DiscardDiagnostics drops every warning
type DiscardDiagnostics struct{}

func (DiscardDiagnostics) Warn(string, error) {}
