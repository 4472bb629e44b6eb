// Package zlog bridges the library's Logger interface to zerolog.
package zlog

import (
	"github.com/rs/zerolog"

	medclient "github.com/goliatone/go-medclient"
)

var _ medclient.Logger = (*Adapter)(nil)

// Adapter implements medclient.Logger on top of a zerolog.Logger.
type Adapter struct {
	log zerolog.Logger
}

// New wraps the given zerolog logger.
func New(log zerolog.Logger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) Debug(format string, args ...any) {
	a.log.Debug().Msgf(format, args...)
}

func (a *Adapter) Info(format string, args ...any) {
	a.log.Info().Msgf(format, args...)
}

func (a *Adapter) Warn(format string, args ...any) {
	a.log.Warn().Msgf(format, args...)
}

func (a *Adapter) Error(format string, args ...any) {
	a.log.Error().Msgf(format, args...)
}
