package ibt

import (
	"log/slog"

	"github.com/go-ibt/ibt/internal/options"
	"github.com/go-ibt/ibt/session"
)

// config holds the resolved settings for Open, built up from Option values.
type config struct {
	onSessionInfoError session.ErrorPolicy
	logger             *slog.Logger
}

func newConfig() *config {
	return &config{
		onSessionInfoError: session.OnErrorFail,
		logger:             slog.Default(),
	}
}

// Option is a functional option for Open.
type Option = options.Option[*config]

// OnSessionInfoErrorFail aborts Open with errs.ErrSessionInfoMalformed
// when the session-info YAML blob fails to parse. This is the default.
func OnSessionInfoErrorFail() Option {
	return options.NoError(func(c *config) {
		c.onSessionInfoError = session.OnErrorFail
	})
}

// OnSessionInfoErrorEmpty makes Open proceed with an empty session-info
// tree when the YAML blob fails to parse, instead of failing.
func OnSessionInfoErrorEmpty() Option {
	return options.NoError(func(c *config) {
		c.onSessionInfoError = session.OnErrorEmpty
	})
}

// WithLogger sets the structured logger the returned Telemetry uses for
// diagnostics (a Samples pass stopped by a short read). Duplicate
// variable names are not logged; see Telemetry.Warnings. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
