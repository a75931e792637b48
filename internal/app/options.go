package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/thenoetrevino/tablero/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
	closers     []io.Closer
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock replaces time.Now for date-dependent statistics
func WithClock(now func() time.Time) Option {
	return func(cfg *appConfig) {
		cfg.now = now
	}
}

// WithCloser registers a resource released by App.Close, in reverse order
func WithCloser(c io.Closer) Option {
	return func(cfg *appConfig) {
		cfg.closers = append(cfg.closers, c)
	}
}
