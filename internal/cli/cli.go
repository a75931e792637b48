// Package cli holds what every command shares: opening the store, output
// formatting and exit codes. The commands live in the subpackages.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	Bus    *events.Bus // Change events of this process; nil for an injected app

	owned bool
}

type appKey struct{}

// WithApp makes commands run against a instead of opening the configured
// store. Tests use it to inject an in-memory database.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// GetCLIFromContext returns the injected app when present, otherwise it
// opens the configured store
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey{}).(*app.App); ok && a != nil {
		return &CLI{App: a, Config: config.Default()}, nil
	}
	return NewCLI(ctx)
}

// NewCLI loads the config and opens the database it names
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.InitDB(ctx, database.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewBus(events.WithLogger(slog.Default()))
	application := app.New(database.NewRepository(db),
		app.WithLogger(slog.Default()),
		app.WithEventPublisher(bus),
		app.WithCloser(db),
	)

	return &CLI{App: application, Config: cfg, Bus: bus, owned: true}, nil
}

// Close cleans up CLI resources. An injected app is left open.
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
	return c.App.Close()
}

// Run opens the CLI for cmd, calls fn and reports any error through the
// command's formatter
func Run(cmd *cobra.Command, fn func(ctx context.Context, c *CLI, f *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := NewFormatter(cmd)

	cliInstance, err := GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	if err := fn(ctx, cliInstance, formatter); err != nil {
		return formatter.Fail(err)
	}
	return nil
}
