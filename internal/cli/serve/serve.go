// Package serve runs the HTTP API.
package serve

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/server"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve the JSON API until interrupted. Writes made through the API are
counted per change type on /api/metrics.

Examples:
  tablero serve
  tablero serve --addr=127.0.0.1:9000
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: server.addr)")
	cmd.Flags().Duration("shutdown-timeout", 0, "Grace period for in-flight requests (default: server.shutdown_timeout)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, _ *cli.OutputFormatter) error {
		addr := c.Config.Server.Addr
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			addr = v
		}
		timeout := c.Config.Server.ShutdownTimeout
		if v, _ := cmd.Flags().GetDuration("shutdown-timeout"); v > 0 {
			timeout = v
		}

		opts := []server.Option{server.WithLogger(c.App.Logger())}
		if c.Bus != nil {
			opts = append(opts, server.WithBus(c.Bus))
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("serving", "addr", addr, "shutdown_timeout", timeout)
		return server.New(c.App, opts...).Run(ctx, addr, timeout)
	})
}
