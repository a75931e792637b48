package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui"
)

// BoardCmd returns the view board subcommand
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the kanban board",
		Long: `Print the kanban board, one column per status.

With --interactive the board opens full screen: move between columns and
cards with the arrow keys, pick a card up with space, drop it on another
column with enter, or shift it with shift+left/right.`,
		RunE: runBoard,
	}

	addFilterFlags(cmd)
	cmd.Flags().BoolP("interactive", "i", false, "Open the interactive board")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runBoard(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			if !cli.StdinIsTerminal() {
				return &cli.CodedError{Code: cli.ExitUsage, Err: errors.New("--interactive needs a terminal")}
			}
			return runInteractiveBoard(ctx, c, filter, cmd)
		}

		columns, err := c.App.TaskService.GetBoard(ctx, filter)
		if err != nil {
			return err
		}

		return f.Result("columns", columns, func(w io.Writer) error {
			st := tui.NewStyles(c.Config.ColorScheme)
			_, err := fmt.Fprintln(w, tui.RenderBoard(columns, st, tui.StaticView(renderWidth(cmd), time.Now())))
			return err
		})
	})
}

func runInteractiveBoard(ctx context.Context, c *cli.CLI, filter models.TaskFilter, cmd *cobra.Command) error {
	opts := []tui.Option{
		tui.WithContext(ctx),
		tui.WithKeyMappings(c.Config.KeyMappings),
		tui.WithColorScheme(c.Config.ColorScheme),
	}
	if c.Bus != nil {
		changes, cancel := c.Bus.Subscribe(events.Subscription{
			ProjectID: filter.ProjectID,
			Types:     []events.EventType{events.EventTaskChanged, events.EventProjectChanged},
		})
		defer cancel()
		opts = append(opts, tui.WithChanges(changes))
	}

	program := tea.NewProgram(
		tui.NewModel(c.App.TaskService, filter, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run board: %w", err)
	}
	return nil
}
