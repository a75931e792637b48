package view

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/gantt"
	"github.com/thenoetrevino/tablero/internal/tui"
)

// GanttCmd returns the view gantt subcommand
func GanttCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gantt",
		Aliases: []string{"timeline"},
		Short:   "Show tasks on a weekly timeline",
		Long: `Lay the matching tasks out on a timeline from the start of the week of
the earliest creation date to the latest due date, one row per task.

Examples:
  tablero view gantt --project=1
  tablero view gantt --week-start=monday --json
`,
		RunE: runGantt,
	}

	addFilterFlags(cmd)
	cmd.Flags().String("week-start", "", "First day of the week: sunday, monday or saturday (default from config)")
	cli.AddOutputFlags(cmd)
	return cmd
}

type ganttResult struct {
	gantt.Layout
	TotalDays int `json:"total_days"`
}

func runGantt(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		weekCfg := c.Config.Gantt
		if cmd.Flags().Changed("week-start") {
			weekCfg = config.GanttConfig{}
			weekCfg.WeekStart, _ = cmd.Flags().GetString("week-start")
		}

		layout, err := c.App.TaskService.GetGantt(ctx, filter, gantt.WithWeekStart(weekCfg.WeekStartDay()))
		if err != nil {
			return err
		}

		result := ganttResult{Layout: layout, TotalDays: layout.TotalDays()}
		return f.Result("gantt", result, func(w io.Writer) error {
			st := tui.NewStyles(c.Config.ColorScheme)
			_, err := fmt.Fprintln(w, tui.RenderGantt(layout, st, renderWidth(cmd)))
			return err
		})
	})
}
