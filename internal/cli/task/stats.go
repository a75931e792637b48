package task

import (
	"context"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// StatsCmd returns the task stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count tasks per status",
		RunE:  runStats,
	}

	cmd.Flags().Int("project", 0, "Only count tasks of this project")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		projectID, _ := cmd.Flags().GetInt("project")

		stats, err := c.App.TaskService.GetStats(ctx, projectID)
		if err != nil {
			return err
		}

		return f.Result("stats", stats, func(w io.Writer) error {
			return cli.PrintTable(w, []string{"Total", "To Do", "In Progress", "Done", "Overdue"}, [][]string{{
				strconv.Itoa(stats.TotalTasks),
				strconv.Itoa(stats.TodoTasks),
				strconv.Itoa(stats.InProgressTasks),
				strconv.Itoa(stats.DoneTasks),
				strconv.Itoa(stats.OverdueTasks),
			}})
		})
	})
}
