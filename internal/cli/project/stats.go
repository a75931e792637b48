package project

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// StatsCmd returns the project stats subcommand
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize projects by status",
		RunE:  runStats,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		stats, err := c.App.ProjectService.GetStats(ctx)
		if err != nil {
			return err
		}

		return f.Result("stats", stats, func(w io.Writer) error {
			return cli.PrintTable(w, []string{"Total", "Active", "Completed", "Avg progress"}, [][]string{{
				strconv.Itoa(stats.TotalProjects),
				strconv.Itoa(stats.ActiveProjects),
				strconv.Itoa(stats.CompletedProjects),
				fmt.Sprintf("%d%%", stats.AverageProgress),
			}})
		})
	})
}
