package project

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE:  runList,
	}

	cmd.Flags().String("status", "", "Only projects with this status")
	cmd.Flags().String("search", "", "Match name or description")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		var filter models.ProjectFilter
		filter.Search, _ = cmd.Flags().GetString("search")
		if raw, _ := cmd.Flags().GetString("status"); raw != "" {
			status, err := models.ParseProjectStatus(raw)
			if err != nil {
				return err
			}
			filter.Status = status
		}

		projects, err := c.App.ProjectService.ListProjects(ctx, filter)
		if err != nil {
			return err
		}

		if f.Quiet {
			ids := make([]int, len(projects))
			for i, p := range projects {
				ids[i] = p.ID
			}
			return f.IDs(ids)
		}

		return f.Result("projects", projects, func(w io.Writer) error {
			if len(projects) == 0 {
				_, err := fmt.Fprintln(w, "No projects found")
				return err
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					strconv.Itoa(p.ID),
					cli.Truncate(p.Name, 32),
					string(p.Status),
					cli.FormatDate(p.DueDate),
					fmt.Sprintf("%d%%", p.Progress),
					cli.Truncate(strings.Join(p.TeamMembers, ", "), 30),
				})
			}
			return cli.PrintTable(w, []string{"ID", "Name", "Status", "Due", "Progress", "Team"}, rows)
		})
	})
}
