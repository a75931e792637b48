package project

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project and its task counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

type projectDetail struct {
	*models.Project
	Tasks models.TaskStats `json:"task_stats"`
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		project, err := c.App.ProjectService.GetProject(ctx, id)
		if err != nil {
			return err
		}
		stats, err := c.App.TaskService.GetStats(ctx, id)
		if err != nil {
			return err
		}
		detail := projectDetail{Project: project, Tasks: stats}

		return f.Result("project", detail, func(w io.Writer) error {
			fmt.Fprintf(w, "#%d %s\n", project.ID, project.Name)
			fmt.Fprintf(w, "Status:   %s\n", project.Status)
			fmt.Fprintf(w, "Due:      %s\n", cli.FormatDate(project.DueDate))
			fmt.Fprintf(w, "Progress: %d%%\n", project.Progress)
			if len(project.TeamMembers) > 0 {
				fmt.Fprintf(w, "Team:     %s\n", strings.Join(project.TeamMembers, ", "))
			}
			if project.Description != "" {
				fmt.Fprintf(w, "\n%s\n", project.Description)
			}
			_, err := fmt.Fprintf(w, "\nTasks: %d total, %d to do, %d in progress, %d done, %d overdue\n",
				stats.TotalTasks, stats.TodoTasks, stats.InProgressTasks, stats.DoneTasks, stats.OverdueTasks)
			return err
		})
	})
}
