package task

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks grouped by project and column, optionally filtered.

Examples:
  tablero task list --project=1
  tablero task list --status=in-progress --priority=high --json
  tablero task list --search=login --quiet
`,
		RunE: runList,
	}

	cmd.Flags().Int("project", 0, "Only tasks of this project")
	cmd.Flags().String("status", "", "Only tasks with this status")
	cmd.Flags().String("priority", "", "Only tasks with this priority")
	cmd.Flags().Int("assignee", 0, "Only tasks assigned to this user")
	cmd.Flags().String("search", "", "Match title or description")

	cli.AddOutputFlags(cmd)
	return cmd
}

// filterFromFlags reads the shared task filter flags
func filterFromFlags(cmd *cobra.Command) (models.TaskFilter, error) {
	flags := cmd.Flags()
	var filter models.TaskFilter
	filter.ProjectID, _ = flags.GetInt("project")
	filter.AssigneeID, _ = flags.GetInt("assignee")
	filter.Search, _ = flags.GetString("search")

	if raw, _ := flags.GetString("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	if raw, _ := flags.GetString("priority"); raw != "" {
		priority, err := models.ParsePriority(raw)
		if err != nil {
			return filter, err
		}
		filter.Priority = priority
	}
	return filter, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		tasks, err := c.App.TaskService.ListTasks(ctx, filter)
		if err != nil {
			return err
		}

		if f.Quiet {
			ids := make([]int, len(tasks))
			for i, t := range tasks {
				ids[i] = t.ID
			}
			return f.IDs(ids)
		}

		return f.Result("tasks", tasks, func(w io.Writer) error {
			if len(tasks) == 0 {
				_, err := fmt.Fprintln(w, "No tasks found")
				return err
			}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{
					strconv.Itoa(t.ID),
					cli.Truncate(t.Title, 40),
					t.Status.Title(),
					string(t.Priority),
					cli.FormatDate(t.DueDate),
					fmt.Sprintf("%d%%", t.Progress),
				})
			}
			return cli.PrintTable(w, []string{"ID", "Title", "Status", "Priority", "Due", "Progress"}, rows)
		})
	})
}
