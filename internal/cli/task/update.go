package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task fields",
		Long: `Update only the fields whose flags are given.

Examples:
  tablero task update 12 --progress=60
  tablero task update 12 --priority=high --due=2024-03-01
  tablero task update 12 --unassign
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "New status")
	cmd.Flags().String("priority", "", "New priority")
	cmd.Flags().String("due", "", "New due date YYYY-MM-DD")
	cmd.Flags().Int("progress", 0, "New progress 0-100")
	cmd.Flags().Int("assignee", 0, "New assignee user ID")
	cmd.Flags().Bool("unassign", false, "Remove the assignee")
	cmd.Flags().Int("project", 0, "Move the task to another project")
	cmd.MarkFlagsMutuallyExclusive("assignee", "unassign")

	cli.AddOutputFlags(cmd)
	return cmd
}

// patchFromFlags turns the changed flags into a patch
func patchFromFlags(cmd *cobra.Command) (models.TaskPatch, error) {
	flags := cmd.Flags()
	var patch models.TaskPatch

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		patch.Title = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		patch.Description = &v
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		v, err := models.ParseStatus(raw)
		if err != nil {
			return patch, err
		}
		patch.Status = &v
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		v, err := models.ParsePriority(raw)
		if err != nil {
			return patch, err
		}
		patch.Priority = &v
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		v, err := cli.ParseDate(raw)
		if err != nil {
			return patch, err
		}
		patch.DueDate = &v
	}
	if flags.Changed("progress") {
		v, _ := flags.GetInt("progress")
		patch.Progress = &v
	}
	if flags.Changed("assignee") {
		v, _ := flags.GetInt("assignee")
		patch.AssigneeID = &v
	}
	if flags.Changed("project") {
		v, _ := flags.GetInt("project")
		patch.ProjectID = &v
	}
	patch.ClearAssignee, _ = flags.GetBool("unassign")
	return patch, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		patch, err := patchFromFlags(cmd)
		if err != nil {
			return err
		}

		task, err := c.App.TaskService.UpdateTask(ctx, id, patch)
		if err != nil {
			return err
		}

		return f.Result("task", task, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Task %d updated\n", task.ID)
			return err
		})
	})
}
