package task

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
	"github.com/thenoetrevino/tablero/internal/tui/huhforms"
)

// errCancelled is returned when the interactive form is not confirmed
var errCancelled = errors.New("task creation cancelled")

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task at the end of its column.

Examples:
  # Simple task (human-readable output)
  tablero task create --title="Fix bug" --project=1 --due=2024-02-01

  # JSON output for agents
  tablero task create --title="Fix bug" --project=1 --due=2024-02-01 --json

  # Quiet mode for bash capture
  TASK_ID=$(tablero task create --title="Fix bug" --project=1 --due=2024-02-01 --quiet)

  # Fill the fields in a form
  tablero task create --project=1 --interactive
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Task title (required unless --interactive)")
	cmd.Flags().Int("project", 0, "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")
	cmd.Flags().String("due", "", "Due date YYYY-MM-DD (required unless --interactive)")

	cmd.Flags().String("description", "", "Task description, markdown (use - for stdin)")
	cmd.Flags().String("status", "", "Status: todo, in-progress, done (default todo)")
	cmd.Flags().String("priority", "", "Priority: high, medium, low (default medium)")
	cmd.Flags().Int("progress", 0, "Progress percentage 0-100")
	cmd.Flags().Int("assignee", 0, "Assignee user ID")
	cmd.Flags().BoolP("interactive", "i", false, "Fill the task in an interactive form")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		req, err := createRequest(cmd)
		if err != nil {
			return err
		}

		task, err := c.App.TaskService.CreateTask(ctx, req)
		if err != nil {
			return err
		}

		return f.Result("task", task, func(w io.Writer) error {
			fmt.Fprintf(w, "✓ Task '%s' created successfully (ID: %d)\n", task.Title, task.ID)
			fmt.Fprintf(w, "  Project: #%d\n", task.ProjectID)
			fmt.Fprintf(w, "  Status: %s\n", task.Status.Title())
			fmt.Fprintf(w, "  Priority: %s\n", task.Priority)
			fmt.Fprintf(w, "  Due: %s\n", cli.FormatDate(task.DueDate))
			return nil
		})
	})
}

// createRequest builds the request from flags, or from the form when
// --interactive is set
func createRequest(cmd *cobra.Command) (taskservice.CreateTaskRequest, error) {
	flags := cmd.Flags()
	projectID, _ := flags.GetInt("project")
	progress, _ := flags.GetInt("progress")
	interactive, _ := flags.GetBool("interactive")

	req := taskservice.CreateTaskRequest{ProjectID: projectID, Progress: progress}
	if assignee, _ := flags.GetInt("assignee"); assignee > 0 {
		req.AssigneeID = &assignee
	}

	if interactive {
		if !cli.StdinIsTerminal() {
			return req, &cli.CodedError{Code: cli.ExitUsage, Err: errors.New("--interactive needs a terminal")}
		}
		values := huhforms.DefaultTaskValues()
		if err := huhforms.CreateTaskForm(&values).Run(); err != nil {
			return req, fmt.Errorf("failed to run form: %w", err)
		}
		if !values.Confirm {
			return req, errCancelled
		}
		return fillFromForm(req, values)
	}

	req.Title, _ = flags.GetString("title")
	description, _ := flags.GetString("description")
	if description == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return req, fmt.Errorf("failed to read description from stdin: %w", err)
		}
		description = string(data)
	}
	req.Description = description

	if raw, _ := flags.GetString("due"); raw != "" {
		due, err := cli.ParseDate(raw)
		if err != nil {
			return req, err
		}
		req.DueDate = due
	}
	if raw, _ := flags.GetString("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return req, err
		}
		req.Status = status
	}
	if raw, _ := flags.GetString("priority"); raw != "" {
		priority, err := models.ParsePriority(raw)
		if err != nil {
			return req, err
		}
		req.Priority = priority
	}
	return req, nil
}

func fillFromForm(req taskservice.CreateTaskRequest, v huhforms.TaskValues) (taskservice.CreateTaskRequest, error) {
	due, err := cli.ParseDate(v.DueDate)
	if err != nil {
		return req, err
	}
	req.Title = v.Title
	req.Description = v.Description
	req.Status = v.Status
	req.Priority = v.Priority
	req.DueDate = due
	return req, nil
}
