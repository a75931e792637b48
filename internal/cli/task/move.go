package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id> <status>",
		Short: "Move a task to another column",
		Long: `Move a task to the end of another board column.

Moving a task onto the column it is already in changes nothing.

Examples:
  tablero task move 12 in-progress
  tablero task move 12 done --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		status, err := models.ParseStatus(args[1])
		if err != nil {
			return err
		}

		task, err := c.App.TaskService.MoveTask(ctx, id, status)
		if err != nil {
			return err
		}

		return f.Result("task", task, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Task %d is in %s (position %d)\n", task.ID, task.Status.Title(), task.Position)
			return err
		})
	})
}
