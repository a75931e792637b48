package project

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Long:  "Delete a project. Its tasks are kept and still point at the removed ID.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := c.App.ProjectService.DeleteProject(ctx, id); err != nil {
			return err
		}
		return f.Result("deleted", map[string]int{"id": id}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Project %d deleted\n", id)
			return err
		})
	})
}
