package user

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// DeleteCmd returns the user delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user",
		Long:  "Delete a user. Tasks assigned to them become unassigned.",
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
		if err := c.App.UserService.DeleteUser(ctx, id); err != nil {
			return err
		}
		return f.Result("deleted", map[string]int{"id": id}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ User %d deleted\n", id)
			return err
		})
	})
}
