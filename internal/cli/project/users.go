package project

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// UsersCmd returns the project users subcommand
func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users <project-id>",
		Short: "List the users who can work on a project",
		Args:  cobra.ExactArgs(1),
		RunE:  runUsers,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runUsers(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if _, err := c.App.ProjectService.GetProject(ctx, id); err != nil {
			return err
		}

		users, err := c.App.UserService.GetUsersByProject(ctx, id)
		if err != nil {
			return err
		}

		if f.Quiet {
			ids := make([]int, len(users))
			for i, u := range users {
				ids[i] = u.ID
			}
			return f.IDs(ids)
		}

		return f.Result("users", users, func(w io.Writer) error {
			if len(users) == 0 {
				_, err := fmt.Fprintln(w, "No users found")
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.Email, u.Role})
			}
			return cli.PrintTable(w, []string{"ID", "Name", "Email", "Role"}, rows)
		})
	})
}
