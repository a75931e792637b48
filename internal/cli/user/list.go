package user

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the user list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE:  runList,
	}

	cmd.Flags().String("role", "", "Only users with this role")
	cmd.Flags().String("search", "", "Match name or email")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		var filter models.UserFilter
		filter.Role, _ = cmd.Flags().GetString("role")
		filter.Search, _ = cmd.Flags().GetString("search")

		users, err := c.App.UserService.ListUsers(ctx, filter)
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
