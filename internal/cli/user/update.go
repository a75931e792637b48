package user

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// UpdateCmd returns the user update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update user fields",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("email", "", "New email")
	cmd.Flags().String("role", "", "New role")
	cmd.Flags().String("avatar", "", "New avatar URL")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var patch models.UserPatch
		for name, field := range map[string]**string{
			"name":   &patch.Name,
			"email":  &patch.Email,
			"role":   &patch.Role,
			"avatar": &patch.AvatarURL,
		} {
			if flags.Changed(name) {
				v, _ := flags.GetString(name)
				*field = &v
			}
		}

		u, err := c.App.UserService.UpdateUser(ctx, id, patch)
		if err != nil {
			return err
		}

		return f.Result("user", u, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ User %d updated\n", u.ID)
			return err
		})
	})
}
