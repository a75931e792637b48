package user

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	userservice "github.com/thenoetrevino/tablero/internal/services/user"
)

// CreateCmd returns the user create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Long: `Create a new user.

Examples:
  tablero user create --name="Ana Ruiz" --email=ana@example.com --role=Developer
  USER_ID=$(tablero user create --name="Ana Ruiz" --email=ana@example.com --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Full name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("email", "", "Email address (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().String("role", "", "Role, e.g. Developer or Designer")
	cmd.Flags().String("avatar", "", "Avatar URL")

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		flags := cmd.Flags()
		var req userservice.CreateUserRequest
		req.Name, _ = flags.GetString("name")
		req.Email, _ = flags.GetString("email")
		req.Role, _ = flags.GetString("role")
		req.AvatarURL, _ = flags.GetString("avatar")

		u, err := c.App.UserService.CreateUser(ctx, req)
		if err != nil {
			return err
		}

		return f.Result("user", u, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ User '%s' created successfully (ID: %d)\n", u.Name, u.ID)
			return err
		})
	})
}
