package user

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ShowCmd returns the user show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

// WhoamiCmd returns the user whoami subcommand
func WhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the user matching your login",
		Long: `Show the stored user whose email local part or first name matches
$TABLERO_USER, or the OS login when that is unset.`,
		Args: cobra.NoArgs,
		RunE: runWhoami,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		return show(ctx, c, f, id)
	})
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.CurrentUserID(ctx, c, 0)
		if err != nil {
			return err
		}
		return show(ctx, c, f, id)
	})
}

func show(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter, id int) error {
	u, err := c.App.UserService.GetUser(ctx, id)
	if err != nil {
		return err
	}
	return f.Result("user", u, func(w io.Writer) error {
		return printUser(w, u)
	})
}

func printUser(w io.Writer, u *models.User) error {
	fmt.Fprintf(w, "#%d %s\n", u.ID, u.Name)
	fmt.Fprintf(w, "Email: %s\n", u.Email)
	if u.Role != "" {
		fmt.Fprintf(w, "Role:  %s\n", u.Role)
	}
	if u.AvatarURL != "" {
		fmt.Fprintf(w, "Avatar: %s\n", u.AvatarURL)
	}
	return nil
}
