package notification

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// SendCmd returns the notification send subcommand
func SendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Create a notification for a user",
		Long: `Create an unread notification for a user.

Examples:
  tablero notification send --to=3 --subject="Deploy" --message="v2 is live"
  tablero notification send --to=3 --message="Standup moved" --type=sms --quiet
`,
		RunE: runSend,
	}

	cmd.Flags().Int("to", 0, "Recipient user ID (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().String("subject", "", "Subject line")
	cmd.Flags().String("message", "", "Message body (required)")
	_ = cmd.MarkFlagRequired("message")
	cmd.Flags().String("type", "", "Channel: email, sms or push (default push)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runSend(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		flags := cmd.Flags()
		var n models.Notification
		n.RecipientID, _ = flags.GetInt("to")
		n.Subject, _ = flags.GetString("subject")
		n.Message, _ = flags.GetString("message")
		if raw, _ := flags.GetString("type"); raw != "" {
			typ, err := models.ParseNotificationType(raw)
			if err != nil {
				return err
			}
			n.Type = typ
		}

		created, err := c.App.NotificationService.Create(ctx, n)
		if err != nil {
			return err
		}

		return f.Result("notification", created, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Notification %d sent to user %d\n", created.ID, created.RecipientID)
			return err
		})
	})
}
