package notification

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
)

// NotificationCmd returns the notification parent command
func NotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notif", "inbox"},
		Short:   "Read and manage notifications",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(SendCmd())
	cmd.AddCommand(ReadCmd())
	cmd.AddCommand(ArchiveCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(UnreadCmd())
	cmd.AddCommand(CountsCmd())
	cmd.AddCommand(WatchCmd())

	return cmd
}

func addRecipientFlag(cmd *cobra.Command) {
	cmd.Flags().Int("recipient", 0, "Recipient user ID (default: notifications.recipient_id, then your login)")
}

// recipientID picks the flag, then the configured recipient, then the user
// matching the caller's login
func recipientID(ctx context.Context, cmd *cobra.Command, c *cli.CLI) (int, error) {
	id, _ := cmd.Flags().GetInt("recipient")
	if id <= 0 && c.Config != nil {
		id = c.Config.Notifications.RecipientID
	}
	return cli.CurrentUserID(ctx, c, id)
}
