package notification

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the notification list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		Long: `List a recipient's notifications, newest first.

Examples:
  tablero notification list --status=unread
  tablero notification list --recipient=3 --page=2 --limit=10 --json
`,
		RunE: runList,
	}

	addRecipientFlag(cmd)
	cmd.Flags().String("status", "", "Only unread, read or archived")
	cmd.Flags().String("type", "", "Only email, sms or push")
	cmd.Flags().String("search", "", "Match subject or message")
	cmd.Flags().Int("limit", 0, "Page size (default 20)")
	cmd.Flags().Int("page", 0, "1-based page number")
	cli.AddOutputFlags(cmd)
	return cmd
}

func filterFromFlags(cmd *cobra.Command) (models.NotificationFilter, error) {
	flags := cmd.Flags()
	var filter models.NotificationFilter
	filter.Search, _ = flags.GetString("search")
	filter.Limit, _ = flags.GetInt("limit")

	if raw, _ := flags.GetString("status"); raw != "" {
		status, err := models.ParseNotificationStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	if raw, _ := flags.GetString("type"); raw != "" {
		typ, err := models.ParseNotificationType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = typ
	}
	return filter, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		filter.RecipientID, err = recipientID(ctx, cmd, c)
		if err != nil {
			return err
		}

		var list []models.Notification
		if cmd.Flags().Changed("page") {
			page, _ := cmd.Flags().GetInt("page")
			list, err = c.App.NotificationService.GetPage(ctx, filter, page)
		} else {
			list, err = c.App.NotificationService.GetAll(ctx, filter)
		}
		if err != nil {
			return err
		}

		if f.Quiet {
			ids := make([]int, len(list))
			for i, n := range list {
				ids[i] = n.ID
			}
			return f.IDs(ids)
		}

		return f.Result("notifications", list, func(w io.Writer) error {
			if len(list) == 0 {
				_, err := fmt.Fprintln(w, "No notifications")
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, n := range list {
				rows = append(rows, []string{
					strconv.Itoa(n.ID),
					statusMark(n.Status),
					string(n.Type),
					n.SentAt.Format("2006-01-02 15:04"),
					cli.Truncate(n.Subject, 40),
				})
			}
			return cli.PrintTable(w, []string{"ID", "", "Type", "Sent", "Subject"}, rows)
		})
	})
}

func statusMark(s models.NotificationStatus) string {
	switch s {
	case models.NotificationUnread:
		return "●"
	case models.NotificationArchived:
		return "▪"
	}
	return " "
}
