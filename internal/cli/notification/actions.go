package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/notify"
)

// ShowCmd returns the notification show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <notification-id>",
		Short: "Show a notification",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
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
		n, err := c.App.NotificationService.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return f.Result("notification", n, func(w io.Writer) error {
			fmt.Fprintf(w, "#%d %s\n", n.ID, n.Subject)
			fmt.Fprintf(w, "To:     user %d\n", n.RecipientID)
			fmt.Fprintf(w, "Type:   %s\n", n.Type)
			fmt.Fprintf(w, "Status: %s\n", n.Status)
			fmt.Fprintf(w, "Sent:   %s\n\n", n.SentAt.Format("2006-01-02 15:04"))
			_, err := fmt.Fprintln(w, n.Message)
			return err
		})
	})
}

// ReadCmd returns the notification read subcommand
func ReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <notification-id>...",
		Short: "Mark notifications as read",
		Long: `Mark one or more notifications as read. Archived notifications stay
archived.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRead,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runRead(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		ids := make([]int, 0, len(args))
		for _, raw := range args {
			id, err := cli.ParseID(raw)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		inboxes, err := inboxesFor(ctx, c, ids)
		if err != nil {
			return err
		}

		if len(ids) == 1 {
			in := inboxes[0]
			if err := in.sync.MarkAsRead(ctx, ids[0]); err != nil {
				return err
			}
			n := in.find(ids[0])
			return f.Result("notification", n, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "✓ Notification %d is %s (%d unread)\n", n.ID, n.Status, in.unread())
				return err
			})
		}

		updated := 0
		var errs []error
		for _, in := range inboxes {
			before := in.unread()
			if _, err := in.sync.BulkMarkAsRead(ctx, in.ids()); err != nil {
				errs = append(errs, err)
			}
			updated += before - in.unread()
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		return f.Result("updated", updated, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Marked %d of %d notifications as read\n", updated, len(ids))
			return err
		})
	})
}

// ArchiveCmd returns the notification archive subcommand
func ArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <notification-id>",
		Short: "Archive a notification",
		Args:  cobra.ExactArgs(1),
		RunE:  runArchive,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runArchive(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		inboxes, err := inboxesFor(ctx, c, []int{id})
		if err != nil {
			return err
		}
		in := inboxes[0]
		if err := in.sync.Archive(ctx, id); err != nil {
			return err
		}
		n := in.find(id)
		return f.Result("notification", n, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Notification %d archived (%d unread)\n", n.ID, in.unread())
			return err
		})
	})
}

// DeleteCmd returns the notification delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <notification-id>",
		Short: "Delete a notification",
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
		inboxes, err := inboxesFor(ctx, c, []int{id})
		if err != nil {
			return err
		}
		in := inboxes[0]
		if err := in.sync.Delete(ctx, id); err != nil {
			return err
		}
		return f.Result("deleted", map[string]int{"id": id, "unread": in.unread()}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Notification %d deleted (%d unread)\n", id, in.unread())
			return err
		})
	})
}

// inbox is the cached view of one recipient's notifications that a command
// touches. Writes go through its Sync so the unread counter follows them.
type inbox struct {
	sync *notify.Sync
}

// inboxesFor loads each of ids and groups them by recipient, one inbox per
// recipient in first-seen order. Each inbox caches exactly its targets
// and starts from the stored unread count.
func inboxesFor(ctx context.Context, c *cli.CLI, ids []int) ([]inbox, error) {
	targets := make(map[int][]models.Notification)
	var order []int
	for _, id := range ids {
		n, err := c.App.NotificationService.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, seen := targets[n.RecipientID]; !seen {
			order = append(order, n.RecipientID)
		}
		targets[n.RecipientID] = append(targets[n.RecipientID], *n)
	}

	inboxes := make([]inbox, 0, len(order))
	for _, recipient := range order {
		in := inbox{sync: c.App.NotificationSync(recipient)}
		in.sync.Store().Dispatch(notify.SetNotifications{Notifications: targets[recipient], At: time.Now()})
		if _, err := in.sync.RefreshUnreadCount(ctx); err != nil {
			return nil, err
		}
		inboxes = append(inboxes, in)
	}
	return inboxes, nil
}

func (in inbox) unread() int {
	return in.sync.Store().State().UnreadCount
}

func (in inbox) ids() []int {
	cached := in.sync.Store().State().Notifications
	ids := make([]int, len(cached))
	for i, n := range cached {
		ids[i] = n.ID
	}
	return ids
}

func (in inbox) find(id int) models.Notification {
	for _, n := range in.sync.Store().State().Notifications {
		if n.ID == id {
			return n
		}
	}
	return models.Notification{ID: id}
}

// UnreadCmd returns the notification unread subcommand
func UnreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unread",
		Short: "Print the unread count",
		RunE:  runUnread,
	}
	addRecipientFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runUnread(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		recipient, err := recipientID(ctx, cmd, c)
		if err != nil {
			return err
		}
		count, err := c.App.NotificationService.GetUnreadCount(ctx, recipient)
		if err != nil {
			return err
		}
		if f.Quiet {
			_, err := fmt.Fprintln(f.Out, count)
			return err
		}
		return f.Result("unread", count, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "%d unread\n", count)
			return err
		})
	})
}

// CountsCmd returns the notification counts subcommand
func CountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counts",
		Short: "Count notifications per status",
		RunE:  runCounts,
	}
	addRecipientFlag(cmd)
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCounts(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		recipient, err := recipientID(ctx, cmd, c)
		if err != nil {
			return err
		}
		counts, err := c.App.NotificationService.GetCounts(ctx, recipient)
		if err != nil {
			return err
		}
		return f.Result("counts", counts, func(w io.Writer) error {
			return printCounts(w, counts)
		})
	})
}

func printCounts(w io.Writer, counts models.NotificationCounts) error {
	_, err := fmt.Fprintf(w, "Unread: %d  Read: %d  Archived: %d\n", counts.Unread, counts.Read, counts.Archived)
	return err
}
