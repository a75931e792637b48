package notification

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/notify"
)

// WatchCmd returns the notification watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the unread count",
		Long: `Load the inbox once, then poll the unread count and print it whenever
it changes. Stops on Ctrl+C.`,
		RunE: runWatch,
	}

	addRecipientFlag(cmd)
	cmd.Flags().Duration("interval", 0, "Poll interval (default: notifications.poll_interval, then 30s)")
	cmd.Flags().Bool("once", false, "Print the current state and exit")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		recipient, err := recipientID(ctx, cmd, c)
		if err != nil {
			return err
		}

		sync := c.App.NotificationSync(recipient)
		if err := sync.Refresh(ctx); err != nil {
			return err
		}
		state := sync.Store().State()
		if err := printUnread(f, state.UnreadCount); err != nil {
			return err
		}
		if once, _ := cmd.Flags().GetBool("once"); once {
			return nil
		}

		interval, _ := cmd.Flags().GetDuration("interval")
		if interval <= 0 && c.Config != nil {
			interval = c.Config.Notifications.PollInterval
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		states, unsubscribe := sync.Store().Subscribe()
		defer unsubscribe()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return notify.NewPoller(sync, interval).Run(gctx)
		})
		g.Go(func() error {
			return follow(gctx, f, states, state.UnreadCount)
		})
		return g.Wait()
	})
}

// follow prints the unread count each time a state carries a new one
func follow(ctx context.Context, f *cli.OutputFormatter, states <-chan notify.State, last int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-states:
			if !ok {
				return nil
			}
			if st.UnreadCount == last {
				continue
			}
			last = st.UnreadCount
			if err := printUnread(f, last); err != nil {
				return err
			}
		}
	}
}

func printUnread(f *cli.OutputFormatter, count int) error {
	return f.Result("unread", count, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "[%s] Unread: %d\n", time.Now().Format(time.TimeOnly), count)
		return err
	})
}
