package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/comment"
	"github.com/thenoetrevino/tablero/internal/cli/demo"
	"github.com/thenoetrevino/tablero/internal/cli/importer"
	"github.com/thenoetrevino/tablero/internal/cli/notification"
	"github.com/thenoetrevino/tablero/internal/cli/project"
	"github.com/thenoetrevino/tablero/internal/cli/serve"
	"github.com/thenoetrevino/tablero/internal/cli/task"
	"github.com/thenoetrevino/tablero/internal/cli/user"
	"github.com/thenoetrevino/tablero/internal/cli/view"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	rootCmd := &cobra.Command{
		Use:   "tablero",
		Short: "Tablero - projects, kanban boards and timelines from the terminal",
		Long: `Tablero tracks projects, tasks, comments and notifications. Tasks move
across a kanban board and lay out on a weekly timeline. Every command can
print JSON (--json) or bare IDs (--quiet) for scripting.

Run without a command to open the interactive board.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Log.Level = "debug"
			}
			logCloser, err = logging.Init(cfg.Log)
			return err
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser == nil {
				return nil
			}
			return logCloser.Close()
		},
		RunE: runDefault,
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.CodedError{Code: cli.ExitUsage, Err: err}
	})

	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(comment.CommentCmd())
	rootCmd.AddCommand(notification.NotificationCmd())
	rootCmd.AddCommand(view.ViewCmd())
	rootCmd.AddCommand(importer.ImportCmd())
	rootCmd.AddCommand(demo.DemoCmd())
	rootCmd.AddCommand(serve.ServeCmd())

	return rootCmd
}

// runDefault opens the interactive board on a terminal and prints help
// otherwise
func runDefault(cmd *cobra.Command, _ []string) error {
	if !cli.StdinIsTerminal() {
		return cmd.Help()
	}
	board := view.BoardCmd()
	board.SetContext(cmd.Context())
	board.SetArgs([]string{"--interactive"})
	board.SilenceErrors = true
	board.SilenceUsage = true
	return board.Execute()
}

// Execute runs the command tree against the process arguments
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
