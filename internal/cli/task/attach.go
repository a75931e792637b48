package task

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
)

// AttachCmd returns the task attach subcommand
func AttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach <task-id> <file>",
		Short: "Record a file attachment on a task",
		Long: `Record a file's metadata on a task. The file itself is not copied;
its name, size and type are stored with a link to --url (default the
file's absolute path).`,
		Args: cobra.ExactArgs(2),
		RunE: runAttach,
	}

	cmd.Flags().String("url", "", "Where the file can be fetched")
	cmd.Flags().String("type", "", "MIME type (guessed from the extension when empty)")
	cli.AddOutputFlags(cmd)
	return cmd
}

// DetachCmd returns the task detach subcommand
func DetachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detach <task-id> <attachment-id>",
		Short: "Remove an attachment from a task",
		Args:  cobra.ExactArgs(2),
		RunE:  runDetach,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

// attachmentFromFile describes path. MIME type comes from the flag or the
// file extension.
func attachmentFromFile(path, mimeType, url string) (models.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if mimeType == "" {
		mimeType, _, _ = mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(path)))
	}
	if url == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return models.Attachment{}, err
		}
		url = "file://" + abs
	}
	return models.Attachment{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MimeType: mimeType,
		URL:      url,
	}, nil
}

func runAttach(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		mimeType, _ := cmd.Flags().GetString("type")
		url, _ := cmd.Flags().GetString("url")

		a, err := attachmentFromFile(args[1], mimeType, url)
		if err != nil {
			return err
		}
		task, err := c.App.TaskService.AddAttachment(ctx, id, a)
		if err != nil {
			return err
		}

		added := task.Attachments[len(task.Attachments)-1]
		return f.Result("attachment", added, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Attached %s to task %d (ID: %s)\n", added.Name, task.ID, added.ID)
			return err
		})
	})
}

func runDetach(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		task, err := c.App.TaskService.RemoveAttachment(ctx, id, args[1])
		if err != nil {
			return err
		}

		return f.Result("task", task, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Removed attachment %s from task %d\n", args[1], task.ID)
			return err
		})
	})
}
