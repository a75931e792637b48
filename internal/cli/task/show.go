package task

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config/colors"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/tui"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its comments",
		Long:  "Show every field of a task, its markdown description, attachments and comments.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

type taskDetail struct {
	*models.Task
	Comments []models.Comment `json:"comments"`
}

func runShow(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		task, err := c.App.TaskService.GetTask(ctx, id)
		if err != nil {
			return err
		}
		comments, err := c.App.CommentService.ListComments(ctx, id)
		if err != nil {
			return err
		}
		detail := taskDetail{Task: task, Comments: comments}

		return f.Result("task", detail, func(w io.Writer) error {
			return printDetail(w, detail, c.Config.ColorScheme)
		})
	})
}

func printDetail(w io.Writer, d taskDetail, scheme colors.ColorScheme) error {
	st := tui.NewStyles(scheme)
	t := d.Task

	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	fmt.Fprintf(w, "Status:   %s\n", t.Status.Title())
	fmt.Fprintf(w, "Priority: %s\n", t.Priority)
	fmt.Fprintf(w, "Project:  #%d\n", t.ProjectID)
	if t.AssigneeID != nil {
		fmt.Fprintf(w, "Assignee: #%d\n", *t.AssigneeID)
	}
	fmt.Fprintf(w, "Created:  %s\n", cli.FormatDate(t.CreatedAt))
	fmt.Fprintf(w, "Due:      %s\n", cli.FormatDate(t.DueDate))
	fmt.Fprintf(w, "Progress: %d%%\n\n", t.Progress)

	fmt.Fprintln(w, tui.RenderDescription(t.Description, 76, st))

	if len(t.Attachments) > 0 {
		fmt.Fprintln(w, "\nAttachments:")
		for _, a := range t.Attachments {
			fmt.Fprintf(w, "  %s  %s (%s, %d bytes)\n", a.ID, a.Name, a.MimeType, a.Size)
		}
	}

	if len(d.Comments) > 0 {
		fmt.Fprintf(w, "\nComments (%d):\n", len(d.Comments))
		for _, cm := range d.Comments {
			author := fmt.Sprintf("#%d", cm.AuthorID)
			if cm.Author != nil {
				author = cm.Author.Name
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n", cm.CreatedAt.Format("2006-01-02 15:04"), author, cm.Content)
		}
	}
	return nil
}
