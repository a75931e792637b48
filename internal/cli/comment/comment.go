package comment

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	commentservice "github.com/thenoetrevino/tablero/internal/services/comment"
)

// CommentCmd returns the comment parent command
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage task comments",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// AddCmd returns the comment add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <task-id> <message>",
		Short: "Comment on a task",
		Long: `Add a comment to a task. The author defaults to the user matching
$TABLERO_USER or your OS login.

Examples:
  tablero comment add 12 "Blocked on the API review"
  tablero comment add 12 "LGTM" --author=3 --json
`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}

	cmd.Flags().Int("author", 0, "Author user ID")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		taskID, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		explicit, _ := cmd.Flags().GetInt("author")
		authorID, err := cli.CurrentUserID(ctx, c, explicit)
		if err != nil {
			return err
		}

		comment, err := c.App.CommentService.CreateComment(ctx, commentservice.CreateCommentRequest{
			TaskID:   taskID,
			AuthorID: authorID,
			Content:  args[1],
		})
		if err != nil {
			return err
		}

		return f.Result("comment", comment, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Comment %d added to task %d\n", comment.ID, taskID)
			return err
		})
	})
}

// ListCmd returns the comment list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <task-id>",
		Short: "List the comments of a task, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		taskID, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		comments, err := c.App.CommentService.ListComments(ctx, taskID)
		if err != nil {
			return err
		}

		if f.Quiet {
			ids := make([]int, len(comments))
			for i, cm := range comments {
				ids[i] = cm.ID
			}
			return f.IDs(ids)
		}

		return f.Result("comments", comments, func(w io.Writer) error {
			if len(comments) == 0 {
				_, err := fmt.Fprintln(w, "No comments")
				return err
			}
			rows := make([][]string, 0, len(comments))
			for _, cm := range comments {
				rows = append(rows, []string{
					strconv.Itoa(cm.ID),
					authorName(cm),
					cm.CreatedAt.Format("2006-01-02 15:04"),
					cli.Truncate(cm.Content, 60),
				})
			}
			return cli.PrintTable(w, []string{"ID", "Author", "When", "Comment"}, rows)
		})
	})
}

func authorName(cm models.Comment) string {
	if cm.Author != nil {
		return cm.Author.Name
	}
	return "#" + strconv.Itoa(cm.AuthorID)
}

// UpdateCmd returns the comment update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <comment-id> <message>",
		Short: "Replace the text of a comment",
		Args:  cobra.ExactArgs(2),
		RunE:  runUpdate,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		comment, err := c.App.CommentService.UpdateComment(ctx, id, args[1])
		if err != nil {
			return err
		}

		return f.Result("comment", comment, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Comment %d updated\n", comment.ID)
			return err
		})
	})
}

// DeleteCmd returns the comment delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete a comment",
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
		if err := c.App.CommentService.DeleteComment(ctx, id); err != nil {
			return err
		}
		return f.Result("deleted", map[string]int{"id": id}, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Comment %d deleted\n", id)
			return err
		})
	})
}
