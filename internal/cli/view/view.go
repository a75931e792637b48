// Package view renders the board, the timeline and the dashboard in the
// terminal.
package view

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thenoetrevino/tablero/internal/models"
)

const defaultWidth = 120

// ViewCmd returns the view parent command
func ViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render the board, timeline or dashboard",
	}

	cmd.AddCommand(BoardCmd())
	cmd.AddCommand(GanttCmd())
	cmd.AddCommand(DashboardCmd())

	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().Int("project", 0, "Only tasks of this project")
	cmd.Flags().Int("assignee", 0, "Only tasks assigned to this user")
	cmd.Flags().String("priority", "", "Only tasks with this priority")
	cmd.Flags().String("search", "", "Match title or description")
	cmd.Flags().Int("width", 0, "Render width (default: terminal width, then $COLUMNS, then 120)")
}

func filterFromFlags(cmd *cobra.Command) (models.TaskFilter, error) {
	flags := cmd.Flags()
	var filter models.TaskFilter
	filter.ProjectID, _ = flags.GetInt("project")
	filter.AssigneeID, _ = flags.GetInt("assignee")
	filter.Search, _ = flags.GetString("search")
	if raw, _ := flags.GetString("priority"); raw != "" {
		p, err := models.ParsePriority(raw)
		if err != nil {
			return filter, err
		}
		filter.Priority = p
	}
	return filter, nil
}

// renderWidth picks the --width flag, then the terminal width, then
// $COLUMNS
func renderWidth(cmd *cobra.Command) int {
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		return w
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
