package view

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/services/dashboard"
	"github.com/thenoetrevino/tablero/internal/tui"
)

// DashboardCmd returns the view dashboard subcommand
func DashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show task and project totals with recent activity",
		RunE:  runDashboard,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		overview, err := c.App.DashboardService.GetOverview(ctx)
		if err != nil {
			return err
		}
		return f.Result("dashboard", overview, func(w io.Writer) error {
			return printOverview(w, overview, tui.NewStyles(c.Config.ColorScheme))
		})
	})
}

func printOverview(w io.Writer, o *dashboard.Overview, st tui.Styles) error {
	ts, ps := o.TaskStats, o.ProjectStats

	fmt.Fprintln(w, st.Title.Render("Tasks"))
	if err := cli.PrintTable(w, []string{"Total", "To Do", "In Progress", "Done", "Overdue"}, [][]string{{
		strconv.Itoa(ts.TotalTasks),
		strconv.Itoa(ts.TodoTasks),
		strconv.Itoa(ts.InProgressTasks),
		strconv.Itoa(ts.DoneTasks),
		strconv.Itoa(ts.OverdueTasks),
	}}); err != nil {
		return err
	}

	fmt.Fprintln(w, st.Title.Render("Projects"))
	if err := cli.PrintTable(w, []string{"Total", "Active", "Completed", "Avg progress", "Team"}, [][]string{{
		strconv.Itoa(ps.TotalProjects),
		strconv.Itoa(ps.ActiveProjects),
		strconv.Itoa(ps.CompletedProjects),
		fmt.Sprintf("%d%%", ps.AverageProgress),
		strconv.Itoa(o.TeamSize),
	}}); err != nil {
		return err
	}

	fmt.Fprintln(w, st.Title.Render("Recent tasks"))
	if len(o.RecentTasks) == 0 {
		_, err := fmt.Fprintln(w, st.Subtle.Render("No tasks yet"))
		return err
	}
	rows := make([][]string, 0, len(o.RecentTasks))
	for _, rt := range o.RecentTasks {
		assignee := "-"
		if rt.Assignee != nil {
			assignee = rt.Assignee.Name
		}
		rows = append(rows, []string{
			strconv.Itoa(rt.Task.ID),
			cli.Truncate(rt.Task.Title, 36),
			rt.Task.Status.Title(),
			assignee,
			cli.FormatDate(rt.Task.CreatedAt),
		})
	}
	return cli.PrintTable(w, []string{"ID", "Title", "Status", "Assignee", "Created"}, rows)
}
