// Package demo fills an empty store with a small sample board.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tablero/internal/app"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/models"
	commentservice "github.com/thenoetrevino/tablero/internal/services/comment"
	projectservice "github.com/thenoetrevino/tablero/internal/services/project"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
	userservice "github.com/thenoetrevino/tablero/internal/services/user"
)

// errNotEmpty stops a seed over existing data
var errNotEmpty = errors.New("the store already has tasks; pass --force to add the sample data anyway")

// Counts reports what a seed created
type Counts struct {
	Users         int `json:"users"`
	Projects      int `json:"projects"`
	Tasks         int `json:"tasks"`
	Comments      int `json:"comments"`
	Notifications int `json:"notifications"`
}

// DemoCmd returns the demo command
func DemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Add sample users, projects and tasks",
		Long: `Add a small sample board: three users, two projects and tasks spread
over the next weeks, with a comment and a few notifications.`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}

	cmd.Flags().Bool("force", false, "Seed even when tasks already exist")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			existing, err := c.App.TaskService.ListTasks(ctx, models.TaskFilter{})
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return &cli.CodedError{Code: cli.ExitUsage, Err: errNotEmpty}
			}
		}

		counts, err := Seed(ctx, c.App, time.Now())
		if err != nil {
			return err
		}
		return f.Result("created", counts, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "✓ Added %d users, %d projects, %d tasks, %d comments and %d notifications\n",
				counts.Users, counts.Projects, counts.Tasks, counts.Comments, counts.Notifications)
			return err
		})
	})
}

// Seed creates the sample board through the services, with dates relative
// to now
func Seed(ctx context.Context, a *app.App, now time.Time) (Counts, error) {
	var counts Counts
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := func(n int) time.Time { return today.AddDate(0, 0, n) }

	userIDs := make([]int, 0, 3)
	for _, req := range []userservice.CreateUserRequest{
		{Name: "Ana Ruiz", Email: "ana@example.com", Role: "Developer"},
		{Name: "Luis Park", Email: "luis@example.com", Role: "Designer"},
		{Name: "Mei Chen", Email: "mei@example.com", Role: "Manager"},
	} {
		u, err := a.UserService.CreateUser(ctx, req)
		if err != nil {
			return counts, err
		}
		userIDs = append(userIDs, u.ID)
		counts.Users++
	}

	projectIDs := make([]int, 0, 2)
	for _, req := range []projectservice.CreateProjectRequest{
		{Name: "Website Redesign", Description: "New marketing site", DueDate: days(45), TeamMembers: []string{"Ana Ruiz", "Luis Park"}},
		{Name: "Mobile App", Description: "First public release", DueDate: days(90), TeamMembers: []string{"Ana Ruiz", "Mei Chen"}},
	} {
		p, err := a.ProjectService.CreateProject(ctx, req)
		if err != nil {
			return counts, err
		}
		projectIDs = append(projectIDs, p.ID)
		counts.Projects++
	}

	type sample struct {
		title    string
		project  int
		status   models.Status
		priority models.Priority
		due      int
		progress int
		assignee int
	}
	samples := []sample{
		{"Wireframes", 0, models.StatusDone, models.PriorityHigh, -3, 100, 1},
		{"Design system", 0, models.StatusInProgress, models.PriorityHigh, 7, 60, 1},
		{"Landing page", 0, models.StatusTodo, models.PriorityMedium, 14, 0, 0},
		{"SEO audit", 0, models.StatusTodo, models.PriorityLow, 30, 0, -1},
		{"Auth flow", 1, models.StatusInProgress, models.PriorityHigh, 10, 30, 0},
		{"Push notifications", 1, models.StatusTodo, models.PriorityMedium, 21, 0, 2},
		{"Store listing", 1, models.StatusTodo, models.PriorityLow, 60, 0, 2},
	}

	var firstTask int
	for _, s := range samples {
		req := taskservice.CreateTaskRequest{
			Title:     s.title,
			ProjectID: projectIDs[s.project],
			Status:    s.status,
			Priority:  s.priority,
			DueDate:   days(s.due),
			Progress:  s.progress,
		}
		if s.assignee >= 0 {
			req.AssigneeID = &userIDs[s.assignee]
		}
		t, err := a.TaskService.CreateTask(ctx, req)
		if err != nil {
			return counts, fmt.Errorf("failed to seed %q: %w", s.title, err)
		}
		if firstTask == 0 {
			firstTask = t.ID
		}
		counts.Tasks++
	}

	if _, err := a.CommentService.CreateComment(ctx, commentservice.CreateCommentRequest{
		TaskID:   firstTask,
		AuthorID: userIDs[2],
		Content:  "Signed off, great work.",
	}); err != nil {
		return counts, err
	}
	counts.Comments++

	for _, n := range []models.Notification{
		{RecipientID: userIDs[0], Subject: "Task assigned", Message: "You were assigned Design system", Type: models.NotificationPush},
		{RecipientID: userIDs[0], Subject: "New comment", Message: "Mei commented on Wireframes", Type: models.NotificationEmail},
		{RecipientID: userIDs[1], Subject: "Due soon", Message: "Landing page is due in two weeks", Type: models.NotificationPush},
	} {
		if _, err := a.NotificationService.Create(ctx, n); err != nil {
			return counts, err
		}
		counts.Notifications++
	}

	return counts, nil
}
