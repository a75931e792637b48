// Package dashboard assembles the overview screen from the other services.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/services/project"
	"github.com/thenoetrevino/tablero/internal/services/task"
	"github.com/thenoetrevino/tablero/internal/services/user"
)

const (
	recentTaskLimit = 5
	projectLimit    = 6
)

// RecentTask is a task shown on the dashboard with its assignee resolved
type RecentTask struct {
	Task     models.Task  `json:"task"`
	Assignee *models.User `json:"assignee,omitempty"`
}

// Overview is everything the dashboard renders
type Overview struct {
	TaskStats    models.TaskStats    `json:"task_stats"`
	ProjectStats models.ProjectStats `json:"project_stats"`
	Projects     []models.Project    `json:"projects"`
	RecentTasks  []RecentTask        `json:"recent_tasks"`
	TeamSize     int                 `json:"team_size"`
}

// Service builds the dashboard overview
type Service interface {
	GetOverview(ctx context.Context) (*Overview, error)
}

type service struct {
	tasks    task.Service
	projects project.Service
	users    user.Service
}

// NewService creates a dashboard service over the entity services
func NewService(tasks task.Service, projects project.Service, users user.Service) Service {
	return &service{
		tasks:    tasks,
		projects: projects,
		users:    users,
	}
}

// GetOverview runs the five reads concurrently. Any failure fails the
// whole overview.
func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	var (
		ov       Overview
		projects []models.Project
		tasks    []models.Task
		users    []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.projects.ListProjects(gctx, models.ProjectFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		ov.TaskStats, err = s.tasks.GetStats(gctx, 0)
		return err
	})
	g.Go(func() error {
		var err error
		ov.ProjectStats, err = s.projects.GetStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = s.tasks.ListTasks(gctx, models.TaskFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.ListUsers(gctx, models.UserFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	if len(projects) > projectLimit {
		projects = projects[:projectLimit]
	}
	ov.Projects = projects

	recent := task.RecentTasks(tasks, recentTaskLimit)
	ov.RecentTasks = make([]RecentTask, 0, len(recent))
	for _, t := range recent {
		ov.RecentTasks = append(ov.RecentTasks, RecentTask{
			Task:     t,
			Assignee: models.FindUser(users, t.AssigneeID),
		})
	}
	ov.TeamSize = len(users)

	return &ov, nil
}
