package task

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/gantt"
	"github.com/thenoetrevino/tablero/internal/kanban"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, taskID int) (*models.Task, error)
	GetBoard(ctx context.Context, filter models.TaskFilter) ([]kanban.Column, error)
	GetGantt(ctx context.Context, filter models.TaskFilter, opts ...gantt.Option) (gantt.Layout, error)
	GetStats(ctx context.Context, projectID int) (models.TaskStats, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, taskID int, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int) error

	// Task movements
	MoveTask(ctx context.Context, taskID int, to models.Status) (*models.Task, error)

	// Attachments
	AddAttachment(ctx context.Context, taskID int, a models.Attachment) (*models.Task, error)
	RemoveAttachment(ctx context.Context, taskID int, attachmentID string) (*models.Task, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title       string
	Description string
	Status      models.Status   // Optional: empty means todo
	Priority    models.Priority // Optional: empty means medium
	DueDate     time.Time
	Progress    int
	AssigneeID  *int
	ProjectID   int
	Attachments []models.Attachment
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
	now         func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock replaces time.Now, used for overdue checks
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService creates a new task service
func NewService(repo database.DataStore, eventClient events.EventPublisher, opts ...Option) Service {
	s := &service{
		repo:        repo,
		eventClient: eventClient,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTasks returns tasks matching filter
func (s *service) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := s.repo.Tasks().GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask retrieves a single task
func (s *service) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.repo.Tasks().GetByID(ctx, taskID)
}

// GetBoard partitions the matching tasks into board columns
func (s *service) GetBoard(ctx context.Context, filter models.TaskFilter) ([]kanban.Column, error) {
	// the board always shows every column
	filter.Status = ""
	tasks, err := s.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}
	return kanban.Partition(tasks), nil
}

// GetGantt loads tasks and users concurrently and lays them out on a timeline
func (s *service) GetGantt(ctx context.Context, filter models.TaskFilter, opts ...gantt.Option) (gantt.Layout, error) {
	var (
		tasks []models.Task
		users []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.repo.Tasks().GetAll(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = s.repo.Users().GetAll(gctx, models.UserFilter{})
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return gantt.Layout{}, err
	}
	return gantt.ComputeLayout(tasks, users, opts...), nil
}

// GetStats summarizes tasks per status. projectID 0 covers every project.
func (s *service) GetStats(ctx context.Context, projectID int) (models.TaskStats, error) {
	tasks, err := s.ListTasks(ctx, models.TaskFilter{ProjectID: projectID})
	if err != nil {
		return models.TaskStats{}, err
	}
	return ComputeStats(tasks, s.now()), nil
}

// ComputeStats counts tasks per status and those overdue at now
func ComputeStats(tasks []models.Task, now time.Time) models.TaskStats {
	stats := models.TaskStats{TotalTasks: len(tasks)}
	for i := range tasks {
		switch tasks[i].Status {
		case models.StatusTodo:
			stats.TodoTasks++
		case models.StatusInProgress:
			stats.InProgressTasks++
		case models.StatusDone:
			stats.DoneTasks++
		}
		if tasks[i].IsOverdue(now) {
			stats.OverdueTasks++
		}
	}
	return stats
}

// RecentTasks returns up to n tasks, newest first
func RecentTasks(tasks []models.Task, n int) []models.Task {
	recent := slices.Clone(tasks)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

// CreateTask handles task creation with validation and business rules
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := validateCreateTask(req); err != nil {
		return nil, err
	}
	if err := s.checkProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, req.AssigneeID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task, err := s.repo.Tasks().Create(ctx, models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
		Progress:    req.Progress,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
		Attachments: withIDs(req.Attachments, s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishTaskEvent(task)
	return task, nil
}

// UpdateTask validates and applies a partial update
func (s *service) UpdateTask(ctx context.Context, taskID int, patch models.TaskPatch) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.ProjectID != nil {
		if err := s.checkProject(ctx, *patch.ProjectID); err != nil {
			return nil, err
		}
	}
	if !patch.ClearAssignee {
		if err := s.checkAssignee(ctx, patch.AssigneeID); err != nil {
			return nil, err
		}
	}
	if patch.Attachments != nil {
		stamped := withIDs(*patch.Attachments, s.now())
		patch.Attachments = &stamped
	}

	task, err := s.repo.Tasks().Update(ctx, taskID, patch)
	if errors.Is(err, database.ErrPositionTaken) {
		return nil, fmt.Errorf("%w: %w", ErrPositionTaken, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishTaskEvent(task)
	return task, nil
}

// DeleteTask handles task deletion
func (s *service) DeleteTask(ctx context.Context, taskID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}

	task, err := s.repo.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.repo.Tasks().Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishTaskEvent(task)
	return nil
}

// MoveTask moves a task to the end of column to. Moving onto its own
// column returns the task unchanged.
func (s *service) MoveTask(ctx context.Context, taskID int, to models.Status) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if err := validateStatus(to); err != nil {
		return nil, err
	}

	task, err := s.repo.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.Status == to {
		return task, nil
	}

	column, err := s.repo.Tasks().GetAll(ctx, models.TaskFilter{ProjectID: task.ProjectID, Status: to})
	if err != nil {
		return nil, fmt.Errorf("failed to load destination column: %w", err)
	}

	cmd := kanban.NewMoveCommand(kanban.Move{Task: *task, From: task.Status, To: to})
	board := &kanban.Board{Tasks: append(column, *task)}
	if _, err := cmd.Apply(board); err != nil {
		return nil, err
	}
	if err := cmd.Persist(ctx, board, s.repo.Tasks()); err != nil {
		return nil, err
	}

	moved, err := s.repo.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	s.publishTaskEvent(moved)
	return moved, nil
}

// AddAttachment validates a and appends it to the task with a fresh ID
func (s *service) AddAttachment(ctx context.Context, taskID int, a models.Attachment) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if err := validateAttachment(a); err != nil {
		return nil, err
	}

	task, err := s.repo.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	a.ID = ""
	attachments := append(slices.Clone(task.Attachments), a)
	return s.UpdateTask(ctx, taskID, models.TaskPatch{Attachments: &attachments})
}

// RemoveAttachment drops one attachment from the task
func (s *service) RemoveAttachment(ctx context.Context, taskID int, attachmentID string) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	task, err := s.repo.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	i := slices.IndexFunc(task.Attachments, func(a models.Attachment) bool { return a.ID == attachmentID })
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrAttachmentNotFound, attachmentID)
	}
	attachments := slices.Delete(slices.Clone(task.Attachments), i, i+1)
	return s.UpdateTask(ctx, taskID, models.TaskPatch{Attachments: &attachments})
}

// withIDs gives every attachment without an ID a new UUID and upload time
func withIDs(list []models.Attachment, now time.Time) []models.Attachment {
	out := make([]models.Attachment, len(list))
	for i, a := range list {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.UploadedAt.IsZero() {
			a.UploadedAt = now.UTC()
		}
		out[i] = a
	}
	return out
}

func (s *service) checkProject(ctx context.Context, projectID int) error {
	if _, err := s.repo.Projects().GetByID(ctx, projectID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	return nil
}

func (s *service) checkAssignee(ctx context.Context, assigneeID *int) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.repo.Users().GetByID(ctx, *assigneeID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrAssigneeNotFound, *assigneeID)
		}
		return fmt.Errorf("failed to get assignee: %w", err)
	}
	return nil
}

// publishTaskEvent announces a change; failures only affect live refresh
func (s *service) publishTaskEvent(task *models.Task) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventTaskChanged,
		ProjectID: task.ProjectID,
		EntityID:  task.ID,
	}, 3)
}
