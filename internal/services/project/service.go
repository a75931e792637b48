package project

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
)

const maxNameLength = 100

// Service defines all project-related business operations
type Service interface {
	// Read operations
	ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	GetStats(ctx context.Context) (models.ProjectStats, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, id int, patch models.ProjectPatch) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) error
}

// CreateProjectRequest encapsulates data for creating a project. New
// projects always start at 0% progress.
type CreateProjectRequest struct {
	Name        string
	Description string
	Status      models.ProjectStatus // Optional: empty means active
	DueDate     time.Time
	TeamMembers []string
}

// service implements Service interface
type service struct {
	repo        database.ProjectRepository
	eventClient events.EventPublisher
}

// NewService creates a new project service
func NewService(repo database.ProjectRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// ListProjects retrieves projects matching filter
func (s *service) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	projects, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a specific project
func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetByID(ctx, id)
}

// GetStats summarizes every project
func (s *service) GetStats(ctx context.Context) (models.ProjectStats, error) {
	projects, err := s.ListProjects(ctx, models.ProjectFilter{})
	if err != nil {
		return models.ProjectStats{}, err
	}
	return ComputeStats(projects), nil
}

// ComputeStats counts projects by status and averages their progress,
// rounded half away from zero
func ComputeStats(projects []models.Project) models.ProjectStats {
	stats := models.ProjectStats{TotalProjects: len(projects)}
	if len(projects) == 0 {
		return stats
	}

	total := 0
	for _, p := range projects {
		switch p.Status {
		case models.ProjectActive:
			stats.ActiveProjects++
		case models.ProjectCompleted:
			stats.CompletedProjects++
		}
		total += p.Progress
	}
	stats.AverageProgress = int(math.Round(float64(total) / float64(len(projects))))
	return stats
}

// CreateProject creates a new project with validation
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.ProjectActive
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := validateTeam(req.TeamMembers); err != nil {
		return nil, err
	}

	project, err := s.repo.Create(ctx, models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		Progress:    0,
		TeamMembers: req.TeamMembers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.publishProjectEvent(project.ID)
	return project, nil
}

// UpdateProject applies a partial update
func (s *service) UpdateProject(ctx context.Context, id int, patch models.ProjectPatch) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > models.MaxProgress) {
		return nil, ErrInvalidProgress
	}
	if patch.TeamMembers != nil {
		if err := validateTeam(*patch.TeamMembers); err != nil {
			return nil, err
		}
	}

	project, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.publishProjectEvent(id)
	return project, nil
}

// DeleteProject removes a project. Its tasks keep their project ID.
func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.publishProjectEvent(id)
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validateTeam(members []string) error {
	for _, m := range members {
		if strings.TrimSpace(m) == "" {
			return ErrEmptyTeamMember
		}
	}
	return nil
}

// publishProjectEvent publishes a project change event
func (s *service) publishProjectEvent(projectID int) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: projectID,
		EntityID:  projectID,
	}, 3)
}
