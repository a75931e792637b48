package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
)

const maxNameLength = 100

// Service defines all user-related business operations
type Service interface {
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUsersByProject(ctx context.Context, projectID int) ([]models.User, error)

	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// CreateUserRequest encapsulates data for creating a user
type CreateUserRequest struct {
	Name      string
	Email     string
	Role      string
	AvatarURL string
}

type service struct {
	repo        database.UserRepository
	eventClient events.EventPublisher
}

// NewService creates a new user service
func NewService(repo database.UserRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

func (s *service) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *service) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.GetByID(ctx, id)
}

// GetUsersByProject returns the people who can work on a project.
// Membership is not tracked per project yet, so this is every user.
func (s *service) GetUsersByProject(ctx context.Context, projectID int) ([]models.User, error) {
	return s.ListUsers(ctx, models.UserFilter{})
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Role:      strings.TrimSpace(req.Role),
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publishUserEvent(u.ID)
	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, id int, patch models.UserPatch) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return nil, err
		}
	}
	if patch.Email != nil {
		email, err := normalizeEmail(*patch.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}

	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.publishUserEvent(id)
	return u, nil
}

// DeleteUser removes a user. Their tasks become unassigned.
func (s *service) DeleteUser(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidUserID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.publishUserEvent(id)
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

// normalizeEmail accepts a bare address and returns it lowercased
func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Name != "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}
	return strings.ToLower(addr.Address), nil
}

func (s *service) publishUserEvent(userID int) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:     events.EventUserChanged,
		EntityID: userID,
	}, 3)
}
