// Package notification implements the notification business rules on top
// of the repository. Its method names line up with notify.Repository so a
// notify.Sync can sit directly on the service.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/events"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/notify"
)

// Service defines all notification operations
type Service interface {
	notify.Repository

	GetByID(ctx context.Context, id int) (*models.Notification, error)
	GetCounts(ctx context.Context, recipientID int) (models.NotificationCounts, error)
	GetPage(ctx context.Context, filter models.NotificationFilter, page int) ([]models.Notification, error)
	Update(ctx context.Context, id int, patch models.NotificationPatch) (*models.Notification, error)
	BulkMarkAsRead(ctx context.Context, ids []int) (int, error)
}

type service struct {
	repo        database.NotificationRepository
	eventClient events.EventPublisher
}

// NewService creates a new notification service
func NewService(repo database.NotificationRepository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

var _ notify.Repository = (*service)(nil)

// GetAll lists notifications newest first, one page at a time
func (s *service) GetAll(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, ErrInvalidType
	}
	list, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return list, nil
}

// GetPage loads the 1-based page of filter, using the filter's limit as
// the page size
func (s *service) GetPage(ctx context.Context, filter models.NotificationFilter, page int) ([]models.Notification, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	filter.Offset = (page - 1) * filter.PageLimit()
	return s.GetAll(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	if id <= 0 {
		return nil, ErrInvalidNotificationID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetUnreadCount(ctx context.Context, recipientID int) (int, error) {
	if recipientID <= 0 {
		return 0, ErrInvalidRecipientID
	}
	return s.repo.GetUnreadCount(ctx, recipientID)
}

func (s *service) GetCounts(ctx context.Context, recipientID int) (models.NotificationCounts, error) {
	if recipientID <= 0 {
		return models.NotificationCounts{}, ErrInvalidRecipientID
	}
	return s.repo.GetCounts(ctx, recipientID)
}

// Create validates n and stores it. Missing subject, type, status and
// sent time get their defaults in the repository.
func (s *service) Create(ctx context.Context, n models.Notification) (*models.Notification, error) {
	if n.RecipientID <= 0 {
		return nil, ErrInvalidRecipientID
	}
	if strings.TrimSpace(n.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if n.Type != "" && !n.Type.Valid() {
		return nil, ErrInvalidType
	}
	if n.Status != "" && !n.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publishNotificationEvent(created.ID)
	return created, nil
}

// Update applies patch. A status change must not move backwards.
func (s *service) Update(ctx context.Context, id int, patch models.NotificationPatch) (*models.Notification, error) {
	if id <= 0 {
		return nil, ErrInvalidNotificationID
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, ErrInvalidType
	}
	if patch.Message != nil && strings.TrimSpace(*patch.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !current.Status.CanTransitionTo(*patch.Status) {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, *patch.Status)
		}
	}

	n, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	s.publishNotificationEvent(id)
	return n, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidNotificationID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	s.publishNotificationEvent(id)
	return nil
}

func (s *service) MarkAsRead(ctx context.Context, id int) (*models.Notification, error) {
	if id <= 0 {
		return nil, ErrInvalidNotificationID
	}
	n, err := s.repo.MarkAsRead(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}

	s.publishNotificationEvent(id)
	return n, nil
}

func (s *service) MarkAsArchived(ctx context.Context, id int) (*models.Notification, error) {
	if id <= 0 {
		return nil, ErrInvalidNotificationID
	}
	n, err := s.repo.MarkAsArchived(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to archive notification: %w", err)
	}

	s.publishNotificationEvent(id)
	return n, nil
}

// BulkMarkAsRead marks every unread notification in ids as read in one
// transaction and returns how many changed
func (s *service) BulkMarkAsRead(ctx context.Context, ids []int) (int, error) {
	for _, id := range ids {
		if id <= 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidNotificationID, id)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	changed, err := s.repo.BulkMarkAsRead(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	if changed > 0 {
		s.publishNotificationEvent(0)
	}
	return changed, nil
}

func (s *service) publishNotificationEvent(id int) {
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:     events.EventNotificationChanged,
		EntityID: id,
	}, 3)
}
