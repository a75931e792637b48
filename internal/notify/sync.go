package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/tablero/internal/models"
)

// bulkConcurrency caps in-flight repository calls during a bulk update
const bulkConcurrency = 8

// Repository is the part of the notification store Sync talks to
type Repository interface {
	GetAll(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID int) (int, error)
	Create(ctx context.Context, n models.Notification) (*models.Notification, error)
	MarkAsRead(ctx context.Context, id int) (*models.Notification, error)
	MarkAsArchived(ctx context.Context, id int) (*models.Notification, error)
	Delete(ctx context.Context, id int) error
}

// Sync performs repository calls on behalf of a Store and dispatches their
// results. Writes go to the repository first; the cache changes only on
// success.
type Sync struct {
	store  *Store
	repo   Repository
	filter models.NotificationFilter
	logger *slog.Logger
}

// SyncOption configures a Sync
type SyncOption func(*Sync)

// WithFilter narrows what Refresh loads. The recipient is always the one
// passed to NewSync.
func WithFilter(f models.NotificationFilter) SyncOption {
	return func(s *Sync) {
		s.filter = f
	}
}

// WithLogger sets the logger used for failed operations
func WithLogger(l *slog.Logger) SyncOption {
	return func(s *Sync) {
		s.logger = l
	}
}

// NewSync binds store to repo for one recipient
func NewSync(store *Store, repo Repository, recipientID int, opts ...SyncOption) *Sync {
	s := &Sync{
		store:  store,
		repo:   repo,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.filter.RecipientID = recipientID
	return s
}

// Store returns the store this Sync writes to
func (s *Sync) Store() *Store {
	return s.store
}

// Refresh reloads the list and the unread count concurrently and
// dispatches both once both succeed
func (s *Sync) Refresh(ctx context.Context) error {
	if s.filter.RecipientID <= 0 {
		return ErrInvalidRecipient
	}

	s.store.Dispatch(SetLoading{Loading: true})
	defer s.store.Dispatch(SetLoading{Loading: false})

	var (
		list  []models.Notification
		count int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.repo.GetAll(gctx, s.filter)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		count, err = s.repo.GetUnreadCount(gctx, s.filter.RecipientID)
		if err != nil {
			return fmt.Errorf("failed to get unread count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.fail("refresh", err)
		return err
	}

	s.store.Dispatch(SetNotifications{Notifications: list})
	s.store.Dispatch(SetUnreadCount{Count: count})
	s.store.Dispatch(ClearError{})
	return nil
}

// RefreshUnreadCount overwrites the local counter with the repository's
func (s *Sync) RefreshUnreadCount(ctx context.Context) (int, error) {
	if s.filter.RecipientID <= 0 {
		return 0, ErrInvalidRecipient
	}
	count, err := s.repo.GetUnreadCount(ctx, s.filter.RecipientID)
	if err != nil {
		err = fmt.Errorf("failed to get unread count: %w", err)
		s.fail("unread count", err)
		return 0, err
	}
	s.store.Dispatch(SetUnreadCount{Count: count})
	return count, nil
}

// Create stores n and prepends the stored record to the cache
func (s *Sync) Create(ctx context.Context, n models.Notification) (*models.Notification, error) {
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		err = fmt.Errorf("failed to create notification: %w", err)
		s.fail("create", err)
		return nil, err
	}
	s.store.Dispatch(AddNotification{Notification: *created})
	return created, nil
}

// MarkAsRead marks one notification read
func (s *Sync) MarkAsRead(ctx context.Context, id int) error {
	if _, err := s.repo.MarkAsRead(ctx, id); err != nil {
		err = fmt.Errorf("failed to mark notification %d as read: %w", id, err)
		s.fail("mark read", err)
		return err
	}
	s.store.Dispatch(MarkAsRead{ID: id})
	return nil
}

// Archive archives one notification. An unread notification is counted as
// read on the way so the counter stays in step.
func (s *Sync) Archive(ctx context.Context, id int) error {
	if _, err := s.repo.MarkAsArchived(ctx, id); err != nil {
		err = fmt.Errorf("failed to archive notification %d: %w", id, err)
		s.fail("archive", err)
		return err
	}
	archived := models.NotificationArchived
	s.store.Dispatch(MarkAsRead{ID: id})
	s.store.Dispatch(UpdateNotification{ID: id, Patch: models.NotificationPatch{Status: &archived}})
	return nil
}

// Delete removes one notification
func (s *Sync) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		err = fmt.Errorf("failed to delete notification %d: %w", id, err)
		s.fail("delete", err)
		return err
	}
	s.store.Dispatch(RemoveNotification{ID: id})
	return nil
}

// BulkMarkAsRead marks every id read. Each id succeeds or fails on its own:
// the cache reflects the successes and the returned error joins the
// failures.
func (s *Sync) BulkMarkAsRead(ctx context.Context, ids []int) ([]int, error) {
	errs := make([]error, len(ids))

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			if _, err := s.repo.MarkAsRead(ctx, id); err != nil {
				errs[i] = fmt.Errorf("notification %d: %w", id, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	done := make([]int, 0, len(ids))
	for i, id := range ids {
		if errs[i] == nil {
			done = append(done, id)
		}
	}
	if len(done) > 0 {
		s.store.Dispatch(BulkMarkAsRead{IDs: done})
	}

	if err := errors.Join(errs...); err != nil {
		err = fmt.Errorf("%w: %w", ErrBulkPartial, err)
		s.fail("bulk mark read", err)
		return done, err
	}
	return done, nil
}

func (s *Sync) fail(op string, err error) {
	s.logger.Error("notification sync failed", "op", op, "recipient_id", s.filter.RecipientID, "error", err)
	s.store.Dispatch(SetError{Err: err})
}
