package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// NotificationRepo handles all notification-related database operations.
type NotificationRepo struct {
	db *DB
}

const notificationColumns = `id, recipient_id, subject, message, type, status, sent_at`

func scanNotification(row rowScanner) (*models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.RecipientID, &n.Subject, &n.Message, &n.Type, &n.Status, &n.SentAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func notificationWhere(filter models.NotificationFilter) whereClause {
	var where whereClause
	if filter.RecipientID > 0 {
		where.add("recipient_id = ?", filter.RecipientID)
	}
	if filter.Status != "" {
		where.add("status = ?", filter.Status)
	}
	if filter.Type != "" {
		where.add("type = ?", filter.Type)
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		where.add("(LOWER(subject) LIKE ? OR LOWER(message) LIKE ?)", pattern, pattern)
	}
	return where
}

// GetAll returns one page of notifications, newest first. An unset limit
// means models.DefaultNotificationLimit.
func (r *NotificationRepo) GetAll(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error) {
	where := notificationWhere(filter)
	offset := max(0, filter.Offset)

	query := "SELECT " + notificationColumns + " FROM notifications" + where.String() +
		" ORDER BY sent_at DESC, id DESC LIMIT ? OFFSET ?"
	args := append(where.args, filter.PageLimit(), offset)

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer closeRows(rows)

	list := []models.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		list = append(list, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return list, nil
}

// GetByID retrieves a notification by ID
func (r *NotificationRepo) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	row := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT "+notificationColumns+" FROM notifications WHERE id = ?"), id)
	n, err := scanNotification(row)
	if err != nil {
		return nil, notFound(err, "notification", id)
	}
	return n, nil
}

// GetUnreadCount counts the recipient's unread notifications
func (r *NotificationRepo) GetUnreadCount(ctx context.Context, recipientID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND status = ?"),
		recipientID, models.NotificationUnread,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications for %d: %w", recipientID, err)
	}
	return count, nil
}

// GetCounts tallies the recipient's notifications per status
func (r *NotificationRepo) GetCounts(ctx context.Context, recipientID int) (models.NotificationCounts, error) {
	var counts models.NotificationCounts
	rows, err := r.db.QueryContext(ctx,
		r.db.Rebind("SELECT status, COUNT(*) FROM notifications WHERE recipient_id = ? GROUP BY status"),
		recipientID,
	)
	if err != nil {
		return counts, fmt.Errorf("failed to count notifications for %d: %w", recipientID, err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var (
			status models.NotificationStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return counts, fmt.Errorf("failed to scan notification count: %w", err)
		}
		switch status {
		case models.NotificationUnread:
			counts.Unread = n
		case models.NotificationRead:
			counts.Read = n
		case models.NotificationArchived:
			counts.Archived = n
		}
	}
	return counts, rows.Err()
}

// Create inserts a notification. Missing status, type, subject and sent-at
// get their defaults.
func (r *NotificationRepo) Create(ctx context.Context, n models.Notification) (*models.Notification, error) {
	if n.Status == "" {
		n.Status = models.NotificationUnread
	}
	if n.Type == "" {
		n.Type = models.NotificationPush
	}
	if n.Subject == "" {
		n.Subject = models.DefaultNotificationSubject
	}
	if n.SentAt.IsZero() {
		n.SentAt = nowUTC()
	}

	var id int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		id, err = insertReturningID(ctx, tx, r.db,
			`INSERT INTO notifications (recipient_id, subject, message, type, status, sent_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			n.RecipientID, n.Subject, n.Message, n.Type, n.Status, n.SentAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert notification for %d: %w", n.RecipientID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update applies patch to notification id
func (r *NotificationRepo) Update(ctx context.Context, id int, patch models.NotificationPatch) (*models.Notification, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			r.db.Rebind("SELECT "+notificationColumns+" FROM notifications WHERE id = ?"), id)
		n, err := scanNotification(row)
		if err != nil {
			return notFound(err, "notification", id)
		}
		patch.Apply(n)

		_, err = tx.ExecContext(ctx, r.db.Rebind(
			`UPDATE notifications SET recipient_id = ?, subject = ?, message = ?, type = ?, status = ?, sent_at = ?
			WHERE id = ?`),
			n.RecipientID, n.Subject, n.Message, n.Type, n.Status, n.SentAt.UTC(), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update notification %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a notification
func (r *NotificationRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM notifications WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete notification %d: %w", id, err)
	}
	return checkAffected(res, "notification", id)
}

// MarkAsRead moves an unread notification to read. Read and archived
// notifications are returned unchanged.
func (r *NotificationRepo) MarkAsRead(ctx context.Context, id int) (*models.Notification, error) {
	return r.advance(ctx, id, models.NotificationRead)
}

// MarkAsArchived archives a notification from any status
func (r *NotificationRepo) MarkAsArchived(ctx context.Context, id int) (*models.Notification, error) {
	return r.advance(ctx, id, models.NotificationArchived)
}

// advance sets status to next unless that would move it backwards
func (r *NotificationRepo) advance(ctx context.Context, id int, next models.NotificationStatus) (*models.Notification, error) {
	n, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status == next || !n.Status.CanTransitionTo(next) {
		return n, nil
	}

	_, err = r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE notifications SET status = ? WHERE id = ? AND status = ?"),
		next, id, n.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set notification %d to %s: %w", id, next, err)
	}
	return r.GetByID(ctx, id)
}

// BulkMarkAsRead marks every unread notification in ids as read in one
// transaction and returns how many changed
func (r *NotificationRepo) BulkMarkAsRead(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(ids)+2)
	args = append(args, models.NotificationRead, models.NotificationUnread)
	for _, id := range ids {
		args = append(args, id)
	}

	var changed int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.db.Rebind(
			"UPDATE notifications SET status = ? WHERE status = ? AND id IN ("+placeholders(len(ids))+")"),
			args...,
		)
		if err != nil {
			return fmt.Errorf("failed to mark notifications as read: %w", err)
		}
		changed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return int(changed), nil
}
