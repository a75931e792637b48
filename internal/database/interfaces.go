package database

import (
	"context"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ============================================================================
// TASKS
// ============================================================================

// TaskReader defines read operations for tasks.
type TaskReader interface {
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetByID(ctx context.Context, id int) (*models.Task, error)
	NextPosition(ctx context.Context, projectID int, status models.Status) (int, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	Create(ctx context.Context, task models.Task) (*models.Task, error)
	Update(ctx context.Context, id int, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id int) error
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}

// ============================================================================
// PROJECTS
// ============================================================================

// ProjectRepository stores projects.
type ProjectRepository interface {
	GetAll(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	GetByID(ctx context.Context, id int) (*models.Project, error)
	Create(ctx context.Context, project models.Project) (*models.Project, error)
	Update(ctx context.Context, id int, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id int) error
}

// ============================================================================
// USERS
// ============================================================================

// UserRepository stores team members.
type UserRepository interface {
	GetAll(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
	Update(ctx context.Context, id int, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

// ============================================================================
// COMMENTS
// ============================================================================

// CommentRepository stores task comments. Reads come back with the author
// attached and oldest first.
type CommentRepository interface {
	GetAll(ctx context.Context, filter models.CommentFilter) ([]models.Comment, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	Create(ctx context.Context, comment models.Comment) (*models.Comment, error)
	Update(ctx context.Context, id int, content string) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
}

// ============================================================================
// NOTIFICATIONS
// ============================================================================

// NotificationReader defines read operations for notifications.
type NotificationReader interface {
	GetAll(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, error)
	GetByID(ctx context.Context, id int) (*models.Notification, error)
	GetUnreadCount(ctx context.Context, recipientID int) (int, error)
	GetCounts(ctx context.Context, recipientID int) (models.NotificationCounts, error)
}

// NotificationWriter defines write operations for notifications.
type NotificationWriter interface {
	Create(ctx context.Context, n models.Notification) (*models.Notification, error)
	Update(ctx context.Context, id int, patch models.NotificationPatch) (*models.Notification, error)
	Delete(ctx context.Context, id int) error
	MarkAsRead(ctx context.Context, id int) (*models.Notification, error)
	MarkAsArchived(ctx context.Context, id int) (*models.Notification, error)
	BulkMarkAsRead(ctx context.Context, ids []int) (int, error)
}

// NotificationRepository combines all notification-related operations.
type NotificationRepository interface {
	NotificationReader
	NotificationWriter
}

// DataStore hands out every repository over one connection pool.
type DataStore interface {
	Tasks() TaskRepository
	Projects() ProjectRepository
	Users() UserRepository
	Comments() CommentRepository
	Notifications() NotificationRepository
}
