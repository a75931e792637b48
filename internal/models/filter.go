package models

// ============================================================================
// REPOSITORY FILTERS
// ============================================================================
// Zero values mean "no constraint".

// TaskFilter narrows a task listing
type TaskFilter struct {
	ProjectID  int      `form:"project_id"`
	Status     Status   `form:"status"`
	AssigneeID int      `form:"assignee_id"`
	Priority   Priority `form:"priority"`

	// Search matches title or description, case-insensitively
	Search string `form:"search"`
}

// ProjectFilter narrows a project listing
type ProjectFilter struct {
	Status ProjectStatus `form:"status"`
	Search string        `form:"search"`
}

// UserFilter narrows a user listing
type UserFilter struct {
	Role   string `form:"role"`
	Search string `form:"search"`
}

// CommentFilter narrows a comment listing
type CommentFilter struct {
	TaskID   int `form:"task_id"`
	AuthorID int `form:"author_id"`
}

// DefaultNotificationLimit is the page size used when a filter sets none
const DefaultNotificationLimit = 20

// NotificationFilter narrows a notification listing. Results are ordered
// newest first.
type NotificationFilter struct {
	RecipientID int                `form:"recipient_id"`
	Status      NotificationStatus `form:"status"`
	Type        NotificationType   `form:"type"`
	Search      string             `form:"search"`
	Limit       int                `form:"limit"`
	Offset      int                `form:"offset"`
}

// PageLimit returns Limit, or the default page size when unset
func (f NotificationFilter) PageLimit() int {
	if f.Limit <= 0 {
		return DefaultNotificationLimit
	}
	return f.Limit
}
