package converters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ErrMissingField is returned when a record lacks a required field
var ErrMissingField = errors.New("missing required field")

// Accepted spellings, most specific first
var (
	idKeys          = []string{"Id", "id", "ID"}
	nameKeys        = []string{"name_c", "name", "Name"}
	titleKeys       = []string{"title_c", "title", "Name"}
	descriptionKeys = []string{"description_c", "description"}
	statusKeys      = []string{"status_c", "status"}
	priorityKeys    = []string{"priority_c", "priority"}
	dueDateKeys     = []string{"due_date_c", "due_date", "dueDate"}
	createdAtKeys   = []string{"created_at_c", "created_at", "createdAt", "CreatedOn"}
	progressKeys    = []string{"progress_c", "progress"}
	assigneeKeys    = []string{"assignee_id_c", "assignee_id", "assigneeId"}
	projectKeys     = []string{"project_id_c", "project_id", "projectId"}
	positionKeys    = []string{"position_c", "position"}
	attachmentKeys  = []string{"attachments_c", "attachments"}
)

func requireID(rec Record) (int, error) {
	id, ok, err := rec.Int(idKeys...)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: Id", ErrMissingField)
	}
	return id, nil
}

func optionalID(rec Record, keys ...string) (*int, error) {
	id, ok, err := rec.Int(keys...)
	if err != nil || !ok || id <= 0 {
		return nil, err
	}
	return &id, nil
}

// TaskFromRecord converts an exported task. The returned task keeps the
// export's IDs; callers remap them when storing.
func TaskFromRecord(rec Record) (models.Task, error) {
	var t models.Task
	var err error

	if t.ID, err = requireID(rec); err != nil {
		return t, err
	}
	t.Title = strings.TrimSpace(rec.String(titleKeys...))
	if t.Title == "" {
		return t, fmt.Errorf("task %d: %w: title", t.ID, ErrMissingField)
	}
	t.Description = rec.String(descriptionKeys...)

	if raw := rec.String(statusKeys...); raw != "" {
		if t.Status, err = models.ParseStatus(raw); err != nil {
			return t, fmt.Errorf("task %d: %w", t.ID, err)
		}
	} else {
		t.Status = models.StatusTodo
	}
	if raw := rec.String(priorityKeys...); raw != "" {
		if t.Priority, err = models.ParsePriority(raw); err != nil {
			return t, fmt.Errorf("task %d: %w", t.ID, err)
		}
	} else {
		t.Priority = models.PriorityMedium
	}

	if t.DueDate, _, err = rec.Time(dueDateKeys...); err != nil {
		return t, fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.CreatedAt, _, err = rec.Time(createdAtKeys...); err != nil {
		return t, fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.Progress, _, err = rec.Int(progressKeys...); err != nil {
		return t, fmt.Errorf("task %d: %w", t.ID, err)
	}
	t.Progress = min(max(t.Progress, 0), models.MaxProgress)
	if t.Position, _, err = rec.Int(positionKeys...); err != nil {
		return t, fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.AssigneeID, err = optionalID(rec, assigneeKeys...); err != nil {
		return t, fmt.Errorf("task %d: %w", t.ID, err)
	}
	if t.ProjectID, _, err = rec.Int(projectKeys...); err != nil {
		return t, fmt.Errorf("task %d: %w", t.ID, err)
	}

	if t.Attachments, err = attachmentsFromRecord(rec); err != nil {
		return t, fmt.Errorf("task %d: %w", t.ID, err)
	}
	return t, nil
}

func attachmentsFromRecord(rec Record) ([]models.Attachment, error) {
	list, err := rec.Records(attachmentKeys...)
	if err != nil {
		return nil, err
	}
	out := make([]models.Attachment, 0, len(list))
	for _, a := range list {
		size, _, err := a.Int("size", "Size")
		if err != nil {
			return nil, err
		}
		uploaded, _, err := a.Time("uploadedAt", "uploaded_at")
		if err != nil {
			return nil, err
		}
		out = append(out, models.Attachment{
			ID:         a.String("id", "Id"),
			Name:       a.String("name", "Name"),
			Size:       int64(size),
			MimeType:   a.String("type", "mime_type", "mimeType"),
			URL:        a.String("url", "URL"),
			UploadedAt: uploaded,
		})
	}
	return out, nil
}

// ProjectFromRecord converts an exported project
func ProjectFromRecord(rec Record) (models.Project, error) {
	var p models.Project
	var err error

	if p.ID, err = requireID(rec); err != nil {
		return p, err
	}
	p.Name = strings.TrimSpace(rec.String(nameKeys...))
	if p.Name == "" {
		return p, fmt.Errorf("project %d: %w: name", p.ID, ErrMissingField)
	}
	p.Description = rec.String(descriptionKeys...)

	if raw := rec.String(statusKeys...); raw != "" {
		if p.Status, err = models.ParseProjectStatus(raw); err != nil {
			return p, fmt.Errorf("project %d: %w", p.ID, err)
		}
	} else {
		p.Status = models.ProjectActive
	}
	if p.DueDate, _, err = rec.Time(dueDateKeys...); err != nil {
		return p, fmt.Errorf("project %d: %w", p.ID, err)
	}
	if p.CreatedAt, _, err = rec.Time(createdAtKeys...); err != nil {
		return p, fmt.Errorf("project %d: %w", p.ID, err)
	}
	if p.Progress, _, err = rec.Int(progressKeys...); err != nil {
		return p, fmt.Errorf("project %d: %w", p.ID, err)
	}
	p.Progress = min(max(p.Progress, 0), models.MaxProgress)
	p.TeamMembers = rec.Strings("team_members_c", "team_members", "teamMembers")
	return p, nil
}

// UserFromRecord converts an exported user
func UserFromRecord(rec Record) (models.User, error) {
	var u models.User
	var err error

	if u.ID, err = requireID(rec); err != nil {
		return u, err
	}
	u.Name = strings.TrimSpace(rec.String(nameKeys...))
	if u.Name == "" {
		return u, fmt.Errorf("user %d: %w: name", u.ID, ErrMissingField)
	}
	u.Email = strings.TrimSpace(rec.String("email_c", "email"))
	u.Role = rec.String("role_c", "role")
	u.AvatarURL = rec.String("avatar_c", "avatar_url", "avatar")
	return u, nil
}

// CommentFromRecord converts an exported comment
func CommentFromRecord(rec Record) (models.Comment, error) {
	var c models.Comment
	var err error

	if c.ID, err = requireID(rec); err != nil {
		return c, err
	}
	if c.TaskID, _, err = rec.Int("task_id_c", "task_id", "taskId"); err != nil {
		return c, fmt.Errorf("comment %d: %w", c.ID, err)
	}
	if c.AuthorID, _, err = rec.Int("author_id_c", "author_id", "authorId"); err != nil {
		return c, fmt.Errorf("comment %d: %w", c.ID, err)
	}
	c.Content = strings.TrimSpace(rec.String("content_c", "content"))
	if c.Content == "" {
		return c, fmt.Errorf("comment %d: %w: content", c.ID, ErrMissingField)
	}
	if c.CreatedAt, _, err = rec.Time(createdAtKeys...); err != nil {
		return c, fmt.Errorf("comment %d: %w", c.ID, err)
	}
	return c, nil
}

// NotificationFromRecord converts an exported notification
func NotificationFromRecord(rec Record) (models.Notification, error) {
	var n models.Notification
	var err error

	if n.ID, err = requireID(rec); err != nil {
		return n, err
	}
	if n.RecipientID, _, err = rec.Int("recipient_id_c", "recipient_id", "recipientId"); err != nil {
		return n, fmt.Errorf("notification %d: %w", n.ID, err)
	}
	n.Subject = rec.String("subject_c", "subject", "Name")
	n.Message = rec.String("message_c", "message")

	if raw := rec.String("notification_type_c", "type"); raw != "" {
		if n.Type, err = models.ParseNotificationType(raw); err != nil {
			return n, fmt.Errorf("notification %d: %w", n.ID, err)
		}
	}
	if raw := rec.String(statusKeys...); raw != "" {
		if n.Status, err = models.ParseNotificationStatus(raw); err != nil {
			return n, fmt.Errorf("notification %d: %w", n.ID, err)
		}
	}
	if n.SentAt, _, err = rec.Time("sent_at_c", "sent_at", "sentAt", "CreatedOn"); err != nil {
		return n, fmt.Errorf("notification %d: %w", n.ID, err)
	}
	return n, nil
}
