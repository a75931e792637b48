package models

import (
	"strings"
	"time"
)

// Status is the kanban column a task lives in
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the three board columns
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Title returns the column heading shown on boards
func (s Status) Title() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus maps user input to a Status. Accepts "in_progress" and
// "inprogress" as spellings of StatusInProgress.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "in_progress", "inprogress", "in progress":
		normalized = string(StatusInProgress)
	}
	s := Status(normalized)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Priority ranks a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority maps user input to a Priority
func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Attachment describes a file uploaded to a task
type Attachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Task represents a single card on the kanban board and a bar on the timeline
type Task struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	DueDate     time.Time    `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
	Progress    int          `json:"progress"`
	AssigneeID  *int         `json:"assignee_id,omitempty"`
	ProjectID   int          `json:"project_id"`
	Position    int          `json:"position"`
	Attachments []Attachment `json:"attachments"`
}

// GetID lets output formatters print just the ID in quiet mode
func (t *Task) GetID() int {
	return t.ID
}

// IsOverdue reports whether the task is past due and not finished
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusDone && t.DueDate.Before(now)
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *Status       `json:"status,omitempty"`
	Priority    *Priority     `json:"priority,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Progress    *int          `json:"progress,omitempty"`
	AssigneeID  *int          `json:"assignee_id,omitempty"`
	ProjectID   *int          `json:"project_id,omitempty"`
	Position    *int          `json:"position,omitempty"`
	Attachments *[]Attachment `json:"attachments,omitempty"`

	// ClearAssignee unassigns the task and wins over AssigneeID
	ClearAssignee bool `json:"clear_assignee,omitempty"`
}

// Apply merges the patch into t
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.ClearAssignee {
		t.AssigneeID = nil
	} else if p.AssigneeID != nil {
		id := *p.AssigneeID
		t.AssigneeID = &id
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.Attachments != nil {
		t.Attachments = *p.Attachments
	}
}

// TaskStats is the per-status breakdown shown on the dashboard
type TaskStats struct {
	TotalTasks      int `json:"total_tasks"`
	TodoTasks       int `json:"todo_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	DoneTasks       int `json:"done_tasks"`
	OverdueTasks    int `json:"overdue_tasks"`
}
