// Package huhforms holds the interactive forms used by the CLI
package huhforms

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TaskValues are the fields the task form edits in place
type TaskValues struct {
	Title       string
	Description string
	Status      models.Status
	Priority    models.Priority
	DueDate     string
	Confirm     bool
}

// DefaultTaskValues starts a new task in todo with medium priority
func DefaultTaskValues() TaskValues {
	return TaskValues{
		Status:   models.StatusTodo,
		Priority: models.PriorityMedium,
	}
}

// ValidateTitle rejects blank titles
func ValidateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

// ValidateDate requires a YYYY-MM-DD date
func ValidateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// CreateTaskForm builds the form for a new task. Values are written into v
// as the user edits.
func CreateTaskForm(v *TaskValues) *huh.Form {
	statusOptions := make([]huh.Option[models.Status], 0, len(models.Columns))
	for _, s := range models.Columns {
		statusOptions = append(statusOptions, huh.NewOption(s.Title(), s))
	}
	priorityOptions := make([]huh.Option[models.Priority], 0, len(models.Priorities))
	for _, p := range models.Priorities {
		priorityOptions = append(priorityOptions, huh.NewOption(string(p), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Placeholder("Enter task title...").
				Validate(ValidateTitle).
				Value(&v.Title),
			huh.NewText().
				Key("description").
				Title("Description").
				Placeholder("Markdown is supported").
				CharLimit(5000).
				Lines(5).
				Value(&v.Description),
		),
		huh.NewGroup(
			huh.NewSelect[models.Status]().
				Key("status").
				Title("Status").
				Options(statusOptions...).
				Value(&v.Status),
			huh.NewSelect[models.Priority]().
				Key("priority").
				Title("Priority").
				Options(priorityOptions...).
				Value(&v.Priority),
			huh.NewInput().
				Key("due_date").
				Title("Due date").
				Placeholder("YYYY-MM-DD").
				Validate(ValidateDate).
				Value(&v.DueDate),
			huh.NewConfirm().
				Key("confirm").
				Title("Create this task?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.Confirm),
		),
	).WithShowHelp(false)
}
