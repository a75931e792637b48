// Package kanban holds the board rules: how tasks split into columns, how
// they are ordered inside one, and what a move between columns does.
package kanban

import (
	"sort"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TasksByStatus returns the tasks whose status is status, ordered by
// ascending position. Tasks with equal positions keep their input order.
func TasksByStatus(tasks []models.Task, status models.Status) []models.Task {
	column := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			column = append(column, t)
		}
	}
	sort.SliceStable(column, func(i, j int) bool {
		return column[i].Position < column[j].Position
	})
	return column
}

// Column is one rendered board column
type Column struct {
	Status models.Status `json:"status"`
	Title  string        `json:"title"`
	Tasks  []models.Task `json:"tasks"`
}

// Partition splits tasks into the board columns in display order. Tasks
// with a status outside the board are not placed in any column.
func Partition(tasks []models.Task) []Column {
	columns := make([]Column, 0, len(models.Columns))
	for _, status := range models.Columns {
		columns = append(columns, Column{
			Status: status,
			Title:  status.Title(),
			Tasks:  TasksByStatus(tasks, status),
		})
	}
	return columns
}

// NextPosition is the position a task gets when appended to the column
// (projectID, status). A projectID of 0 matches every project.
func NextPosition(tasks []models.Task, projectID int, status models.Status) int {
	highest := 0
	found := false
	for _, t := range tasks {
		if t.Status != status {
			continue
		}
		if projectID != 0 && t.ProjectID != projectID {
			continue
		}
		if !found || t.Position > highest {
			highest = t.Position
			found = true
		}
	}
	if !found {
		return models.FirstPosition
	}
	return highest + 1
}

// MoveTask returns task as it looks after being dropped on column to.
// column is the current content of the destination column. Moving within
// the same column changes nothing; otherwise the task is appended to the
// end of the destination.
func MoveTask(task models.Task, from, to models.Status, column []models.Task) models.Task {
	if from == to {
		return task
	}
	task.Status = to
	task.Position = NextPosition(column, 0, to)
	return task
}

// Counts returns the number of tasks in each board column
func Counts(tasks []models.Task) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.Columns))
	for _, status := range models.Columns {
		counts[status] = 0
	}
	for _, t := range tasks {
		if _, ok := counts[t.Status]; ok {
			counts[t.Status]++
		}
	}
	return counts
}

// Flatten concatenates the columns back into one list in board order
func Flatten(columns []Column) []models.Task {
	var n int
	for _, c := range columns {
		n += len(c.Tasks)
	}
	tasks := make([]models.Task, 0, n)
	for _, c := range columns {
		tasks = append(tasks, c.Tasks...)
	}
	return tasks
}
