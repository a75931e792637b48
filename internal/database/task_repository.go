package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *DB
}

const taskColumns = `id, title, description, status, priority, due_date, created_at,
	progress, assignee_id, project_id, position, attachments`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t           models.Task
		assigneeID  sql.NullInt64
		attachments string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &t.CreatedAt,
		&t.Progress, &assigneeID, &t.ProjectID, &t.Position, &attachments,
	)
	if err != nil {
		return nil, err
	}
	t.AssigneeID = nullInt64ToPtr(assigneeID)
	t.Attachments = []models.Attachment{}
	if err := decodeJSON(attachments, &t.Attachments); err != nil {
		return nil, fmt.Errorf("task %d attachments: %w", t.ID, err)
	}
	return &t, nil
}

// GetAll returns tasks matching filter ordered by project, status and position
func (r *TaskRepo) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var where whereClause
	if filter.ProjectID > 0 {
		where.add("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		where.add("status = ?", filter.Status)
	}
	if filter.AssigneeID > 0 {
		where.add("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Priority != "" {
		where.add("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		where.add("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	query := "SELECT " + taskColumns + " FROM tasks" + where.String() +
		" ORDER BY project_id, status, position, id"
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer closeRows(rows)

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by its ID
func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ?"), id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return t, nil
}

// NextPosition returns max(position)+1 in (projectID, status), or 1 for an
// empty column
func (r *TaskRepo) NextPosition(ctx context.Context, projectID int, status models.Status) (int, error) {
	return nextPosition(ctx, r.db, r.db.DB, projectID, status)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func nextPosition(ctx context.Context, db *DB, q queryRower, projectID int, status models.Status) (int, error) {
	var highest sql.NullInt64
	err := q.QueryRowContext(ctx,
		db.Rebind("SELECT MAX(position) FROM tasks WHERE project_id = ? AND status = ?"),
		projectID, status,
	).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("failed to get max position: %w", err)
	}
	if !highest.Valid {
		return models.FirstPosition, nil
	}
	return int(highest.Int64) + 1, nil
}

func positionTaken(ctx context.Context, db *DB, q queryRower, task *models.Task) error {
	var n int
	err := q.QueryRowContext(ctx,
		db.Rebind("SELECT COUNT(*) FROM tasks WHERE project_id = ? AND status = ? AND position = ? AND id <> ?"),
		task.ProjectID, task.Status, task.Position, task.ID,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to check position: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d in (project %d, %s)", ErrPositionTaken, task.Position, task.ProjectID, task.Status)
	}
	return nil
}

// Create inserts task. A zero position appends it to the end of its column,
// a zero creation time is set to now.
func (r *TaskRepo) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = nowUTC()
	}
	if task.Attachments == nil {
		task.Attachments = []models.Attachment{}
	}
	attachments, err := encodeJSON(task.Attachments)
	if err != nil {
		return nil, err
	}

	var id int
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if task.Position <= 0 {
			pos, err := nextPosition(ctx, r.db, tx, task.ProjectID, task.Status)
			if err != nil {
				return err
			}
			task.Position = pos
		} else if err := positionTaken(ctx, r.db, tx, &task); err != nil {
			return err
		}

		id, err = insertReturningID(ctx, tx, r.db,
			`INSERT INTO tasks (title, description, status, priority, due_date, created_at,
				progress, assignee_id, project_id, position, attachments)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			task.Title, task.Description, task.Status, task.Priority, task.DueDate.UTC(), task.CreatedAt.UTC(),
			task.Progress, ptrToNullInt64(task.AssigneeID), task.ProjectID, task.Position, attachments,
		)
		if err != nil {
			return fmt.Errorf("failed to insert task '%s': %w", task.Title, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update applies patch to task id and returns the stored result. A task
// that changes column without an explicit position goes to the end of its
// new column; an explicit position must be free in the target column.
func (r *TaskRepo) Update(ctx context.Context, id int, patch models.TaskPatch) (*models.Task, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, r.db.Rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ?"), id)
		task, err := scanTask(row)
		if err != nil {
			return notFound(err, "task", id)
		}

		fromProject, fromStatus := task.ProjectID, task.Status
		patch.Apply(task)
		switch {
		case patch.Position != nil:
			if err := positionTaken(ctx, r.db, tx, task); err != nil {
				return err
			}
		case task.ProjectID != fromProject || task.Status != fromStatus:
			pos, err := nextPosition(ctx, r.db, tx, task.ProjectID, task.Status)
			if err != nil {
				return err
			}
			task.Position = pos
		}

		attachments, err := encodeJSON(task.Attachments)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, r.db.Rebind(
			`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
				progress = ?, assignee_id = ?, project_id = ?, position = ?, attachments = ?
			WHERE id = ?`),
			task.Title, task.Description, task.Status, task.Priority, task.DueDate.UTC(),
			task.Progress, ptrToNullInt64(task.AssigneeID), task.ProjectID, task.Position, attachments,
			id,
		)
		if err != nil {
			return fmt.Errorf("failed to update task %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a task permanently along with its comments
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM tasks WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return checkAffected(res, "task", id)
}
