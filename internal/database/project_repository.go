package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *DB
}

const projectColumns = `id, name, description, status, due_date, progress, team_members, created_at`

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p       models.Project
		dueDate sql.NullTime
		members string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &dueDate, &p.Progress, &members, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.DueDate = nullTimeToTime(dueDate)
	p.TeamMembers = []string{}
	if err := decodeJSON(members, &p.TeamMembers); err != nil {
		return nil, fmt.Errorf("project %d team members: %w", p.ID, err)
	}
	return &p, nil
}

// GetAll retrieves projects matching filter ordered by ID
func (r *ProjectRepo) GetAll(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	var where whereClause
	if filter.Status != "" {
		where.add("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		where.add("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	query := "SELECT " + projectColumns + " FROM projects" + where.String() + " ORDER BY id"
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer closeRows(rows)

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}
	return projects, nil
}

// GetByID retrieves a project by its ID
func (r *ProjectRepo) GetByID(ctx context.Context, id int) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT "+projectColumns+" FROM projects WHERE id = ?"), id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return p, nil
}

// Create inserts a project
func (r *ProjectRepo) Create(ctx context.Context, project models.Project) (*models.Project, error) {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = nowUTC()
	}
	if project.TeamMembers == nil {
		project.TeamMembers = []string{}
	}
	members, err := encodeJSON(project.TeamMembers)
	if err != nil {
		return nil, err
	}

	var id int
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		id, err = insertReturningID(ctx, tx, r.db,
			`INSERT INTO projects (name, description, status, due_date, progress, team_members, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			project.Name, project.Description, project.Status, timeToNullTime(project.DueDate),
			project.Progress, members, project.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert project '%s': %w", project.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update applies patch to project id
func (r *ProjectRepo) Update(ctx context.Context, id int, patch models.ProjectPatch) (*models.Project, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, r.db.Rebind("SELECT "+projectColumns+" FROM projects WHERE id = ?"), id)
		project, err := scanProject(row)
		if err != nil {
			return notFound(err, "project", id)
		}

		patch.Apply(project)
		members, err := encodeJSON(project.TeamMembers)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, r.db.Rebind(
			`UPDATE projects SET name = ?, description = ?, status = ?, due_date = ?, progress = ?, team_members = ?
			WHERE id = ?`),
			project.Name, project.Description, project.Status, timeToNullTime(project.DueDate),
			project.Progress, members, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update project %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a project. Its tasks keep their project reference.
func (r *ProjectRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM projects WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return checkAffected(res, "project", id)
}
