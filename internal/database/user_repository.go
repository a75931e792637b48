package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// UserRepo handles all user-related database operations.
type UserRepo struct {
	db *DB
}

const userColumns = `id, name, email, role, avatar_url`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.AvatarURL); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAll retrieves users matching filter ordered by name
func (r *UserRepo) GetAll(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	var where whereClause
	if filter.Role != "" {
		where.add("LOWER(role) = ?", searchTerm(filter.Role))
	}
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		where.add("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}

	query := "SELECT " + userColumns + " FROM users" + where.String() + " ORDER BY name, id"
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer closeRows(rows)

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

// Create inserts a user
func (r *UserRepo) Create(ctx context.Context, user models.User) (*models.User, error) {
	var id int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		id, err = insertReturningID(ctx, tx, r.db,
			`INSERT INTO users (name, email, role, avatar_url) VALUES (?, ?, ?, ?)`,
			user.Name, user.Email, user.Role, user.AvatarURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user '%s': %w", user.Name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update applies patch to user id
func (r *UserRepo) Update(ctx context.Context, id int, patch models.UserPatch) (*models.User, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, r.db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
		user, err := scanUser(row)
		if err != nil {
			return notFound(err, "user", id)
		}
		patch.Apply(user)

		_, err = tx.ExecContext(ctx, r.db.Rebind(
			`UPDATE users SET name = ?, email = ?, role = ?, avatar_url = ? WHERE id = ?`),
			user.Name, user.Email, user.Role, user.AvatarURL, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user. Tasks assigned to them become unassigned.
func (r *UserRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM users WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return checkAffected(res, "user", id)
}
