package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tablero/internal/models"
)

// CommentRepo handles all comment-related database operations.
type CommentRepo struct {
	db *DB
}

const commentSelect = `SELECT c.id, c.task_id, c.author_id, c.content, c.created_at,
	u.id, u.name, u.email, u.role, u.avatar_url
	FROM comments c
	LEFT JOIN users u ON u.id = c.author_id`

func scanComment(row rowScanner) (*models.Comment, error) {
	var (
		c                         models.Comment
		userID                    sql.NullInt64
		name, email, role, avatar sql.NullString
	)
	err := row.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.CreatedAt,
		&userID, &name, &email, &role, &avatar)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		c.Author = &models.User{
			ID:        int(userID.Int64),
			Name:      name.String,
			Email:     email.String,
			Role:      role.String,
			AvatarURL: avatar.String,
		}
	}
	return &c, nil
}

// GetAll returns comments oldest first, each with its author when the
// author still exists
func (r *CommentRepo) GetAll(ctx context.Context, filter models.CommentFilter) ([]models.Comment, error) {
	var where whereClause
	if filter.TaskID > 0 {
		where.add("c.task_id = ?", filter.TaskID)
	}
	if filter.AuthorID > 0 {
		where.add("c.author_id = ?", filter.AuthorID)
	}

	query := commentSelect + where.String() + " ORDER BY c.created_at ASC, c.id ASC"
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer closeRows(rows)

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

// GetByID retrieves a comment with its author
func (r *CommentRepo) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(commentSelect+" WHERE c.id = ?"), id)
	c, err := scanComment(row)
	if err != nil {
		return nil, notFound(err, "comment", id)
	}
	return c, nil
}

// Create inserts a comment; a zero creation time is set to now
func (r *CommentRepo) Create(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = nowUTC()
	}

	var id int
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		id, err = insertReturningID(ctx, tx, r.db,
			`INSERT INTO comments (task_id, author_id, content, created_at) VALUES (?, ?, ?, ?)`,
			comment.TaskID, comment.AuthorID, comment.Content, comment.CreatedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert comment on task %d: %w", comment.TaskID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Update replaces the content of comment id
func (r *CommentRepo) Update(ctx context.Context, id int, content string) (*models.Comment, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("UPDATE comments SET content = ? WHERE id = ?"), content, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", id, err)
	}
	if err := checkAffected(res, "comment", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a comment
func (r *CommentRepo) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM comments WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return checkAffected(res, "comment", id)
}
