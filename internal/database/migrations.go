package database

import (
	"context"
	"fmt"
	"strings"
)

// schema is written once with {{pk}} and {{ts}} markers that each dialect
// fills in
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id {{pk}},
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id {{pk}},
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		due_date {{ts}},
		progress INTEGER NOT NULL DEFAULT 0,
		team_members TEXT NOT NULL DEFAULT '[]',
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id {{pk}},
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'todo',
		priority TEXT NOT NULL DEFAULT 'medium',
		due_date {{ts}} NOT NULL,
		created_at {{ts}} NOT NULL,
		progress INTEGER NOT NULL DEFAULT 0,
		assignee_id INTEGER REFERENCES users(id) ON DELETE SET NULL,
		project_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		attachments TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(project_id, status, position)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id {{pk}},
		task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		author_id INTEGER NOT NULL,
		content TEXT NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_task ON comments(task_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id {{pk}},
		recipient_id INTEGER NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'push',
		status TEXT NOT NULL DEFAULT 'unread',
		sent_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, status, sent_at)`,
}

func schemaFor(d Dialect) []string {
	pk, ts := "INTEGER PRIMARY KEY AUTOINCREMENT", "DATETIME"
	if d == DialectPostgres {
		pk, ts = "SERIAL PRIMARY KEY", "TIMESTAMPTZ"
	}
	r := strings.NewReplacer("{{pk}}", pk, "{{ts}}", ts)

	stmts := make([]string, 0, len(schema))
	for _, stmt := range schema {
		stmts = append(stmts, r.Replace(stmt))
	}
	return stmts
}

// runMigrations creates the schema if it does not exist yet
func runMigrations(ctx context.Context, db *DB) error {
	for i, stmt := range schemaFor(db.dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
