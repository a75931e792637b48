// Package testutil holds shared fixtures for package tests: an in-memory
// store, seed helpers and cobra helpers.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
)

// SetupTestDB opens a migrated in-memory SQLite database that is closed
// when the test ends
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo wraps SetupTestDB in a Repository
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// Date returns midnight UTC of the given day
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, repo database.DataStore, name string) int {
	t.Helper()
	u, err := repo.Users().Create(context.Background(), models.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  "Developer",
	})
	require.NoError(t, err)
	return u.ID
}

// CreateTestProject inserts an active project and returns its ID
func CreateTestProject(t *testing.T, repo database.DataStore, name string) int {
	t.Helper()
	p, err := repo.Projects().Create(context.Background(), models.Project{
		Name:   name,
		Status: models.ProjectActive,
	})
	require.NoError(t, err)
	return p.ID
}

// CreateTestTask inserts a medium-priority task at the end of its column
// and returns it
func CreateTestTask(t *testing.T, repo database.DataStore, projectID int, title string, status models.Status) *models.Task {
	t.Helper()
	task, err := repo.Tasks().Create(context.Background(), models.Task{
		Title:     title,
		Status:    status,
		Priority:  models.PriorityMedium,
		ProjectID: projectID,
		CreatedAt: Date(2024, time.January, 10),
		DueDate:   Date(2024, time.January, 20),
	})
	require.NoError(t, err)
	return task
}

// CreateTestNotification inserts an unread notification and returns its ID
func CreateTestNotification(t *testing.T, repo database.DataStore, recipientID int, subject string) int {
	t.Helper()
	n, err := repo.Notifications().Create(context.Background(), models.Notification{
		RecipientID: recipientID,
		Subject:     subject,
		Message:     subject,
	})
	require.NoError(t, err)
	return n.ID
}
