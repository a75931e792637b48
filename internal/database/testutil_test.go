package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Local Test Helpers (to avoid import cycle with testutil)
// ============================================================================

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := InitDB(context.Background(), Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }
