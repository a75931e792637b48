package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/database"
	"github.com/thenoetrevino/tablero/internal/models"
	"github.com/thenoetrevino/tablero/internal/notify"
	"github.com/thenoetrevino/tablero/internal/testutil"
)

func setupService(t *testing.T) (Service, *database.Repository, int) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	userID := testutil.CreateTestUser(t, repo, "gus")
	return NewService(repo.Notifications(), nil), repo, userID
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreate_Defaults(t *testing.T) {
	svc, _, userID := setupService(t)

	n, err := svc.Create(context.Background(), models.Notification{RecipientID: userID, Message: "hello"})
	require.NoError(t, err)

	assert.Equal(t, models.NotificationUnread, n.Status)
	assert.Equal(t, models.NotificationPush, n.Type)
	assert.Equal(t, models.DefaultNotificationSubject, n.Subject)
	assert.False(t, n.SentAt.IsZero())
}

func TestCreate_Validation(t *testing.T) {
	svc, _, userID := setupService(t)

	tests := []struct {
		name    string
		n       models.Notification
		wantErr error
	}{
		{"no recipient", models.Notification{Message: "m"}, ErrInvalidRecipientID},
		{"empty message", models.Notification{RecipientID: userID, Message: " "}, ErrEmptyMessage},
		{"bad type", models.Notification{RecipientID: userID, Message: "m", Type: "fax"}, ErrInvalidType},
		{"bad status", models.Notification{RecipientID: userID, Message: "m", Status: "seen"}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.n)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ============================================================================
// STATUS TRANSITIONS
// ============================================================================

func TestUpdate_StatusTransitions(t *testing.T) {
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	id := testutil.CreateTestNotification(t, repo, userID, "s")

	read := models.NotificationRead
	n, err := svc.Update(ctx, id, models.NotificationPatch{Status: &read})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationRead, n.Status)

	unread := models.NotificationUnread
	_, err = svc.Update(ctx, id, models.NotificationPatch{Status: &unread})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkAsReadAndArchive(t *testing.T) {
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	id := testutil.CreateTestNotification(t, repo, userID, "s")

	n, err := svc.MarkAsRead(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationRead, n.Status)

	n, err = svc.MarkAsArchived(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationArchived, n.Status)

	// archived never goes back to read
	n, err = svc.MarkAsRead(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationArchived, n.Status)
}

func TestMarkAsRead_NotFound(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.MarkAsRead(context.Background(), 404)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

// ============================================================================
// COUNTS / PAGES / BULK
// ============================================================================

func TestCountsAndBulkMarkAsRead(t *testing.T) {
	svc, repo, userID := setupService(t)
	ctx := context.Background()

	ids := make([]int, 0, 3)
	for i := range 3 {
		ids = append(ids, testutil.CreateTestNotification(t, repo, userID, fmt.Sprintf("n%d", i)))
	}

	unread, err := svc.GetUnreadCount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	changed, err := svc.BulkMarkAsRead(ctx, ids[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	counts, err := svc.GetCounts(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationCounts{Unread: 1, Read: 2}, counts)
}

func TestBulkMarkAsRead_InvalidID(t *testing.T) {
	svc, _, _ := setupService(t)

	_, err := svc.BulkMarkAsRead(context.Background(), []int{1, 0})
	assert.ErrorIs(t, err, ErrInvalidNotificationID)
}

func TestGetPage(t *testing.T) {
	svc, _, userID := setupService(t)
	ctx := context.Background()
	base := testutil.Date(2024, time.March, 1)

	for i := range 25 {
		_, err := svc.Create(ctx, models.Notification{
			RecipientID: userID,
			Message:     fmt.Sprintf("m%02d", i),
			SentAt:      base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	filter := models.NotificationFilter{RecipientID: userID}
	first, err := svc.GetPage(ctx, filter, 1)
	require.NoError(t, err)
	require.Len(t, first, models.DefaultNotificationLimit)
	assert.Equal(t, "m24", first[0].Message)

	second, err := svc.GetPage(ctx, filter, 2)
	require.NoError(t, err)
	require.Len(t, second, 5)
	assert.Equal(t, "m00", second[4].Message)

	_, err = svc.GetPage(ctx, filter, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

// ============================================================================
// STORE INTEGRATION
// ============================================================================

func TestSyncOverService(t *testing.T) {
	svc, repo, userID := setupService(t)
	ctx := context.Background()
	id := testutil.CreateTestNotification(t, repo, userID, "ping")

	store := notify.NewStore()
	syncer := notify.NewSync(store, svc, userID)
	require.NoError(t, syncer.Refresh(ctx))
	assert.Equal(t, 1, store.State().UnreadCount)

	require.NoError(t, syncer.MarkAsRead(ctx, id))
	assert.Equal(t, 0, store.State().UnreadCount)
}
