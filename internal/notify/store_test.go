package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/models"
)

func TestStore_DispatchAndState(t *testing.T) {
	store := NewStore()

	store.Dispatch(AddNotification{Notification: n(1, models.NotificationUnread)})
	got := store.Dispatch(MarkAsRead{ID: 1})

	assert.Equal(t, 0, got.UnreadCount)
	assert.Equal(t, got, store.State())
}

func TestStore_StampsLastFetch(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	store := NewStore()
	store.now = func() time.Time { return fixed }

	store.Dispatch(SetNotifications{})

	assert.Equal(t, fixed, store.State().LastFetch)
}

func TestStore_Subscribe(t *testing.T) {
	store := NewStore()
	ch, unsubscribe := store.Subscribe()

	store.Dispatch(SetUnreadCount{Count: 2})

	select {
	case s := <-ch:
		assert.Equal(t, 2, s.UnreadCount)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive state")
	}

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)

	// dispatching after unsubscribe must not panic
	store.Dispatch(SetUnreadCount{Count: 3})
}

func TestStore_SlowSubscriberDoesNotBlock(t *testing.T) {
	store := NewStore()
	_, unsubscribe := store.Subscribe()
	defer unsubscribe()

	for i := 0; i < subscriberBuffer*4; i++ {
		store.Dispatch(SetUnreadCount{Count: i})
	}

	require.Equal(t, subscriberBuffer*4-1, store.State().UnreadCount)
}
