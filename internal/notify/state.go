// Package notify is the client-side notification cache: a pure reducer over
// State, a Store that serializes dispatches and fans state out to
// subscribers, and the Sync/Poller pair that keeps it in step with the
// notification repository.
package notify

import (
	"time"

	"github.com/thenoetrevino/tablero/internal/models"
)

// State is a snapshot of the cache. UnreadCount is a running counter and is
// only ever overwritten by SetUnreadCount; it is never recomputed from
// Notifications.
type State struct {
	Notifications []models.Notification
	UnreadCount   int
	Loading       bool
	Err           error
	LastFetch     time.Time
}

// Find returns the cached notification with the given id
func (s State) Find(id int) (models.Notification, bool) {
	for _, n := range s.Notifications {
		if n.ID == id {
			return n, true
		}
	}
	return models.Notification{}, false
}

// Action is a state transition request. The concrete types below are the
// only implementations.
type Action interface {
	action()
}

type (
	// SetLoading toggles the loading flag
	SetLoading struct{ Loading bool }

	// SetError records a failed operation
	SetError struct{ Err error }

	// ClearError drops the recorded error
	ClearError struct{}

	// SetNotifications replaces the cached list and stamps LastFetch with At.
	// The unread counter is left alone.
	SetNotifications struct {
		Notifications []models.Notification
		At            time.Time
	}

	// SetUnreadCount overwrites the counter with a server-reported value
	SetUnreadCount struct{ Count int }

	// AddNotification prepends a notification
	AddNotification struct{ Notification models.Notification }

	// UpdateNotification merges Patch into the cached notification ID
	UpdateNotification struct {
		ID    int
		Patch models.NotificationPatch
	}

	// RemoveNotification drops a notification from the cache
	RemoveNotification struct{ ID int }

	// MarkAsRead flips an unread notification to read
	MarkAsRead struct{ ID int }

	// BulkMarkAsRead applies MarkAsRead to each id
	BulkMarkAsRead struct{ IDs []int }

	// Reset returns to the initial state
	Reset struct{}
)

func (SetLoading) action() {}
func (SetError) action() {}
func (ClearError) action() {}
func (SetNotifications) action() {}
func (SetUnreadCount) action() {}
func (AddNotification) action() {}
func (UpdateNotification) action() {}
func (RemoveNotification) action() {}
func (MarkAsRead) action() {}
func (BulkMarkAsRead) action() {}
func (Reset) action() {}

// Reduce returns the state after applying a. It never mutates s: the
// notification slice is copied before any in-place change.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetLoading:
		s.Loading = a.Loading

	case SetError:
		s.Err = a.Err

	case ClearError:
		s.Err = nil

	case SetNotifications:
		s.Notifications = clone(a.Notifications)
		s.LastFetch = a.At

	case SetUnreadCount:
		s.UnreadCount = max(0, a.Count)

	case AddNotification:
		list := make([]models.Notification, 0, len(s.Notifications)+1)
		list = append(list, a.Notification)
		s.Notifications = append(list, s.Notifications...)
		if a.Notification.Status == models.NotificationUnread {
			s.UnreadCount++
		}

	case UpdateNotification:
		i := indexOf(s.Notifications, a.ID)
		if i < 0 {
			break
		}
		s.Notifications = clone(s.Notifications)
		wasUnread := s.Notifications[i].Status == models.NotificationUnread
		a.Patch.Apply(&s.Notifications[i])
		if wasUnread && s.Notifications[i].Status == models.NotificationRead {
			s.UnreadCount = decrement(s.UnreadCount, 1)
		}

	case RemoveNotification:
		i := indexOf(s.Notifications, a.ID)
		if i < 0 {
			break
		}
		if s.Notifications[i].Status == models.NotificationUnread {
			s.UnreadCount = decrement(s.UnreadCount, 1)
		}
		list := make([]models.Notification, 0, len(s.Notifications)-1)
		list = append(list, s.Notifications[:i]...)
		s.Notifications = append(list, s.Notifications[i+1:]...)

	case MarkAsRead:
		s = markRead(s, []int{a.ID})

	case BulkMarkAsRead:
		s = markRead(s, a.IDs)

	case Reset:
		return State{}
	}
	return s
}

func markRead(s State, ids []int) State {
	s.Notifications = clone(s.Notifications)
	updated := 0
	for _, id := range ids {
		i := indexOf(s.Notifications, id)
		if i < 0 || s.Notifications[i].Status != models.NotificationUnread {
			continue
		}
		s.Notifications[i].Status = models.NotificationRead
		updated++
	}
	s.UnreadCount = decrement(s.UnreadCount, updated)
	return s
}

func decrement(count, by int) int {
	return max(0, count-by)
}

func indexOf(list []models.Notification, id int) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(list []models.Notification) []models.Notification {
	if list == nil {
		return nil
	}
	out := make([]models.Notification, len(list))
	copy(out, list)
	return out
}
