package events

import "time"

// EventType indicates what kind of record changed
type EventType string

const (
	EventTaskChanged         EventType = "task_changed"
	EventProjectChanged      EventType = "project_changed"
	EventUserChanged         EventType = "user_changed"
	EventCommentChanged      EventType = "comment_changed"
	EventNotificationChanged EventType = "notification_changed"
)

// Event describes a change made through a service
type Event struct {
	Type       EventType `json:"type"`
	ProjectID  int       `json:"project_id,omitempty"`  // 0 when the record has no project
	EntityID   int       `json:"entity_id,omitempty"`   // ID of the changed record
	Timestamp  time.Time `json:"timestamp"`             // When the change happened
	SequenceID int64     `json:"sequence_id,omitempty"` // Assigned by the bus, monotonically increasing
}

// Subscription selects which events a subscriber receives
type Subscription struct {
	ProjectID int         // 0 = all projects, >0 = one project (plus project-less events)
	Types     []EventType // empty = every type
}

// Matches reports whether e should be delivered under s
func (s Subscription) Matches(e Event) bool {
	if s.ProjectID != 0 && e.ProjectID != 0 && e.ProjectID != s.ProjectID {
		return false
	}
	if len(s.Types) == 0 {
		return true
	}
	for _, t := range s.Types {
		if t == e.Type {
			return true
		}
	}
	return false
}
