package models

import (
	"strings"
	"time"
)

// NotificationType is the delivery channel of a notification
type NotificationType string

const (
	NotificationEmail NotificationType = "email"
	NotificationSMS   NotificationType = "sms"
	NotificationPush  NotificationType = "push"
)

// Valid reports whether t is a known channel
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationEmail, NotificationSMS, NotificationPush:
		return true
	}
	return false
}

// NotificationStatus tracks whether the recipient has seen a notification
type NotificationStatus string

const (
	NotificationUnread   NotificationStatus = "unread"
	NotificationRead     NotificationStatus = "read"
	NotificationArchived NotificationStatus = "archived"
)

// Valid reports whether s is a known status
func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationUnread, NotificationRead, NotificationArchived:
		return true
	}
	return false
}

func (s NotificationStatus) rank() int {
	switch s {
	case NotificationUnread:
		return 0
	case NotificationRead:
		return 1
	case NotificationArchived:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving from s to next keeps the status
// moving forward. Staying in place is allowed.
func (s NotificationStatus) CanTransitionTo(next NotificationStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() >= s.rank()
}

// ParseNotificationStatus maps user input to a NotificationStatus
func ParseNotificationStatus(raw string) (NotificationStatus, error) {
	s := NotificationStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidNotificationStatus
	}
	return s, nil
}

// ParseNotificationType maps user input to a NotificationType
func ParseNotificationType(raw string) (NotificationType, error) {
	t := NotificationType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", ErrInvalidNotificationType
	}
	return t, nil
}

// Notification is a message addressed to a single user
type Notification struct {
	ID          int                `json:"id"`
	RecipientID int                `json:"recipient_id"`
	Subject     string             `json:"subject"`
	Message     string             `json:"message"`
	Type        NotificationType   `json:"type"`
	Status      NotificationStatus `json:"status"`
	SentAt      time.Time          `json:"sent_at"`
}

// GetID lets output formatters print just the ID in quiet mode
func (n *Notification) GetID() int {
	return n.ID
}

// NotificationPatch carries a partial update. Nil fields are left untouched.
type NotificationPatch struct {
	RecipientID *int                `json:"recipient_id,omitempty"`
	Subject     *string             `json:"subject,omitempty"`
	Message     *string             `json:"message,omitempty"`
	Type        *NotificationType   `json:"type,omitempty"`
	Status      *NotificationStatus `json:"status,omitempty"`
	SentAt      *time.Time          `json:"sent_at,omitempty"`
}

// Apply merges the patch into n
func (p NotificationPatch) Apply(n *Notification) {
	if p.RecipientID != nil {
		n.RecipientID = *p.RecipientID
	}
	if p.Subject != nil {
		n.Subject = *p.Subject
	}
	if p.Message != nil {
		n.Message = *p.Message
	}
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.SentAt != nil {
		n.SentAt = *p.SentAt
	}
}

// NotificationCounts is the per-status breakdown of a notification list
type NotificationCounts struct {
	Unread   int `json:"unread"`
	Read     int `json:"read"`
	Archived int `json:"archived"`
}

// CountNotifications tallies notifications by status
func CountNotifications(list []Notification) NotificationCounts {
	var c NotificationCounts
	for _, n := range list {
		switch n.Status {
		case NotificationUnread:
			c.Unread++
		case NotificationRead:
			c.Read++
		case NotificationArchived:
			c.Archived++
		}
	}
	return c
}
