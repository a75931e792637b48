package models

import "time"

// Comment represents a note left on a task
type Comment struct {
	ID        int       `json:"id"`
	TaskID    int       `json:"task_id"`
	AuthorID  int       `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Author is filled in on reads; nil when the author was deleted
	Author *User `json:"author,omitempty"`
}

// GetID lets output formatters print just the ID in quiet mode
func (c *Comment) GetID() int {
	return c.ID
}
