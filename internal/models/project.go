package models

import (
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCancelled ProjectStatus = "cancelled"
)

// Valid reports whether s is a known project status
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

// ParseProjectStatus maps user input to a ProjectStatus
func ParseProjectStatus(raw string) (ProjectStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	s := ProjectStatus(normalized)
	if !s.Valid() {
		return "", ErrInvalidProjectStatus
	}
	return s, nil
}

// Project groups tasks. It does not hold its tasks; tasks point at it.
type Project struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	DueDate     time.Time     `json:"due_date"`
	Progress    int           `json:"progress"`
	TeamMembers []string      `json:"team_members"`
	CreatedAt   time.Time     `json:"created_at"`
}

// GetID lets output formatters print just the ID in quiet mode
func (p *Project) GetID() int {
	return p.ID
}

// ProjectPatch carries a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	Progress    *int           `json:"progress,omitempty"`
	TeamMembers *[]string      `json:"team_members,omitempty"`
}

// Apply merges the patch into p
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	if pp.DueDate != nil {
		p.DueDate = *pp.DueDate
	}
	if pp.Progress != nil {
		p.Progress = *pp.Progress
	}
	if pp.TeamMembers != nil {
		p.TeamMembers = *pp.TeamMembers
	}
}

// ProjectStats summarizes every project for the dashboard
type ProjectStats struct {
	TotalProjects     int `json:"total_projects"`
	ActiveProjects    int `json:"active_projects"`
	CompletedProjects int `json:"completed_projects"`
	AverageProgress   int `json:"average_progress"`
}
