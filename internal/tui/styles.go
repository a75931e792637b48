// Package tui renders the board and the timeline for the terminal and runs
// the interactive board viewer.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tablero/internal/config/colors"
	"github.com/thenoetrevino/tablero/internal/models"
)

// Styles are the lipgloss styles derived from a color scheme
type Styles struct {
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style
	Error    lipgloss.Style
	Column   lipgloss.Style
	Selected lipgloss.Style
	Target   lipgloss.Style
	Card     lipgloss.Style
	Active   lipgloss.Style
	Overdue  lipgloss.Style

	scheme colors.ColorScheme
}

// NewStyles builds the styles for cs. Missing colors come from its preset.
func NewStyles(cs colors.ColorScheme) Styles {
	cs.ApplyDefaults()

	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(cs.ColumnBorder)).
		Padding(0, 1)
	card := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(cs.CardBorder)).
		Padding(0, 1)

	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cs.Title)),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color(cs.Subtle)).Italic(true),
		Normal:   lipgloss.NewStyle().Foreground(lipgloss.Color(cs.Normal)),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(cs.ErrorFg)),
		Column:   column,
		Selected: column.BorderForeground(lipgloss.Color(cs.Accent)),
		Target:   column.BorderForeground(lipgloss.Color(cs.DropTarget)),
		Card:     card,
		Active:   card.BorderForeground(lipgloss.Color(cs.SelectedBorder)),
		Overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color(cs.Overdue)),
		scheme:   cs,
	}
}

// PriorityColor returns the scheme color for p
func (s Styles) PriorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityHigh:
		return lipgloss.Color(s.scheme.High)
	case models.PriorityMedium:
		return lipgloss.Color(s.scheme.Medium)
	case models.PriorityLow:
		return lipgloss.Color(s.scheme.Low)
	}
	return lipgloss.Color(s.scheme.Subtle)
}

// StatusColor returns the scheme color for st
func (s Styles) StatusColor(st models.Status) lipgloss.Color {
	switch st {
	case models.StatusTodo:
		return lipgloss.Color(s.scheme.Todo)
	case models.StatusInProgress:
		return lipgloss.Color(s.scheme.InProgress)
	case models.StatusDone:
		return lipgloss.Color(s.scheme.Done)
	}
	return lipgloss.Color(s.scheme.Subtle)
}
