package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tablero/internal/kanban"
	"github.com/thenoetrevino/tablero/internal/models"
)

const (
	minColumnWidth = 24
	columnGap      = 1
)

// BoardView selects what the board highlights. Negative indexes select
// nothing.
type BoardView struct {
	Width          int
	SelectedColumn int
	SelectedTask   int
	Dragging       *models.Task
	DropTarget     models.Status
	Now            time.Time
}

// StaticView highlights nothing and fits width
func StaticView(width int, now time.Time) BoardView {
	return BoardView{Width: width, SelectedColumn: -1, SelectedTask: -1, Now: now}
}

// RenderBoard draws the columns side by side
func RenderBoard(columns []kanban.Column, st Styles, view BoardView) string {
	if len(columns) == 0 {
		return st.Subtle.Render("No columns")
	}

	width := columnWidth(view.Width, len(columns))
	rendered := make([]string, 0, len(columns))
	for i, col := range columns {
		rendered = append(rendered, renderColumn(col, i, width, st, view))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func columnWidth(total, n int) int {
	if total <= 0 {
		return minColumnWidth
	}
	return max(minColumnWidth, total/n-columnGap)
}

func renderColumn(col kanban.Column, idx, width int, st Styles, view BoardView) string {
	selected := idx == view.SelectedColumn

	var b strings.Builder
	b.WriteString(st.Title.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Tasks))))
	b.WriteString("\n")

	if len(col.Tasks) == 0 {
		b.WriteString(st.Subtle.Render("No tasks"))
	}
	cardWidth := width - 4
	for i, task := range col.Tasks {
		active := selected && i == view.SelectedTask
		b.WriteString(renderCard(task, cardWidth, active, st, view))
		if i < len(col.Tasks)-1 {
			b.WriteString("\n")
		}
	}

	style := st.Column
	switch {
	case view.Dragging != nil && col.Status == view.DropTarget:
		style = st.Target
	case selected:
		style = st.Selected
	}
	return style.Width(width).MarginRight(columnGap).Render(b.String())
}

func renderCard(task models.Task, width int, active bool, st Styles, view BoardView) string {
	title := task.Title
	if view.Dragging != nil && view.Dragging.ID == task.ID {
		title = "» " + title
	}

	priority := lipgloss.NewStyle().Foreground(st.PriorityColor(task.Priority)).Render(string(task.Priority))
	meta := fmt.Sprintf("#%d  %s", task.ID, priority)
	if !task.DueDate.IsZero() {
		due := task.DueDate.Format("Jan 2")
		if !view.Now.IsZero() && task.IsOverdue(view.Now) {
			due = st.Overdue.Render(due + " overdue")
		}
		meta += "  " + due
	}
	if task.Progress > 0 {
		meta += fmt.Sprintf("  %d%%", task.Progress)
	}

	style := st.Card
	if active {
		style = st.Active
	}
	return style.Width(max(width, 8)).Render(st.Normal.Render(title) + "\n" + meta)
}
