package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tablero/internal/gantt"
	"github.com/thenoetrevino/tablero/internal/models"
)

const (
	labelWidth    = 24
	minTrackWidth = 28
	barGlyph      = "█"
	trackGlyph    = "·"
)

// RenderGantt draws one row per task against a week header. The bar track
// takes whatever width is left after the task labels.
func RenderGantt(layout gantt.Layout, st Styles, width int) string {
	if layout.Empty() {
		return st.Subtle.Render("No tasks to display")
	}

	track := max(minTrackWidth, width-labelWidth-1)
	numWeeks := len(layout.Weeks)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(st.Title.Render(weekHeader(layout, track)))
	b.WriteString("\n")

	for _, ct := range layout.ChartTasks {
		left := int(math.Round(ct.LeftFraction(numWeeks) * float64(track)))
		size := max(1, int(math.Round(ct.WidthFraction(numWeeks)*float64(track))))
		left = min(left, track-1)
		size = min(size, track-left)

		bar := lipgloss.NewStyle().
			Foreground(st.PriorityColor(ct.Task.Priority)).
			Render(strings.Repeat(barGlyph, size))
		row := st.Subtle.Render(strings.Repeat(trackGlyph, left)) + bar +
			st.Subtle.Render(strings.Repeat(trackGlyph, track-left-size))

		b.WriteString(taskLabel(ct, st))
		b.WriteString(" ")
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString(renderLegend(st))
	return b.String()
}

// weekHeader spreads the week start dates over the track
func weekHeader(layout gantt.Layout, track int) string {
	cell := track / max(1, len(layout.Weeks))
	var b strings.Builder
	for _, w := range layout.Weeks {
		label := w.Format("Jan 2")
		if cell <= len(label) {
			label = w.Format("1/2")
		}
		b.WriteString(fit(label, cell))
	}
	return b.String()
}

func taskLabel(ct gantt.ChartTask, st Styles) string {
	name := ct.Task.Title
	if ct.Assignee != nil {
		name += " @" + firstName(ct.Assignee.Name)
	}
	marker := lipgloss.NewStyle().Foreground(st.StatusColor(ct.Task.Status)).Render("▌")
	return marker + fit(name, labelWidth-1)
}

func renderLegend(st Styles) string {
	parts := make([]string, 0, len(models.Priorities))
	for _, entry := range gantt.Legend() {
		swatch := lipgloss.NewStyle().
			Foreground(st.PriorityColor(models.Priority(entry.Label))).
			Render(barGlyph + barGlyph)
		parts = append(parts, fmt.Sprintf("%s %s", swatch, entry.Label))
	}
	return strings.Join(parts, "   ")
}

// fit pads or truncates s to exactly n terminal cells. Wide glyphs count
// for the cells they occupy.
func fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w <= n {
		return s + strings.Repeat(" ", n-w)
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > n-1 {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	b.WriteString("…")
	return b.String() + strings.Repeat(" ", n-1-used)
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}
