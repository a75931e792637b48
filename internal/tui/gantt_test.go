package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tablero/internal/config/colors"
	"github.com/thenoetrevino/tablero/internal/gantt"
	"github.com/thenoetrevino/tablero/internal/models"
)

func TestRenderGantt_Empty(t *testing.T) {
	st := NewStyles(*colors.Default())

	out := RenderGantt(gantt.ComputeLayout(nil, nil), st, 80)

	assert.Equal(t, "No tasks to display", out)
}

func TestRenderGantt_RowsAndLegend(t *testing.T) {
	st := NewStyles(*colors.Default())
	users := []models.User{{ID: 7, Name: "Ana Lopez"}}
	tasks := sampleTasks()
	tasks[1].AssigneeID = &users[0].ID

	out := RenderGantt(gantt.ComputeLayout(tasks, users), st, 100)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// header + one row per task + legend
	require.Len(t, lines, 1+len(tasks)+1)
	assert.Contains(t, lines[0], "Dec 31")
	assert.Contains(t, lines[2], "API @Ana")
	for _, p := range models.Priorities {
		assert.Contains(t, lines[len(lines)-1], string(p))
	}
	for _, row := range lines[1 : len(lines)-1] {
		assert.Contains(t, row, barGlyph)
	}
}

func TestRenderGantt_BarsStayInsideTrack(t *testing.T) {
	st := NewStyles(*colors.Monochrome())
	layout := gantt.ComputeLayout(sampleTasks(), nil)

	out := RenderGantt(layout, st, 0)

	for _, row := range strings.Split(out, "\n")[1:4] {
		cells := strings.Count(row, barGlyph) + strings.Count(row, trackGlyph)
		assert.Equal(t, minTrackWidth, cells)
	}
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc  ", fit("abc", 5))
	assert.Equal(t, "abcd…", fit("abcdefgh", 5))
	assert.Equal(t, "…", fit("abc", 1))
	assert.Equal(t, "", fit("abc", 0))
}

func TestFit_WideGlyphs(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"日本", 6, "日本  "},
		{"日本語タスク", 6, "日本… "},
		{"日本語", 2, "… "},
		{"a日本", 4, "a日…"},
	}
	for _, tc := range cases {
		got := fit(tc.in, tc.n)
		assert.Equal(t, tc.want, got, "fit(%q, %d)", tc.in, tc.n)
		assert.Equal(t, tc.n, lipgloss.Width(got))
	}
}

func TestRenderGantt_WideTitlesKeepTrackAligned(t *testing.T) {
	layout := gantt.ComputeLayout([]models.Task{
		{ID: 1, Title: "Plain title", Status: models.StatusTodo, Priority: models.PriorityLow,
			CreatedAt: date(2024, 1, 1), DueDate: date(2024, 1, 5)},
		{ID: 2, Title: "デザインレビューと仕様確認", Status: models.StatusTodo, Priority: models.PriorityLow,
			CreatedAt: date(2024, 1, 1), DueDate: date(2024, 1, 5)},
	}, nil)

	out := RenderGantt(layout, NewStyles(*colors.Default()), 80)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, lipgloss.Width(lines[1]), lipgloss.Width(lines[2]))
}

func TestRenderDescription(t *testing.T) {
	st := NewStyles(*colors.Default())

	assert.Equal(t, "No description", RenderDescription("  ", 40, st))
	assert.Contains(t, RenderDescription("# Plan\n\nship **it**", 40, st), "ship")
}
