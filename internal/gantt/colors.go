package gantt

import "github.com/thenoetrevino/tablero/internal/models"

// Fallback color for unknown priorities and statuses
const FallbackColor = "#6B7280"

var priorityColors = map[models.Priority]string{
	models.PriorityHigh:   "#EF4444",
	models.PriorityMedium: "#EAB308",
	models.PriorityLow:    "#22C55E",
}

var statusColors = map[models.Status]string{
	models.StatusTodo:       "#6B7280",
	models.StatusInProgress: "#3B82F6",
	models.StatusDone:       "#22C55E",
}

// PriorityColor is the bar fill for a task of priority p
func PriorityColor(p models.Priority) string {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return FallbackColor
}

// StatusColor is the accent drawn next to a task row for status s
func StatusColor(s models.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return FallbackColor
}

// PriorityVariant maps a priority to the badge variant used by card views
func PriorityVariant(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "error"
	case models.PriorityMedium:
		return "warning"
	case models.PriorityLow:
		return "success"
	}
	return "default"
}

// LegendEntry is one swatch of the chart legend
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Legend lists the priority swatches from most to least urgent
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		entries = append(entries, LegendEntry{
			Label: string(p),
			Color: PriorityColor(p),
		})
	}
	return entries
}
