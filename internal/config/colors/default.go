package colors

// Default returns the default color scheme (purple theme). The status
// and priority colors match the web timeline.
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#874BFD",

		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DropTarget:     "#5FD75F",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		Todo:       "#6B7280",
		InProgress: "#3B82F6",
		Done:       "#22C55E",
		Overdue:    "#FF0000",

		High:   "#EF4444",
		Medium: "#EAB308",
		Low:    "#22C55E",

		ErrorFg: "#FF0000",
	}
}
