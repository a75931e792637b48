package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		ColumnBorder:   "#FFFFFF",
		CardBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DropTarget:     "#D0D0D0",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		Todo:       "#585858",
		InProgress: "#A8A8A8",
		Done:       "#FFFFFF",
		Overdue:    "#FFFFFF",

		High:   "#FFFFFF",
		Medium: "#A8A8A8",
		Low:    "#585858",

		ErrorFg: "#FFFFFF",
	}
}
