package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// Board
	ColumnBorder   string `yaml:"column_border"`
	CardBorder     string `yaml:"card_border"`
	SelectedBorder string `yaml:"selected_border"`
	DropTarget     string `yaml:"drop_target"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Task status bars
	Todo       string `yaml:"todo"`
	InProgress string `yaml:"in_progress"`
	Done       string `yaml:"done"`
	Overdue    string `yaml:"overdue"`

	// Priority badges
	High   string `yaml:"high"`
	Medium string `yaml:"medium"`
	Low    string `yaml:"low"`

	ErrorFg string `yaml:"error_fg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	c.fill(preset, false)
}

// MergeFrom overrides c with every non-empty value of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	c.fill(&other, true)
}

// fill copies src into c. Without overwrite only empty fields change;
// with overwrite only non-empty src fields are copied.
func (c *ColorScheme) fill(src *ColorScheme, overwrite bool) {
	pairs := []struct {
		dst *string
		src string
	}{
		{&c.Accent, src.Accent},
		{&c.ColumnBorder, src.ColumnBorder},
		{&c.CardBorder, src.CardBorder},
		{&c.SelectedBorder, src.SelectedBorder},
		{&c.DropTarget, src.DropTarget},
		{&c.Title, src.Title},
		{&c.Subtle, src.Subtle},
		{&c.Normal, src.Normal},
		{&c.Todo, src.Todo},
		{&c.InProgress, src.InProgress},
		{&c.Done, src.Done},
		{&c.Overdue, src.Overdue},
		{&c.High, src.High},
		{&c.Medium, src.Medium},
		{&c.Low, src.Low},
		{&c.ErrorFg, src.ErrorFg},
	}
	for _, p := range pairs {
		if overwrite {
			if p.src != "" {
				*p.dst = p.src
			}
		} else if *p.dst == "" {
			*p.dst = p.src
		}
	}
}
