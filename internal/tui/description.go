package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderers are cached by width since building one is slow
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderDescription renders a markdown description. It falls back to the
// raw text if rendering fails.
func RenderDescription(description string, width int, st Styles) string {
	if strings.TrimSpace(description) == "" {
		return st.Subtle.Render("No description")
	}

	renderer, err := getRenderer(max(width, 20))
	if err != nil {
		return description
	}
	out, err := renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(out)
}
