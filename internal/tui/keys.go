package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/thenoetrevino/tablero/internal/config"
)

// KeyMap holds the board viewer bindings
type KeyMap struct {
	PrevColumn    key.Binding
	NextColumn    key.Binding
	PrevTask      key.Binding
	NextTask      key.Binding
	PickUp        key.Binding
	Drop          key.Binding
	CancelDrag    key.Binding
	MoveTaskLeft  key.Binding
	MoveTaskRight key.Binding
	ViewTask      key.Binding
	Refresh       key.Binding
	ShowHelp      key.Binding
	Quit          key.Binding
}

// NewKeyMap builds bindings from the configured keys. Arrow keys always
// navigate alongside the configured letters.
func NewKeyMap(km config.KeyMappings) KeyMap {
	return KeyMap{
		PrevColumn:    key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn, "prev column")),
		NextColumn:    key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn, "next column")),
		PrevTask:      key.NewBinding(key.WithKeys(km.PrevTask, "up"), key.WithHelp(km.PrevTask, "prev task")),
		NextTask:      key.NewBinding(key.WithKeys(km.NextTask, "down"), key.WithHelp(km.NextTask, "next task")),
		PickUp:        key.NewBinding(key.WithKeys(km.PickUp), key.WithHelp(displayKey(km.PickUp), "pick up")),
		Drop:          key.NewBinding(key.WithKeys(km.Drop), key.WithHelp(km.Drop, "drop")),
		CancelDrag:    key.NewBinding(key.WithKeys(km.CancelDrag), key.WithHelp(km.CancelDrag, "cancel")),
		MoveTaskLeft:  key.NewBinding(key.WithKeys(km.MoveTaskLeft), key.WithHelp(km.MoveTaskLeft, "move left")),
		MoveTaskRight: key.NewBinding(key.WithKeys(km.MoveTaskRight), key.WithHelp(km.MoveTaskRight, "move right")),
		ViewTask:      key.NewBinding(key.WithKeys(km.ViewTask), key.WithHelp(km.ViewTask, "details")),
		Refresh:       key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "refresh")),
		ShowHelp:      key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:          key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.Drop, k.ViewTask, k.ShowHelp, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevTask, k.NextTask},
		{k.PickUp, k.Drop, k.CancelDrag},
		{k.MoveTaskLeft, k.MoveTaskRight, k.ViewTask},
		{k.Refresh, k.ShowHelp, k.Quit},
	}
}
