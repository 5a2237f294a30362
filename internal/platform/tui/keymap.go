package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-galaxy/internal/core"
)

// KeyMap defines the key bindings for the galaxy viewer.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Jump       key.Binding
	Reverse    key.Binding
	Pause      key.Binding
	Redraw     key.Binding
	Help       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Jump, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Jump},
		{k.Reverse, k.Pause, k.Redraw},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next level"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "prev level"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "jump"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reverse"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "redraw"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a viewer action.
// Screenshot has no viewer action and maps to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Next):
		return core.ActionNextLevel
	case key.Matches(msg, k.Prev):
		return core.ActionPrevLevel
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Reverse):
		return core.ActionReverse
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Redraw):
		return core.ActionRedraw
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
