package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// GameKeyMap defines the key bindings while a game is running.
type GameKeyMap struct {
	Jump       key.Binding
	Confirm    key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Confirm, k.Restart, k.Pause},
		{k.Back, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space", "jump"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "retry"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuKeyMap defines the key bindings of the game picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea input messages to game actions.
type KeyMapper struct {
	Game GameKeyMap
	Menu MenuKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Game: DefaultGameKeyMap(),
		Menu: DefaultMenuKeyMap(),
	}
}

// MapKey translates a key message to a game action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.Game.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.Game.Jump):
		return core.ActionJump
	case key.Matches(msg, km.Game.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, km.Game.Restart):
		return core.ActionRestart
	case key.Matches(msg, km.Game.Pause):
		return core.ActionPause
	case key.Matches(msg, km.Game.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MapKeyToFrame records the action of a key in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return action == core.ActionQuit
}

// MapMouseToFrame records a left button press as a pointer action at the
// center of the pressed cell. Other mouse events are ignored.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, width, height int, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	if width <= 0 || height <= 0 {
		return false
	}
	frame.SetPointer(
		(float64(msg.X)+0.5)/float64(width),
		(float64(msg.Y)+0.5)/float64(height),
	)
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, km.Menu.Quit):
		return MenuActionQuit
	case key.Matches(msg, km.Menu.Up):
		return MenuActionUp
	case key.Matches(msg, km.Menu.Down):
		return MenuActionDown
	case key.Matches(msg, km.Menu.Select):
		return MenuActionSelect
	case key.Matches(msg, km.Menu.Scores):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
