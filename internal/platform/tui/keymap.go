package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logic-arcade/internal/core"
)

// switchKeys maps direct-toggle keys to switch indexes.
const switchKeys = "123456789abcdefg"

// KeyMapper translates Bubble Tea key messages to actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action on the play screen.
// For ActionSwitch the returned index names the switch; it is -1 otherwise.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, index int) {
	k := msg.String()

	switch k {
	case "ctrl+c", "q":
		return core.ActionQuit, -1
	case "left":
		return core.ActionLeft, -1
	case "right", "tab":
		return core.ActionRight, -1
	case " ", "x":
		return core.ActionToggle, -1
	case "enter":
		return core.ActionConfirm, -1
	case "r":
		return core.ActionReset, -1
	case "h", "?":
		return core.ActionHint, -1
	case "esc", "backspace":
		return core.ActionBack, -1
	}

	if len(k) == 1 {
		for i := 0; i < len(switchKeys); i++ {
			if switchKeys[i] == k[0] {
				return core.ActionSwitch, i
			}
		}
	}
	return core.ActionNone, -1
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, index := km.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionSwitch:
		frame.Press(index)
	default:
		frame.Set(action)
	}
	return action == core.ActionQuit
}

// SwitchKey returns the key that toggles switch i directly.
func SwitchKey(i int) string {
	if i < 0 || i >= len(switchKeys) {
		return ""
	}
	return string(switchKeys[i])
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionStars
	MenuActionNextPack
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "*", "t":
		return MenuActionStars
	case "tab", "p":
		return MenuActionNextPack
	}
	return MenuActionNone
}

// PlayKeyMap lists the play screen bindings for the help bar.
type PlayKeyMap struct {
	Switch key.Binding
	Cursor key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Hint   key.Binding
	Next   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Toggle, k.Reset, k.Hint, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Switch, k.Cursor, k.Toggle},
		{k.Reset, k.Hint, k.Next},
		{k.Back, k.Quit},
	}
}

// DefaultPlayKeyMap returns the bindings MapKey understands.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Switch: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9 a-g", "flip switch"),
		),
		Cursor: key.NewBinding(
			key.WithKeys("left", "right", "tab"),
			key.WithHelp("←/→", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "flip selected"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "hint"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next level"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "levels"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
