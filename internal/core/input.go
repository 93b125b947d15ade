package core

// Action represents a semantic player action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move switch cursor left
	ActionRight          // D, Right arrow - move switch cursor right
	ActionUp             // W, Up arrow - menu up
	ActionDown           // S, Down arrow - menu down
	ActionToggle         // Space - toggle the switch under the cursor
	ActionSwitch         // 1-9 - toggle a switch directly (see InputFrame.Switch)
	ActionConfirm        // Enter - confirm selection / next level
	ActionReset          // R - restart the level
	ActionHint           // H - show or hide the hint
	ActionBack           // B, Escape - go back to the level list
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionToggle:
		return "Toggle"
	case ActionSwitch:
		return "Switch"
	case ActionConfirm:
		return "Confirm"
	case ActionReset:
		return "Reset"
	case ActionHint:
		return "Hint"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two frames.
type InputFrame struct {
	Actions map[Action]bool
	// Switches lists direct switch presses in arrival order.
	Switches []int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Press records a direct press of switch index.
func (f *InputFrame) Press(index int) {
	f.Set(ActionSwitch)
	f.Switches = append(f.Switches, index)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Switches = f.Switches[:0]
}
