package core

// Action represents a semantic viewer action, abstracted from physical key presses.
// Terminal and window hosts map their own key events onto these.
type Action int

const (
	ActionNone      Action = iota
	ActionNextLevel        // Right, L, Tab - switch to the next palette level
	ActionPrevLevel        // Left, H - switch to the previous palette level
	ActionJump             // Space - play the warp jump animation
	ActionReverse          // R - flip drift direction
	ActionPause            // P - stop/resume the idle loop
	ActionRedraw           // D - regenerate the star field
	ActionHelp             // ? - toggle full help
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionJump:
		return "Jump"
	case ActionReverse:
		return "Reverse"
	case ActionPause:
		return "Pause"
	case ActionRedraw:
		return "Redraw"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two host ticks.
type InputFrame struct {
	// Actions keeps trigger order so that e.g. two level presses both apply.
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, x := range f.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
