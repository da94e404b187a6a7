package core

// Action represents a semantic command, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionRotate           // R - rotate the figure under the pointer
	ActionTransmute        // T - transmute the figure under the pointer
	ActionUpgrade          // U - open the upgrade picker
	ActionConfirm          // Enter
	ActionBack             // Esc, B
	ActionRestart          // Ctrl+R - restart the level
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotate:
		return "Rotate"
	case ActionTransmute:
		return "Transmute"
	case ActionUpgrade:
		return "Upgrade"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Pointer is the pointer state for one tick, already converted to world
// coordinates by the presentation layer.
type Pointer struct {
	Pos      Vec2
	Origin   Vec2 // where the button went down
	Pressed  bool // button went down this tick
	Held     bool // button is down
	Released bool // button went up this tick
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
	Pointer Pointer
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets one-shot state for the next frame.
// The pointer position and held flag carry over; edges do not.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer.Pressed = false
	f.Pointer.Released = false
}
