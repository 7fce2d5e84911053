package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, k - menu navigation
	ActionDown           // Down arrow, j - menu navigation
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Space - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
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

// PointerPhase marks where a pointer sample sits in a drag gesture.
type PointerPhase int

const (
	PointerDown PointerPhase = iota // Button pressed or touch started
	PointerMove                     // Pointer moved
	PointerUp                       // Button released or touch ended
)

// PointerSample is one pointer event in world coordinates.
type PointerSample struct {
	Phase PointerPhase
	X, Y  float64
	At    time.Time
}

// Pos returns the sample position as a vector.
func (p PointerSample) Pos() Vec {
	return Vec{X: p.X, Y: p.Y}
}

// InputFrame represents the input collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer holds pointer samples in arrival order.
	Pointer []PointerSample
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

// AddPointer appends a pointer sample to the frame.
func (f *InputFrame) AddPointer(p PointerSample) {
	f.Pointer = append(f.Pointer, p)
}

// Clear resets all actions and pointer samples for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}
