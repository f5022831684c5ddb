package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // Up arrow, K - move selection up
	ActionDown              // Down arrow, J - move selection down
	ActionLeft              // Left arrow, H - move selection left
	ActionRight             // Right arrow, L - move selection right
	ActionConfirm           // Enter, Space - confirm selection
	ActionBack              // Escape, B - back to menu
	ActionRestart           // R - restart current level
	ActionNext              // N - skip to the next level
	ActionDifficulty        // D - cycle the difficulty filter
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P - pause/unpause
	ActionChoice1           // 1
	ActionChoice2           // 2
	ActionChoice3           // 3
	ActionChoice4           // 4
)

var actionNames = map[Action]string{
	ActionNone:       "None",
	ActionUp:         "Up",
	ActionDown:       "Down",
	ActionLeft:       "Left",
	ActionRight:      "Right",
	ActionConfirm:    "Confirm",
	ActionBack:       "Back",
	ActionRestart:    "Restart",
	ActionNext:       "Next",
	ActionDifficulty: "Difficulty",
	ActionQuit:       "Quit",
	ActionPause:      "Pause",
	ActionChoice1:    "Choice1",
	ActionChoice2:    "Choice2",
	ActionChoice3:    "Choice3",
	ActionChoice4:    "Choice4",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ChoiceIndex returns the zero-based index for ActionChoice1..4, or -1.
func (a Action) ChoiceIndex() int {
	if a >= ActionChoice1 && a <= ActionChoice4 {
		return int(a - ActionChoice1)
	}
	return -1
}

// PointerKind is the phase of a pointer (mouse or touch) event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// ParsePointerKind is the inverse of PointerKind.String.
func ParsePointerKind(s string) (PointerKind, bool) {
	switch s {
	case "down", "start":
		return PointerDown, true
	case "move":
		return PointerMove, true
	case "up", "end":
		return PointerUp, true
	case "leave", "cancel":
		return PointerLeave, true
	}
	return 0, false
}

// PointerEvent is a raw pointer sample. Pos is in the input source's raw
// units (terminal cells for the TUI, CSS pixels for web clients).
// Container, when set, tells the game where its media was rendered; when nil
// the game uses its own screen layout.
type PointerEvent struct {
	Kind      PointerKind
	Pos       Point
	Container *Container
}

// InputFrame holds everything that happened during one simulation tick:
// triggered actions and pointer events in arrival order.
type InputFrame struct {
	Actions map[Action]bool
	Pointer []PointerEvent
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
	return f.Actions[a]
}

// AddPointer appends a pointer event.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return len(f.Pointer) == 0
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}
