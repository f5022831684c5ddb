// Package engine implements the pointer-target progression state machine
// shared by every game: ordered paths (connect the dots, tracing), unordered
// placement (labelling) and choice selection (number patterns).
//
// The machine is pure. It never reads clocks or devices; callers feed it
// normalized points and read back Outcome values.
package engine

import (
	"errors"

	"github.com/vovakirdan/learn-arcade/internal/core"
)

// ErrInvalidConfiguration is returned by Begin when a level cannot be played.
var ErrInvalidConfiguration = errors.New("invalid level configuration")

// Mode selects the progression rule.
type Mode int

const (
	// ModeOrdered requires waypoints in sequence; each gesture starts on the
	// current anchor and connects onward.
	ModeOrdered Mode = iota
	// ModeUnordered accepts labelled placements in any order.
	ModeUnordered
	// ModeChoice is a placement round with distractor labels in the pool.
	ModeChoice
)

func (m Mode) String() string {
	switch m {
	case ModeOrdered:
		return "ordered"
	case ModeUnordered:
		return "unordered"
	case ModeChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Phase is the machine's lifecycle phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingStart
	PhaseConnecting
	PhaseDragging
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingStart:
		return "awaiting-start"
	case PhaseConnecting:
		return "connecting"
	case PhaseDragging:
		return "dragging"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies the result of an attempt.
type OutcomeKind int

const (
	// OutcomeIgnored means the attempt is not valid in the current phase.
	OutcomeIgnored OutcomeKind = iota
	OutcomeStarted
	OutcomeGrabbed
	OutcomeReached
	OutcomePlaced
	OutcomeComplete
	OutcomeCancelled
	OutcomeWrongStart
	OutcomeWrongTarget
	OutcomeWrongPlacement
	OutcomeNoTarget
	// OutcomeTooShort means the target was hit before the gesture recorded
	// enough samples.
	OutcomeTooShort
)

var outcomeNames = [...]string{
	OutcomeIgnored:        "ignored",
	OutcomeStarted:        "started",
	OutcomeGrabbed:        "grabbed",
	OutcomeReached:        "reached",
	OutcomePlaced:         "placed",
	OutcomeComplete:       "complete",
	OutcomeCancelled:      "cancelled",
	OutcomeWrongStart:     "wrong-start",
	OutcomeWrongTarget:    "wrong-target",
	OutcomeWrongPlacement: "wrong-placement",
	OutcomeNoTarget:       "no-target",
	OutcomeTooShort:       "too-short",
}

func (k OutcomeKind) String() string {
	if int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return "unknown"
}

// Outcome is the result of a single attempt.
type Outcome struct {
	Kind OutcomeKind
	// Slot is the order-slot the attempt affected, or -1.
	Slot int
	// Waypoint is the waypoint that was hit, if any.
	Waypoint *core.Waypoint
	// Expected is what the machine wanted instead, on failures.
	Expected *core.Waypoint
	Label    string
}

// Success reports whether the attempt advanced progression.
func (o Outcome) Success() bool {
	switch o.Kind {
	case OutcomeStarted, OutcomeGrabbed, OutcomeReached, OutcomePlaced, OutcomeComplete:
		return true
	}
	return false
}

// Wrong reports whether the attempt was a mistake worth feedback.
func (o Outcome) Wrong() bool {
	switch o.Kind {
	case OutcomeWrongStart, OutcomeWrongTarget, OutcomeWrongPlacement, OutcomeNoTarget:
		return true
	}
	return false
}

// Gesture is the in-flight pointer interaction.
type Gesture struct {
	Active  bool       `json:"active"`
	Origin  core.Point `json:"origin"`
	Current core.Point `json:"current"`
	Label   string     `json:"label,omitempty"`
	Samples int        `json:"samples"`
}

// Options configures Begin.
type Options struct {
	Mode Mode
	// Closed makes an ordered path return to its first waypoint to finish.
	Closed bool
	// Distractors are extra grabbable labels that match no waypoint.
	Distractors []string
}

// State is a snapshot of the session state.
type State struct {
	Mode     Mode    `json:"-"`
	Phase    Phase   `json:"-"`
	Expected int     `json:"expected"`
	Total    int     `json:"total"`
	Gesture  Gesture `json:"gesture"`
	// Completed lists waypoint IDs per completed order-slot.
	Completed  []string `json:"completed"`
	Placed     []string `json:"placed"`
	Pool       []string `json:"pool"`
	IsComplete bool     `json:"isComplete"`
}
