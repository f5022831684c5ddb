package engine

import (
	"fmt"
	"slices"
	"sort"

	"github.com/vovakirdan/learn-arcade/internal/core"
)

// Machine tracks progression through one level.
type Machine struct {
	mode      Mode
	closed    bool
	waypoints []core.Waypoint
	// slots maps order-slots to waypoint indices. A closed path repeats
	// waypoint 0 as its final slot.
	slots     []int
	completed []int

	placed      map[string]bool
	placedOrder []string
	pool        []string

	phase   Phase
	gesture Gesture
}

// New returns a machine in the Idle phase with no level.
func New() *Machine {
	return &Machine{phase: PhaseIdle}
}

// Begin resets all state for a new level. It fails with
// ErrInvalidConfiguration when the waypoints cannot form a playable level;
// the previous state is kept in that case.
func (m *Machine) Begin(waypoints []core.Waypoint, opts Options) error {
	if len(waypoints) == 0 {
		return fmt.Errorf("%w: no waypoints", ErrInvalidConfiguration)
	}

	ws := slices.Clone(waypoints)
	seen := make(map[string]bool, len(ws))
	for i := range ws {
		w := &ws[i]
		if !w.Pos.IsFinite() {
			return fmt.Errorf("%w: waypoint %q has a non-finite position", ErrInvalidConfiguration, w.ID)
		}
		if w.Tolerance <= 0 {
			return fmt.Errorf("%w: waypoint %q has tolerance %v", ErrInvalidConfiguration, w.ID, w.Tolerance)
		}
		if opts.Mode != ModeOrdered {
			if w.Label == "" {
				w.Label = w.ID
			}
			if seen[w.Label] {
				return fmt.Errorf("%w: duplicate label %q", ErrInvalidConfiguration, w.Label)
			}
			seen[w.Label] = true
		}
	}
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Order < ws[j].Order })

	m.mode = opts.Mode
	m.closed = opts.Closed && opts.Mode == ModeOrdered && len(ws) > 1
	m.waypoints = ws
	m.slots = make([]int, len(ws), len(ws)+1)
	for i := range ws {
		m.slots[i] = i
	}
	if m.closed {
		m.slots = append(m.slots, 0)
	}
	m.completed = m.completed[:0]
	m.placed = make(map[string]bool, len(ws))
	m.placedOrder = nil
	m.pool = nil
	m.gesture = Gesture{}

	if m.mode == ModeOrdered {
		m.phase = PhaseAwaitingStart
		return nil
	}
	for _, w := range ws {
		m.pool = append(m.pool, w.Label)
	}
	for _, d := range opts.Distractors {
		if !slices.Contains(m.pool, d) {
			m.pool = append(m.pool, d)
		}
	}
	m.phase = PhaseIdle
	return nil
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Mode returns the progression rule of the loaded level.
func (m *Machine) Mode() Mode {
	return m.mode
}

// IsComplete reports whether the level has been finished.
func (m *Machine) IsComplete() bool {
	return m.phase == PhaseComplete
}

// Waypoints returns the level's waypoints in order.
func (m *Machine) Waypoints() []core.Waypoint {
	return m.waypoints
}

// SlotWaypoint returns the waypoint behind an order-slot.
func (m *Machine) SlotWaypoint(slot int) (core.Waypoint, bool) {
	if slot < 0 || slot >= len(m.slots) {
		return core.Waypoint{}, false
	}
	return m.waypoints[m.slots[slot]], true
}

// CompletedSlots returns the number of completed order-slots.
func (m *Machine) CompletedSlots() int {
	return len(m.completed)
}

// Placed reports whether a label has been placed.
func (m *Machine) Placed(label string) bool {
	return m.placed[label]
}

// Gesture returns the in-flight gesture.
func (m *Machine) Gesture() Gesture {
	return m.gesture
}

// Anchor returns the waypoint a new ordered gesture must start on.
func (m *Machine) Anchor() (core.Waypoint, bool) {
	if m.mode != ModeOrdered || len(m.slots) == 0 || m.phase == PhaseComplete {
		return core.Waypoint{}, false
	}
	slot, _ := m.startAnchor()
	return m.SlotWaypoint(slot)
}

// Next returns the waypoint the current ordered gesture must reach.
func (m *Machine) Next() (core.Waypoint, bool) {
	if m.mode != ModeOrdered || m.phase == PhaseComplete {
		return core.Waypoint{}, false
	}
	return m.SlotWaypoint(len(m.completed))
}

// startAnchor returns the slot a gesture must start on and whether starting
// there completes that slot.
func (m *Machine) startAnchor() (int, bool) {
	if len(m.completed) == 0 {
		return 0, true
	}
	last := m.completed[len(m.completed)-1]
	if m.waypoints[m.slots[last]].Lift {
		return len(m.completed), true
	}
	return last, false
}

func (m *Machine) hitAny(p core.Point) *core.Waypoint {
	if i := core.NearestWaypoint(p, m.waypoints, 0); i >= 0 {
		w := m.waypoints[i]
		return &w
	}
	return nil
}

// AttemptStart begins a gesture at p. In ordered mode p must hit the start
// anchor. In placement modes p grabs the unplaced label whose origin it hits.
func (m *Machine) AttemptStart(p core.Point) Outcome {
	if m.phase != PhaseIdle && m.phase != PhaseAwaitingStart {
		return Outcome{Kind: OutcomeIgnored, Slot: -1}
	}
	if len(m.slots) == 0 {
		return Outcome{Kind: OutcomeIgnored, Slot: -1}
	}
	if m.mode != ModeOrdered {
		return m.grabAt(p)
	}

	slot, mark := m.startAnchor()
	w := m.waypoints[m.slots[slot]]
	if !core.WithinTolerance(p, w) {
		return Outcome{Kind: OutcomeWrongStart, Slot: slot, Waypoint: m.hitAny(p), Expected: &w}
	}
	m.gesture = Gesture{Active: true, Origin: w.Pos, Current: p, Samples: 1}
	if mark {
		m.completed = append(m.completed, slot)
		if len(m.completed) == len(m.slots) {
			m.finish()
			return Outcome{Kind: OutcomeComplete, Slot: slot, Waypoint: &w}
		}
	}
	m.phase = PhaseConnecting
	return Outcome{Kind: OutcomeStarted, Slot: slot, Waypoint: &w}
}

func (m *Machine) grabAt(p core.Point) Outcome {
	best, bestDist := -1, 0.0
	for i, w := range m.waypoints {
		if w.Origin == nil || m.placed[w.Label] {
			continue
		}
		d := core.Distance(p, *w.Origin)
		if d < w.Tolerance && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Outcome{Kind: OutcomeWrongStart, Slot: -1}
	}
	out := m.Grab(m.waypoints[best].Label)
	m.gesture.Origin = *m.waypoints[best].Origin
	m.gesture.Current = p
	return out
}

// Grab starts dragging a label from the pool.
func (m *Machine) Grab(label string) Outcome {
	if m.mode == ModeOrdered || (m.phase != PhaseIdle && m.phase != PhaseAwaitingStart) {
		return Outcome{Kind: OutcomeIgnored, Slot: -1, Label: label}
	}
	if !slices.Contains(m.pool, label) || m.placed[label] {
		return Outcome{Kind: OutcomeIgnored, Slot: -1, Label: label}
	}
	m.gesture = Gesture{Active: true, Label: label, Samples: 1}
	m.phase = PhaseDragging
	return Outcome{Kind: OutcomeGrabbed, Slot: -1, Label: label}
}

// Track records a gesture sample at p.
func (m *Machine) Track(p core.Point) {
	if !m.gesture.Active {
		return
	}
	m.gesture.Current = p
	m.gesture.Samples++
}

// AttemptAdvance tries to connect the active gesture to the next expected
// waypoint. State is unchanged on failure.
func (m *Machine) AttemptAdvance(p core.Point) Outcome {
	if m.phase != PhaseConnecting {
		return Outcome{Kind: OutcomeIgnored, Slot: -1}
	}
	slot := len(m.completed)
	w := m.waypoints[m.slots[slot]]
	m.gesture.Current = p

	if !core.WithinTolerance(p, w) {
		return Outcome{Kind: OutcomeWrongTarget, Slot: slot, Waypoint: m.hitAny(p), Expected: &w}
	}
	if w.MinSamples > 0 && m.gesture.Samples <= w.MinSamples {
		return Outcome{Kind: OutcomeTooShort, Slot: slot, Waypoint: &w, Expected: &w}
	}

	m.completed = append(m.completed, slot)
	if len(m.completed) == len(m.slots) {
		m.finish()
		return Outcome{Kind: OutcomeComplete, Slot: slot, Waypoint: &w}
	}
	if w.Lift {
		m.gesture = Gesture{}
		m.phase = PhaseAwaitingStart
	} else {
		m.gesture.Origin = w.Pos
	}
	return Outcome{Kind: OutcomeReached, Slot: slot, Waypoint: &w}
}

// AttemptPlace drops label at p onto the nearest waypoint in tolerance.
// Failed drops keep the machine Dragging and the label unplaced.
func (m *Machine) AttemptPlace(label string, p core.Point) Outcome {
	if m.phase != PhaseDragging || m.placed[label] {
		return Outcome{Kind: OutcomeIgnored, Slot: -1, Label: label}
	}
	m.gesture.Current = p
	i := core.NearestWaypoint(p, m.waypoints, 0)
	if i < 0 {
		return Outcome{Kind: OutcomeNoTarget, Slot: -1, Label: label}
	}
	w := m.waypoints[i]
	if w.Label != label || m.placed[w.Label] {
		return Outcome{Kind: OutcomeWrongPlacement, Slot: i, Waypoint: &w, Label: label}
	}
	return m.place(i, label)
}

// AttemptSelect answers a choice round with label, without a drag.
func (m *Machine) AttemptSelect(label string) Outcome {
	if m.mode != ModeChoice || m.phase == PhaseComplete {
		return Outcome{Kind: OutcomeIgnored, Slot: -1, Label: label}
	}
	for i, w := range m.waypoints {
		if m.placed[w.Label] {
			continue
		}
		if w.Label != label {
			return Outcome{Kind: OutcomeWrongPlacement, Slot: i, Waypoint: &w, Expected: &w, Label: label}
		}
		return m.place(i, label)
	}
	return Outcome{Kind: OutcomeIgnored, Slot: -1, Label: label}
}

func (m *Machine) place(i int, label string) Outcome {
	w := m.waypoints[i]
	m.placed[label] = true
	m.placedOrder = append(m.placedOrder, label)
	m.gesture = Gesture{}
	if len(m.placedOrder) == len(m.waypoints) {
		m.finish()
		return Outcome{Kind: OutcomeComplete, Slot: i, Waypoint: &w, Label: label}
	}
	m.phase = PhaseIdle
	return Outcome{Kind: OutcomePlaced, Slot: i, Waypoint: &w, Label: label}
}

func (m *Machine) finish() {
	m.phase = PhaseComplete
	m.gesture = Gesture{}
}

// Cancel abandons the in-flight gesture and returns to Idle. Completed
// waypoints are kept. It is a no-op when nothing is in progress.
func (m *Machine) Cancel() Outcome {
	switch m.phase {
	case PhaseConnecting, PhaseDragging:
		label := m.gesture.Label
		m.gesture = Gesture{}
		m.phase = PhaseIdle
		return Outcome{Kind: OutcomeCancelled, Slot: -1, Label: label}
	}
	return Outcome{Kind: OutcomeIgnored, Slot: -1}
}

// State returns a snapshot of the session state.
func (m *Machine) State() State {
	st := State{
		Mode:       m.mode,
		Phase:      m.phase,
		Expected:   -1,
		Total:      len(m.slots),
		Gesture:    m.gesture,
		Placed:     slices.Clone(m.placedOrder),
		IsComplete: m.phase == PhaseComplete,
	}
	if m.mode == ModeOrdered && m.phase != PhaseComplete {
		st.Expected = len(m.completed)
	}
	for _, slot := range m.completed {
		st.Completed = append(st.Completed, m.waypoints[m.slots[slot]].ID)
	}
	for _, l := range m.pool {
		if !m.placed[l] {
			st.Pool = append(st.Pool, l)
		}
	}
	return st
}
