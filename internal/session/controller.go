// Package session owns one play session of a game: the level list and
// difficulty filter, the progression machine of the current level, level
// clocks and the scheduled transitions between levels.
//
// The controller never reads the wall clock. Time only moves through Tick,
// which makes every transition reproducible in tests.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
)

// ErrNoLevels is returned when no playable level is left to load.
var ErrNoLevels = errors.New("session: no playable levels")

// Options configures a controller.
type Options struct {
	Tolerances content.Tolerances
	// AutoAdvance is the delay between completing a level and loading the next.
	AutoAdvance time.Duration
	// FeedbackCooldown rate-limits wrongAttempt events.
	FeedbackCooldown time.Duration
	// TimeLimit applies to levels that do not set their own; zero disables it.
	TimeLimit time.Duration
	// Cyclic wraps to the first level after the last instead of finishing.
	Cyclic bool
	Seed   int64
}

type scheduled struct {
	at     time.Duration
	action func()
}

// Controller drives one session.
type Controller struct {
	opts    Options
	all     []content.Level
	levels  []content.Level
	filter  content.Difficulty
	index   int
	level   content.Level
	plan    content.Plan
	machine *engine.Machine
	rng     *rand.Rand

	events   []Event
	pending  []scheduled
	now      time.Duration
	elapsed  time.Duration
	limit    time.Duration
	left     time.Duration
	lastWarn time.Duration
	warned   bool

	loaded      bool
	completed   int
	allComplete bool
	timedOut    bool
	paused      bool
}

// New creates a controller over levels. No level is loaded until LoadLevel
// or SetDifficultyFilter is called.
func New(levels []content.Level, opts Options) (*Controller, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	return &Controller{
		opts:    opts,
		all:     levels,
		levels:  levels,
		filter:  content.DifficultyAll,
		machine: engine.New(),
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

// LoadLevel begins the level at index within the filtered set.
func (c *Controller) LoadLevel(index int) error {
	if index < 0 || index >= len(c.levels) {
		return fmt.Errorf("session: level index %d out of range [0, %d)", index, len(c.levels))
	}
	lvl := c.levels[index]
	plan, err := lvl.Plan(c.opts.Tolerances, c.rng)
	if err != nil {
		return fmt.Errorf("session: level %q: %w", lvl.ID, err)
	}
	if err := c.machine.Begin(plan.Waypoints, plan.Options); err != nil {
		return fmt.Errorf("session: level %q: %w", lvl.ID, err)
	}

	c.index = index
	c.level = lvl
	c.plan = plan
	c.loaded = true
	c.pending = nil
	c.elapsed = 0
	c.warned = false
	c.allComplete = false
	c.timedOut = false
	c.limit = c.opts.TimeLimit
	if lvl.TimeLimit > 0 {
		c.limit = time.Duration(lvl.TimeLimit) * time.Second
	}
	c.left = c.limit
	c.emit(Event{Type: EventLevelLoaded, Cue: core.CueClick})
	return nil
}

// loadFrom loads the first playable level at or after start, rejecting
// invalid ones on the way.
func (c *Controller) loadFrom(start int, wrap bool) error {
	for k := 0; k < len(c.levels); k++ {
		i := start + k
		if i >= len(c.levels) {
			if !wrap {
				break
			}
			i %= len(c.levels)
		}
		err := c.LoadLevel(i)
		if err == nil {
			return nil
		}
		if !errors.Is(err, engine.ErrInvalidConfiguration) {
			return err
		}
		c.emitAt(i, Event{Type: EventLevelRejected, LevelID: c.levels[i].ID, Reason: err.Error()})
	}
	return ErrNoLevels
}

// Advance moves to the next level. At the last level it wraps to the first
// when wrap is set; otherwise it emits allComplete.
func (c *Controller) Advance(wrap bool) error {
	c.pending = nil
	next := c.index + 1
	if next >= len(c.levels) && !wrap {
		c.finishAll()
		return nil
	}
	if err := c.loadFrom(next%len(c.levels), wrap); err != nil {
		if errors.Is(err, ErrNoLevels) && !wrap {
			c.finishAll()
			return nil
		}
		return err
	}
	return nil
}

func (c *Controller) finishAll() {
	c.machine.Cancel()
	c.allComplete = true
	c.emit(Event{Type: EventAllComplete, Cue: core.CueLevelWin, Celebrate: true})
}

// SetDifficultyFilter restricts the level set to one difficulty ("all"
// selects everything), resets to the first level and loads it. A filter that
// matches nothing falls back to the full set.
func (c *Controller) SetDifficultyFilter(d content.Difficulty) error {
	filtered := content.Filter(c.all, d)
	if len(filtered) == 0 {
		filtered = c.all
	}
	c.filter = d
	c.levels = filtered
	c.index = 0
	return c.loadFrom(0, false)
}

// CycleDifficulty switches to the next filter in content.Difficulties.
func (c *Controller) CycleDifficulty() error {
	next := content.Difficulties[0]
	for i, d := range content.Difficulties {
		if d == c.filter {
			next = content.Difficulties[(i+1)%len(content.Difficulties)]
			break
		}
	}
	return c.SetDifficultyFilter(next)
}

// Restart reloads the current level.
func (c *Controller) Restart() error {
	if c.allComplete {
		return c.SetDifficultyFilter(c.filter)
	}
	return c.LoadLevel(c.index)
}

// Tick advances session time by dt: the level clock, the time limit and any
// scheduled transitions.
func (c *Controller) Tick(dt time.Duration) {
	if c.paused || !c.loaded || dt <= 0 {
		return
	}
	c.now += dt
	active := !c.machine.IsComplete() && !c.allComplete && !c.timedOut
	if active {
		c.elapsed += dt
	}
	if active && c.limit > 0 {
		c.left -= dt
		if c.left <= 0 {
			c.left = 0
			c.expire()
		}
	}

	for len(c.pending) > 0 {
		due := -1
		for i, p := range c.pending {
			if p.at <= c.now {
				due = i
				break
			}
		}
		if due < 0 {
			break
		}
		p := c.pending[due]
		c.pending = append(c.pending[:due], c.pending[due+1:]...)
		p.action()
	}
}

func (c *Controller) expire() {
	c.timedOut = true
	c.machine.Cancel()
	c.emit(Event{Type: EventTimeExpired, Cue: core.CueIncorrect})
	c.emit(Event{Type: EventLevelComplete, TimedOut: true})
	c.schedule(0, c.autoAdvance)
}

func (c *Controller) autoAdvance() {
	// errors surface as levelRejected events or allComplete
	_ = c.Advance(c.opts.Cyclic)
}

func (c *Controller) schedule(after time.Duration, action func()) {
	c.pending = append(c.pending, scheduled{at: c.now + after, action: action})
}

// Pause freezes clocks and discards the in-flight gesture.
func (c *Controller) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.machine.Cancel()
}

// Resume unfreezes clocks.
func (c *Controller) Resume() {
	c.paused = false
}

// TogglePause flips the paused state.
func (c *Controller) TogglePause() {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

func (c *Controller) blocked() bool {
	return c.paused || !c.loaded || c.allComplete || c.timedOut
}

// Start begins a gesture at a normalized point.
func (c *Controller) Start(p core.Point) engine.Outcome {
	if c.blocked() {
		return ignored()
	}
	before := c.machine.CompletedSlots()
	out := c.machine.AttemptStart(p)
	if out.Kind == engine.OutcomeStarted && c.machine.CompletedSlots() > before {
		c.emit(Event{Type: EventWaypointReached, Outcome: out.Kind, Waypoint: out.Waypoint, Cue: core.CueConnect})
		return out
	}
	c.handle(out)
	return out
}

// Grab picks a label from the tray.
func (c *Controller) Grab(label string) engine.Outcome {
	if c.blocked() {
		return ignored()
	}
	out := c.machine.Grab(label)
	c.handle(out)
	return out
}

// Track records a gesture sample.
func (c *Controller) Track(p core.Point) {
	if c.blocked() {
		return
	}
	c.machine.Track(p)
}

// Reach tries to connect the gesture to the next waypoint at p.
func (c *Controller) Reach(p core.Point) engine.Outcome {
	if c.blocked() {
		return ignored()
	}
	out := c.machine.AttemptAdvance(p)
	c.handle(out)
	return out
}

// Place drops label at p.
func (c *Controller) Place(label string, p core.Point) engine.Outcome {
	if c.blocked() {
		return ignored()
	}
	out := c.machine.AttemptPlace(label, p)
	c.handle(out)
	return out
}

// Select answers a choice level.
func (c *Controller) Select(label string) engine.Outcome {
	if c.blocked() {
		return ignored()
	}
	out := c.machine.AttemptSelect(label)
	c.handle(out)
	return out
}

// Cancel abandons the in-flight gesture.
func (c *Controller) Cancel() engine.Outcome {
	return c.machine.Cancel()
}

func ignored() engine.Outcome {
	return engine.Outcome{Kind: engine.OutcomeIgnored, Slot: -1}
}

func (c *Controller) handle(out engine.Outcome) {
	switch out.Kind {
	case engine.OutcomeReached:
		c.emit(Event{Type: EventWaypointReached, Outcome: out.Kind, Waypoint: out.Waypoint, Cue: core.CueConnect})
	case engine.OutcomePlaced:
		c.emit(Event{Type: EventWaypointReached, Outcome: out.Kind, Waypoint: out.Waypoint, Label: out.Label, Cue: core.CueSuccess})
	case engine.OutcomeComplete:
		c.emit(Event{Type: EventWaypointReached, Outcome: out.Kind, Waypoint: out.Waypoint, Label: out.Label, Cue: core.CueConnect})
		c.completed++
		c.emit(Event{Type: EventLevelComplete, Cue: core.CueLevelWin, Celebrate: true})
		c.schedule(c.opts.AutoAdvance, c.autoAdvance)
	default:
		if !out.Wrong() {
			return
		}
		if c.warned && c.now-c.lastWarn < c.opts.FeedbackCooldown {
			return
		}
		c.warned = true
		c.lastWarn = c.now
		c.emit(Event{Type: EventWrongAttempt, Outcome: out.Kind, Waypoint: out.Waypoint, Expected: out.Expected, Label: out.Label, Cue: core.CueIncorrect})
	}
}

func (c *Controller) emit(ev Event) {
	c.emitAt(c.index, ev)
}

// emitAt records ev against the level at index, which need not be the
// loaded one.
func (c *Controller) emitAt(index int, ev Event) {
	ev.Level = index
	if ev.LevelID == "" && c.loaded {
		ev.LevelID = c.level.ID
	}
	c.events = append(c.events, ev)
}

// Events drains the events emitted since the last call.
func (c *Controller) Events() []Event {
	evs := c.events
	c.events = nil
	return evs
}

// Level returns the current level.
func (c *Controller) Level() content.Level { return c.level }

// Plan returns the engine plan of the current level.
func (c *Controller) Plan() content.Plan { return c.plan }

// Machine exposes the progression machine for read-only queries.
func (c *Controller) Machine() *engine.Machine { return c.machine }

// State returns the machine's session state.
func (c *Controller) State() engine.State { return c.machine.State() }

// Index returns the current level's position in the filtered set.
func (c *Controller) Index() int { return c.index }

// Count returns the size of the filtered set.
func (c *Controller) Count() int { return len(c.levels) }

// Levels returns the filtered level set.
func (c *Controller) Levels() []content.Level { return c.levels }

// Filter returns the active difficulty filter.
func (c *Controller) Filter() content.Difficulty { return c.filter }

// Elapsed returns the time spent on the current level.
func (c *Controller) Elapsed() time.Duration { return c.elapsed }

// Remaining returns the time left on the level clock, zero when untimed.
func (c *Controller) Remaining() time.Duration {
	if c.limit <= 0 {
		return 0
	}
	return c.left
}

// Completed returns the number of levels finished this session.
func (c *Controller) Completed() int { return c.completed }

// LevelComplete reports whether the current level is finished.
func (c *Controller) LevelComplete() bool { return c.machine.IsComplete() || c.timedOut }

// TimedOut reports whether the current level ended on its clock.
func (c *Controller) TimedOut() bool { return c.timedOut }

// AllComplete reports whether every level has been finished.
func (c *Controller) AllComplete() bool { return c.allComplete }

// Paused reports whether the session is paused.
func (c *Controller) Paused() bool { return c.paused }

// Snapshot summarizes the session for the platform.
func (c *Controller) Snapshot() core.GameState {
	return core.GameState{
		Score:       c.completed,
		Level:       c.index + 1,
		LevelCount:  len(c.levels),
		LevelName:   c.level.DisplayName(),
		Difficulty:  string(c.filter),
		Phase:       c.machine.Phase().String(),
		Complete:    c.LevelComplete(),
		AllComplete: c.allComplete,
		Paused:      c.paused,
		Elapsed:     c.elapsed,
		Remaining:   c.Remaining(),
	}
}

// FormatClock renders a duration as m:ss.
func FormatClock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
