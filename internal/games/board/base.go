package board

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"time"

	"github.com/vovakirdan/learn-arcade/internal/config"
	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/session"
)

// Screen layout.
const (
	MinWidth  = 40
	MinHeight = 16
	hudRows   = 2
)

// Base carries what every learning game shares: content, the session
// controller, layout and feedback effects. Games embed it and add their own
// pointer rules and field rendering.
type Base struct {
	id    string
	title string
	kind  content.Kind

	doc      content.Document
	source   string
	settings config.GameSettings
	sess     *session.Controller
	err      error

	// per-instance start options, preferred over the package setup
	presetDiff  content.Difficulty
	presetLevel string

	cfg      core.RuntimeConfig
	rng      *rand.Rand
	w, h     int
	tooSmall bool
	trayRows int

	banner   Banner
	confetti Confetti
	cursor   Cursor
	notices  []core.Notice

	// CompleteText builds the banner shown when a level is finished.
	CompleteText func(content.Level) string
	// WrongText is shown on a rate-limited wrong attempt.
	WrongText string
	// Hint is appended to the key help in the footer.
	Hint string
}

// NewBase creates the shared part of a game. trayRows reserves rows below
// the field for a label or answer tray.
func NewBase(id, title string, kind content.Kind, trayRows int) *Base {
	return &Base{
		id:        id,
		title:     title,
		kind:      kind,
		trayRows:  trayRows,
		WrongText: "Not quite, try again!",
		CompleteText: func(l content.Level) string {
			return "Well done! " + l.DisplayName() + " complete"
		},
	}
}

// ID returns the game identifier.
func (b *Base) ID() string {
	return b.id
}

// Title returns the display name.
func (b *Base) Title() string {
	return b.title
}

// Kind returns the level kind this game plays.
func (b *Base) Kind() content.Kind {
	return b.kind
}

// Reset loads content and settings and starts a new session.
func (b *Base) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b.cfg = cfg
	b.rng = rand.New(rand.NewSource(seed))
	b.w, b.h = cfg.ScreenW, cfg.ScreenH
	b.tooSmall = b.w < MinWidth || b.h < MinHeight
	b.banner = Banner{}
	b.confetti.Clear()
	b.cursor = Cursor{}
	b.notices = nil
	b.sess = nil
	b.err = nil

	l, all, diff, start := currentSetup()
	if b.presetDiff != "" {
		diff = b.presetDiff
	}
	if b.presetLevel != "" {
		start = b.presetLevel
	}
	b.settings = all.Game(b.id)

	doc, from, err := l.Load(context.Background(), b.id)
	if err != nil {
		b.err = err
		return
	}
	b.doc = doc.WithKind(b.kind)
	b.source = from

	sess, err := session.New(b.doc.Scenarios, session.Options{
		Tolerances:       b.settings.Tolerances(),
		AutoAdvance:      b.settings.AutoAdvanceDelay(),
		FeedbackCooldown: b.settings.Cooldown(),
		TimeLimit:        b.settings.LevelTimeLimit(),
		Cyclic:           b.settings.Cyclic,
		Seed:             seed,
	})
	if err != nil {
		b.err = err
		return
	}
	if err := sess.SetDifficultyFilter(diff); err != nil {
		b.err = err
		return
	}
	b.sess = sess
	if start != "" {
		b.JumpTo(start)
	}
	b.drain()
}

// Preset sets the difficulty filter and first level used by the next Reset
// of this instance. Empty values fall back to the package setup.
func (b *Base) Preset(d content.Difficulty, level string) {
	b.presetDiff = d
	b.presetLevel = level
}

// JumpTo loads the level with the given ID or 1-based number in the
// filtered set.
func (b *Base) JumpTo(level string) bool {
	if b.sess == nil {
		return false
	}
	for i, l := range b.sess.Levels() {
		if l.ID == level {
			return b.sess.LoadLevel(i) == nil
		}
	}
	if n, err := strconv.Atoi(level); err == nil && n >= 1 && n <= b.sess.Count() {
		return b.sess.LoadLevel(n-1) == nil
	}
	return false
}

// SetDifficulty switches the difficulty filter of the running session.
func (b *Base) SetDifficulty(d content.Difficulty) error {
	if b.sess == nil {
		return b.err
	}
	err := b.sess.SetDifficultyFilter(d)
	b.drain()
	return err
}

// Session returns the session controller, nil when content failed to load.
func (b *Base) Session() *session.Controller {
	return b.sess
}

// Document returns the loaded content document.
func (b *Base) Document() content.Document {
	return b.doc
}

// Source describes where the content came from.
func (b *Base) Source() string {
	return b.source
}

// Err returns the content load error, if any.
func (b *Base) Err() error {
	return b.err
}

// Settings returns the game's tunables.
func (b *Base) Settings() config.GameSettings {
	return b.settings
}

// Rand returns the game's seeded random source.
func (b *Base) Rand() *rand.Rand {
	return b.rng
}

// TooSmall reports whether the screen cannot fit the game.
func (b *Base) TooSmall() bool {
	return b.tooSmall
}

// Resize adapts the layout to a new screen size without touching progress.
func (b *Base) Resize(w, h int) {
	b.w, b.h = w, h
	b.cfg.ScreenW, b.cfg.ScreenH = w, h
	b.tooSmall = w < MinWidth || h < MinHeight
	b.cursor = Cursor{}
}

// Field returns the playfield for the current screen size.
func (b *Base) Field() Field {
	return Field{
		Area:   core.NewRect(2, hudRows+1, b.w-4, b.h-hudRows-3-b.trayRows),
		Aspect: CellAspect,
	}
}

// Tray returns the rows reserved below the field.
func (b *Base) Tray() core.Rect {
	return core.NewRect(1, b.h-1-b.trayRows, b.w-2, b.trayRows)
}

// PlayArea is the region the keyboard cursor can reach: field and tray.
func (b *Base) PlayArea() core.Rect {
	return core.NewRect(1, hudRows+1, b.w-2, b.h-hudRows-2)
}

// Pointers returns the frame's pointer events followed by those produced by
// the keyboard cursor.
func (b *Base) Pointers(in core.InputFrame) []core.PointerEvent {
	for _, ev := range in.Pointer {
		b.cursor.Track(ev)
	}
	evs := slices.Clone(in.Pointer)
	return append(evs, b.cursor.Keys(in, b.PlayArea())...)
}

// Controls applies the keys every game shares. It reports whether the frame
// should reach the game's own input handling.
func (b *Base) Controls(in core.InputFrame) bool {
	if b.sess == nil || b.tooSmall {
		return false
	}
	if in.Has(core.ActionPause) {
		b.sess.TogglePause()
		b.Notify(core.Notice{Type: "pause", Cue: core.CueClick})
	}
	if b.sess.Paused() {
		return false
	}

	var err error
	switch {
	case in.Has(core.ActionRestart):
		err = b.sess.Restart()
	case in.Has(core.ActionNext):
		err = b.sess.Advance(true)
	case in.Has(core.ActionDifficulty):
		err = b.sess.CycleDifficulty()
	case in.Has(core.ActionConfirm) && b.sess.AllComplete():
		err = b.sess.Restart()
	default:
		return !b.sess.AllComplete() && !b.sess.LevelComplete()
	}
	if err != nil {
		b.banner.Show(err.Error(), core.ColorRed, 3*time.Second)
	}
	return false
}

// Notify queues a game-specific notice for this step.
func (b *Base) Notify(n core.Notice) {
	b.notices = append(b.notices, n)
}

// Finish advances clocks and effects by one tick and returns the step result.
func (b *Base) Finish() core.StepResult {
	dt := b.cfg.TickDuration()
	if b.sess != nil {
		b.sess.Tick(dt)
		b.drain()
	}
	b.banner.Tick(dt)
	b.confetti.Tick(dt)

	res := core.StepResult{State: b.State(), Notices: b.notices}
	b.notices = nil
	return res
}

func (b *Base) drain() {
	if b.sess == nil {
		return
	}
	for _, ev := range b.sess.Events() {
		n := core.Notice{Type: string(ev.Type), Cue: ev.Cue, Celebrate: ev.Celebrate}
		switch ev.Type {
		case session.EventLevelLoaded:
			b.confetti.Clear()
			n.Message = b.sess.Level().DisplayName()
			b.banner.Show(n.Message, core.ColorCyan, 2*time.Second)
		case session.EventWrongAttempt:
			n.Message = b.WrongText
			b.banner.Show(n.Message, core.ColorRed, time.Second)
		case session.EventLevelComplete:
			if ev.TimedOut {
				n.Message = "Time's up!"
				b.banner.Show(n.Message, core.ColorYellow, 2*time.Second)
				break
			}
			n.Message = b.CompleteText(b.sess.Level())
			b.banner.Show(n.Message, core.ColorBrightGreen, b.settings.AutoAdvanceDelay())
			b.confetti.Burst(b.rng, b.Field().Box(), 40)
		case session.EventAllComplete:
			n.Message = "All levels complete! Press Enter to play again"
			b.banner.Show(n.Message, core.ColorBrightYellow, time.Hour)
			b.confetti.Burst(b.rng, b.Field().Box(), 80)
		case session.EventLevelRejected:
			n.Message = "Skipped level " + ev.LevelID + ": " + ev.Reason
			b.banner.Show("Skipped a broken level", core.ColorOrange, 2*time.Second)
		}
		b.notices = append(b.notices, n)
	}
}

// State returns the session summary.
func (b *Base) State() core.GameState {
	if b.sess == nil {
		return core.GameState{}
	}
	return b.sess.Snapshot()
}

// DrawFrame draws the HUD and footer. It reports whether the game should
// draw its field.
func (b *Base) DrawFrame(dst *core.Screen) bool {
	if b.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need at least %dx%d", MinWidth, MinHeight), core.ColorGray)
		return false
	}
	if b.sess == nil {
		dst.DrawTextCentered(dst.Height()/2-1, b.title, core.ColorCyan)
		msg := "No content"
		if b.err != nil {
			msg = b.err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2+1, msg, core.ColorRed)
		return false
	}

	st := b.sess.Snapshot()
	title := b.doc.GameTitle
	if title == "" {
		title = b.title
	}
	hud := fmt.Sprintf(" %s │ %s (%d/%d) │ %s │ ★ %d", title, st.LevelName, st.Level, st.LevelCount, st.Difficulty, st.Score)
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)
	clock := "⏱ " + session.FormatClock(st.Elapsed)
	if st.Remaining > 0 || b.sess.TimedOut() {
		clock = "⌛ " + session.FormatClock(st.Remaining)
	}
	dst.DrawTextColored(b.w-len([]rune(clock))-1, 0, clock, core.ColorYellow)
	for x := range b.w {
		dst.Set(x, 1, '─')
	}

	switch {
	case b.banner.Visible():
		dst.DrawTextCentered(2, b.banner.Text, b.banner.Color)
	case b.doc.Instructions != "":
		dst.DrawTextCentered(2, b.doc.Instructions, core.ColorGray)
	}

	help := "p pause  r restart  n next  d difficulty  q quit"
	if b.Hint != "" {
		help = b.Hint + "  " + help
	}
	dst.DrawTextColored(1, b.h-1, help, core.ColorGray)
	return true
}

// DrawOverlay draws confetti and the pause or finish box above the field.
func (b *Base) DrawOverlay(dst *core.Screen) {
	b.confetti.Draw(dst)
	b.cursor.Draw(dst)
	if b.sess == nil {
		return
	}
	switch {
	case b.sess.Paused():
		Overlay(dst, "Paused", "Press P to continue")
	case b.sess.AllComplete():
		Overlay(dst, "All levels complete!", fmt.Sprintf("%d finished · Enter to play again", b.sess.Completed()))
	}
}

// Overlay draws a centered box with a title and a subtitle.
func Overlay(dst *core.Screen, line1, line2 string) {
	n := max(len([]rune(line1)), len([]rune(line2)))
	boxW, boxH := n+4, 5
	x := (dst.Width() - boxW) / 2
	y := (dst.Height() - boxH) / 2
	for yy := y; yy < y+boxH; yy++ {
		for xx := x; xx < x+boxW; xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(core.NewRect(x, y, boxW, boxH), core.ColorWhite)
	dst.DrawTextCentered(y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(y+3, line2, core.ColorGray)
}
