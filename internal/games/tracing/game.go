// Package tracing implements letter and number tracing: each stroke starts
// on its green dot and is released on its red dot after a real drag.
package tracing

import (
	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

// Game implements the tracing game.
type Game struct {
	*board.Base

	levelID string
	trail   []core.Point   // live stroke
	strokes [][]core.Point // finished strokes of the current level
}

// New creates a new tracing game.
func New() *Game {
	g := &Game{Base: board.NewBase("tracing", "Tracing", content.KindOrderedPath, 0)}
	g.CompleteText = func(l content.Level) string {
		if l.Character != "" {
			return "Great tracing! You wrote " + l.Character
		}
		return "Great tracing!"
	}
	g.WrongText = "Finish the stroke on the red dot"
	g.Hint = "green → red"
	return g
}

func init() {
	registry.Register("tracing", func() registry.Game {
		return New()
	})
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.Base.Reset(cfg)
	g.sync()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.Controls(in) {
		for _, ev := range g.Pointers(in) {
			g.pointer(ev)
		}
	}
	res := g.Finish()
	g.sync()
	return res
}

// sync drops drawn strokes when another level has been loaded.
func (g *Game) sync() {
	s := g.Session()
	if s == nil {
		return
	}
	if id := s.Level().ID; id != g.levelID || s.Machine().CompletedSlots() == 0 {
		g.levelID = id
		g.trail = nil
		g.strokes = nil
	}
}

func (g *Game) pointer(ev core.PointerEvent) {
	s := g.Session()
	m := s.Machine()
	p := g.Field().Map(ev)

	switch ev.Kind {
	case core.PointerDown:
		if out := s.Start(p); out.Kind == engine.OutcomeStarted {
			g.trail = []core.Point{p}
		}
	case core.PointerMove:
		if m.Phase() != engine.PhaseConnecting {
			return
		}
		s.Track(p)
		g.trail = append(g.trail, p)
	case core.PointerUp:
		if m.Phase() != engine.PhaseConnecting {
			return
		}
		s.Track(p)
		g.trail = append(g.trail, p)
		out := s.Reach(p)
		switch {
		case out.Kind == engine.OutcomeReached || out.Kind == engine.OutcomeComplete:
			g.strokes = append(g.strokes, g.trail)
		case out.Kind == engine.OutcomeTooShort:
			g.Notify(core.Notice{Type: "tooShort", Message: "Trace along the whole line", Cue: core.CueIncorrect})
		}
		if m.Phase() == engine.PhaseConnecting {
			s.Cancel()
		}
		g.trail = nil
	case core.PointerLeave:
		s.Cancel()
		g.trail = nil
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if !g.DrawFrame(dst) {
		return
	}

	s := g.Session()
	m := s.Machine()
	lvl := s.Level()
	f := g.Field()
	box := f.Box()
	dst.DrawBox(core.NewRect(box.X-1, box.Y-1, box.W+2, box.H+2), core.ColorGray)

	if lvl.Character != "" {
		dst.DrawTextColored(box.X+1, box.Y, "Trace: "+lvl.Character, core.ColorBlue)
	}

	// lines never overwrite, so ink goes down before the guides
	for _, tr := range g.strokes {
		f.Polyline(dst, tr, '█', core.ColorGreen)
	}
	if len(g.trail) > 0 {
		x, y := f.Cell(g.trail[0])
		dst.SetColored(x, y, '▓', core.ColorYellow)
		f.Polyline(dst, g.trail, '▓', core.ColorYellow)
	}
	for _, st := range lvl.Strokes {
		guide := st.Guide
		if len(guide) < 2 {
			guide = []core.Point{st.Start, st.End}
		}
		f.Polyline(dst, guide, '·', core.ColorGray)
	}

	// current stroke markers
	if !m.IsComplete() {
		stroke := m.CompletedSlots() / 2
		if stroke < len(lvl.Strokes) {
			st := lvl.Strokes[stroke]
			x, y := f.Cell(st.Start)
			dst.SetColored(x, y, '●', core.ColorBrightGreen)
			x, y = f.Cell(st.End)
			dst.SetColored(x, y, '●', core.ColorRed)
		}
	}

	g.DrawOverlay(dst)
}
