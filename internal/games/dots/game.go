// Package dots implements connect-the-dots: press on the current dot, drag
// over the next one to connect it, and close the shape back on dot 1.
package dots

import (
	"strconv"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

// Game implements the connect-the-dots game.
type Game struct {
	*board.Base
}

// New creates a new connect-the-dots game.
func New() *Game {
	g := &Game{Base: board.NewBase("dots", "Connect the Dots", content.KindOrderedPath, 0)}
	g.CompleteText = func(l content.Level) string {
		return "You drew a " + l.DisplayName() + "!"
	}
	g.Hint = "drag dot to dot"
	return g
}

func init() {
	registry.Register("dots", func() registry.Game {
		return New()
	})
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.Controls(in) {
		for _, ev := range g.Pointers(in) {
			g.pointer(ev)
		}
	}
	return g.Finish()
}

func (g *Game) pointer(ev core.PointerEvent) {
	s := g.Session()
	m := s.Machine()
	p := g.Field().Map(ev)

	switch ev.Kind {
	case core.PointerDown:
		s.Start(p)
	case core.PointerMove:
		if m.Phase() != engine.PhaseConnecting {
			return
		}
		s.Track(p)
		// only the expected dot connects on move; others are judged on release
		if next, ok := m.Next(); ok && core.WithinTolerance(p, next) {
			s.Reach(p)
		}
	case core.PointerUp:
		if m.Phase() != engine.PhaseConnecting {
			return
		}
		s.Track(p)
		if g.overOtherDot(p) {
			s.Reach(p)
		}
		if m.Phase() == engine.PhaseConnecting {
			s.Cancel()
		}
	case core.PointerLeave:
		s.Cancel()
	}
}

// overOtherDot reports whether p is on a dot other than the one the line
// currently starts from.
func (g *Game) overOtherDot(p core.Point) bool {
	m := g.Session().Machine()
	ws := m.Waypoints()
	i := core.NearestWaypoint(p, ws, 0)
	return i >= 0 && ws[i].Pos != m.Gesture().Origin
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if !g.DrawFrame(dst) {
		return
	}

	s := g.Session()
	m := s.Machine()
	f := g.Field()
	box := f.Box()
	dst.DrawBox(core.NewRect(box.X-1, box.Y-1, box.W+2, box.H+2), core.ColorGray)

	lineColor := core.ColorGreen
	if m.IsComplete() {
		lineColor = core.ColorBrightGreen
	}
	done := m.CompletedSlots()
	for i := 1; i < done; i++ {
		a, _ := m.SlotWaypoint(i - 1)
		b, _ := m.SlotWaypoint(i)
		f.Line(dst, a.Pos, b.Pos, '•', lineColor)
	}

	if gst := m.Gesture(); gst.Active {
		f.Line(dst, gst.Origin, gst.Current, '·', core.ColorYellow)
	}

	next, hasNext := m.Next()
	anchor, hasAnchor := m.Anchor()
	connected := make(map[string]bool, done)
	for _, id := range m.State().Completed {
		connected[id] = true
	}
	for i, w := range m.Waypoints() {
		color := core.ColorWhite
		switch {
		case hasAnchor && w.ID == anchor.ID && m.Phase() != engine.PhaseConnecting:
			color = core.ColorCyan
		case hasNext && w.ID == next.ID:
			color = core.ColorYellow
		case connected[w.ID]:
			color = core.ColorGreen
		}
		x, y := f.Cell(w.Pos)
		dst.SetColored(x, y, '●', color)
		dst.DrawTextColored(x+1, y, strconv.Itoa(i+1), color)
	}

	if m.IsComplete() {
		lvl := s.Level()
		name := lvl.DisplayName()
		if lvl.Image != "" {
			name = lvl.Image + " " + name
		}
		f.Text(dst, core.Pt(50, 50), name, core.ColorBrightYellow)
	}

	g.DrawOverlay(dst)
}
