// Package labelling implements the labelling game: drag each label from the
// tray onto the drop zone of the feature it names.
package labelling

import (
	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

const trayRows = 2

// Game implements the labelling game.
type Game struct {
	*board.Base

	dragX, dragY int
}

// New creates a new labelling game.
func New() *Game {
	g := &Game{Base: board.NewBase("labelling", "Labelling", content.KindUnorderedPlacement, trayRows)}
	g.CompleteText = func(l content.Level) string {
		return "All labels placed on " + l.DisplayName() + "!"
	}
	g.WrongText = "That label belongs somewhere else"
	g.Hint = "drag labels onto the picture"
	return g
}

func init() {
	registry.Register("labelling", func() registry.Game {
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

func (g *Game) chips() []board.Chip {
	return board.Chips(g.Session().State().Pool, g.Tray(), false)
}

func (g *Game) pointer(ev core.PointerEvent) {
	s := g.Session()
	m := s.Machine()
	f := g.Field()
	p := f.Map(ev)
	x, y, inCells := board.CellOf(ev)

	switch ev.Kind {
	case core.PointerDown:
		if inCells {
			if c, ok := board.ChipAt(g.chips(), x, y); ok {
				s.Grab(c.Label)
				g.dragX, g.dragY = x, y
			}
			return
		}
		s.Start(p)
	case core.PointerMove:
		if m.Phase() != engine.PhaseDragging {
			return
		}
		s.Track(p)
		g.dragX, g.dragY = x, y
	case core.PointerUp:
		if m.Phase() != engine.PhaseDragging {
			return
		}
		label := m.Gesture().Label
		onPicture := p.InContent()
		if inCells {
			onPicture = f.Contains(x, y)
		}
		if onPicture {
			s.Place(label, p)
		}
		if m.Phase() == engine.PhaseDragging {
			s.Cancel()
		}
	case core.PointerLeave:
		s.Cancel()
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

	for i, line := range lvl.Art {
		dst.DrawTextColored(box.X+(box.W-len([]rune(line)))/2, box.Y+(box.H-len(lvl.Art))/2+i, line, core.ColorBlue)
	}

	ws := m.Waypoints()
	for _, w := range ws {
		if w.Paired != nil {
			f.Line(dst, w.Pos, *w.Paired, '·', core.ColorGray)
		}
	}
	for _, w := range ws {
		if w.Paired != nil {
			x, y := f.Cell(*w.Paired)
			dst.SetColored(x, y, '◉', core.ColorYellow)
		}
		if m.Placed(w.Label) {
			f.Text(dst, w.Pos, w.Label, core.ColorBrightGreen)
		} else {
			f.Text(dst, w.Pos, "[ ? ]", core.ColorWhite)
		}
	}

	grabbed := m.Gesture().Label
	board.DrawChips(dst, g.chips(), func(c board.Chip) core.Color {
		if c.Label == grabbed {
			return core.ColorGray
		}
		return core.ColorYellow
	})
	if grabbed != "" {
		dst.DrawTextColored(g.dragX, g.dragY, grabbed, core.ColorMagenta)
	}

	g.DrawOverlay(dst)
}
