// Package pattern implements the number pattern game: find the missing
// number of a sequence among a few answer choices.
package pattern

import (
	"strconv"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

// Game implements the number pattern game.
type Game struct {
	*board.Base

	levelID string
	wrong   map[string]bool
	pressed string // chip under the pointer press
}

// New creates a new number pattern game.
func New() *Game {
	g := &Game{Base: board.NewBase("pattern", "Number Patterns", content.KindChoiceSelection, 1)}
	g.CompleteText = func(l content.Level) string {
		if l.Rule != "" {
			return "Correct! " + l.Rule
		}
		return "Correct!"
	}
	g.Hint = "1-4 or click an answer"
	return g
}

func init() {
	registry.Register("pattern", func() registry.Game {
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
		for a := core.ActionChoice1; a <= core.ActionChoice4; a++ {
			if in.Has(a) {
				g.choose(a.ChoiceIndex())
			}
		}
		for _, ev := range g.Pointers(in) {
			g.pointer(ev)
		}
	}
	res := g.Finish()
	g.sync()
	return res
}

// sync forgets wrong guesses when another level has been loaded.
func (g *Game) sync() {
	s := g.Session()
	if s == nil {
		return
	}
	if id := s.Level().ID; id != g.levelID || g.wrong == nil {
		g.levelID = id
		g.wrong = make(map[string]bool)
	}
}

// Choices returns the answer choices in display order.
func (g *Game) Choices() []string {
	if g.Session() == nil {
		return nil
	}
	return g.Session().Plan().Choices
}

func (g *Game) choose(i int) {
	choices := g.Choices()
	if i < 0 || i >= len(choices) {
		return
	}
	g.answer(g.Session().Select(choices[i]))
}

func (g *Game) answer(out engine.Outcome) {
	if out.Kind == engine.OutcomeWrongPlacement {
		g.wrong[out.Label] = true
	}
}

func (g *Game) chips() []board.Chip {
	return board.Chips(g.Choices(), g.Tray(), true)
}

func (g *Game) pointer(ev core.PointerEvent) {
	s := g.Session()
	m := s.Machine()
	f := g.Field()
	p := f.Map(ev)
	x, y, inCells := board.CellOf(ev)

	switch ev.Kind {
	case core.PointerDown:
		if !inCells {
			return
		}
		if c, ok := board.ChipAt(g.chips(), x, y); ok {
			s.Grab(c.Label)
			g.pressed = c.Label
		}
	case core.PointerMove:
		if m.Phase() == engine.PhaseDragging {
			s.Track(p)
		}
	case core.PointerUp:
		if m.Phase() != engine.PhaseDragging {
			return
		}
		label := m.Gesture().Label
		pressed := g.pressed
		g.pressed = ""
		onPicture := p.InContent()
		if inCells {
			onPicture = f.Contains(x, y)
		}
		if onPicture {
			g.answer(s.Place(label, p))
			if m.Phase() == engine.PhaseDragging {
				s.Cancel()
			}
			return
		}
		s.Cancel()
		// a press and release on the same chip is a click
		if c, ok := board.ChipAt(g.chips(), x, y); inCells && ok && c.Label == pressed {
			g.answer(s.Select(label))
		}
	case core.PointerLeave:
		s.Cancel()
		g.pressed = ""
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

	solved := m.IsComplete() && !s.TimedOut()
	for i, v := range lvl.Sequence {
		text, color := "[ "+strconv.Itoa(v)+" ]", core.ColorWhite
		if i == lvl.MissingIndex {
			text, color = "[ ? ]", core.ColorYellow
			if solved {
				text, color = "[ "+strconv.Itoa(lvl.Answer)+" ]", core.ColorBrightGreen
			}
		}
		f.Text(dst, content.BlankPosition(len(lvl.Sequence), i), text, color)
	}
	if solved && lvl.Rule != "" {
		f.Text(dst, core.Pt(50, 75), lvl.Rule, core.ColorCyan)
	}

	answer := strconv.Itoa(lvl.Answer)
	grabbed := m.Gesture().Label
	board.DrawChips(dst, g.chips(), func(c board.Chip) core.Color {
		switch {
		case solved && c.Label == answer:
			return core.ColorBrightGreen
		case g.wrong[c.Label]:
			return core.ColorRed
		case c.Label == grabbed:
			return core.ColorMagenta
		}
		return core.ColorYellow
	})

	g.DrawOverlay(dst)
}
