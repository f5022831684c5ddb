package tracing

import (
	"strings"
	"testing"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/engine"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
)

func newGame(t *testing.T, level string) *Game {
	t.Helper()
	board.SetLoader(&content.Loader{Dir: t.TempDir()})
	board.SetDifficulty(content.DifficultyAll)
	t.Cleanup(func() {
		board.SetLoader(nil)
		board.SetDifficulty("")
	})
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1})
	if g.Session() == nil {
		t.Fatalf("no session: %v", g.Err())
	}
	if !g.JumpTo(level) {
		t.Fatalf("level %q not found", level)
	}
	g.Step(core.NewInputFrame())
	return g
}

func pointerAt(g *Game, kind core.PointerKind, p core.Point) core.StepResult {
	x, y := g.Field().Cell(p)
	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: kind, Pos: core.Pt(float64(x), float64(y))})
	return g.Step(in)
}

// trace presses at a, drags in n steps and releases at b.
func trace(g *Game, a, b core.Point, n int) []core.Notice {
	var notices []core.Notice
	notices = append(notices, pointerAt(g, core.PointerDown, a).Notices...)
	for i := 1; i < n; i++ {
		f := float64(i) / float64(n)
		p := core.Pt(a.X+(b.X-a.X)*f, a.Y+(b.Y-a.Y)*f)
		notices = append(notices, pointerAt(g, core.PointerMove, p).Notices...)
	}
	return append(notices, pointerAt(g, core.PointerUp, b).Notices...)
}

func hasNotice(ns []core.Notice, typ string) bool {
	for _, n := range ns {
		if n.Type == typ {
			return true
		}
	}
	return false
}

func TestTraceLetterL(t *testing.T) {
	g := newGame(t, "letter-l")

	trace(g, core.Pt(30, 15), core.Pt(30, 85), 15)
	m := g.Session().Machine()
	if m.CompletedSlots() != 2 || m.Phase() != engine.PhaseAwaitingStart {
		t.Fatalf("after stroke 1: completed %d phase %v", m.CompletedSlots(), m.Phase())
	}
	if len(g.strokes) != 1 {
		t.Fatalf("drawn strokes = %d", len(g.strokes))
	}

	notices := trace(g, core.Pt(30, 85), core.Pt(75, 85), 15)
	if !g.State().Complete {
		t.Fatalf("letter not complete: %v", g.Session().State().Completed)
	}
	if !hasNotice(notices, "levelComplete") {
		t.Fatalf("missing levelComplete in %+v", notices)
	}
}

func TestShortStrokeRejected(t *testing.T) {
	g := newGame(t, "letter-l")

	notices := trace(g, core.Pt(30, 15), core.Pt(30, 85), 3)
	if !hasNotice(notices, "tooShort") {
		t.Fatalf("notices = %+v, want tooShort", notices)
	}
	m := g.Session().Machine()
	if m.CompletedSlots() != 1 || m.Phase() != engine.PhaseIdle {
		t.Fatalf("completed %d phase %v, want start kept and gesture dropped", m.CompletedSlots(), m.Phase())
	}

	trace(g, core.Pt(30, 15), core.Pt(30, 85), 15)
	if m.CompletedSlots() != 2 {
		t.Fatalf("retry failed: completed %d", m.CompletedSlots())
	}
}

func TestReleaseAwayFromEnd(t *testing.T) {
	g := newGame(t, "letter-l")
	notices := trace(g, core.Pt(30, 15), core.Pt(70, 40), 15)
	if !hasNotice(notices, "wrongAttempt") {
		t.Fatalf("notices = %+v, want wrongAttempt", notices)
	}
	if len(g.strokes) != 0 {
		t.Fatal("a missed stroke was kept")
	}
}

func TestRestartClearsInk(t *testing.T) {
	g := newGame(t, "letter-l")
	trace(g, core.Pt(30, 15), core.Pt(30, 85), 15)

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	g.Step(in)
	if len(g.strokes) != 0 || g.Session().Machine().CompletedSlots() != 0 {
		t.Fatal("restart kept the previous ink")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, "letter-l")
	trace(g, core.Pt(30, 15), core.Pt(30, 85), 15)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()
	for _, want := range []string{"Trace: L", "█", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}
