package dots

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

func noticeTypes(res core.StepResult) []string {
	var out []string
	for _, n := range res.Notices {
		out = append(out, n.Type)
	}
	return out
}

func has(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func TestDragCompletesSquare(t *testing.T) {
	g := newGame(t, "square")

	var seen []string
	seen = append(seen, noticeTypes(pointerAt(g, core.PointerDown, core.Pt(20, 20)))...)
	for _, p := range []core.Point{core.Pt(80, 20), core.Pt(80, 80), core.Pt(20, 80), core.Pt(20, 20)} {
		seen = append(seen, noticeTypes(pointerAt(g, core.PointerMove, p))...)
	}

	if !g.State().Complete {
		t.Fatalf("square not complete, completed %v", g.Session().State().Completed)
	}
	if got := g.Session().State().Completed; strings.Join(got, ",") != "1,2,3,4,1" {
		t.Fatalf("completed = %v", got)
	}
	if !has(seen, "levelComplete") {
		t.Fatalf("notices = %v", seen)
	}
}

func TestReleaseOnWrongDot(t *testing.T) {
	g := newGame(t, "square")
	pointerAt(g, core.PointerDown, core.Pt(20, 20))
	res := pointerAt(g, core.PointerUp, core.Pt(80, 80))

	if !has(noticeTypes(res), "wrongAttempt") {
		t.Fatalf("notices = %v, want wrongAttempt", noticeTypes(res))
	}
	m := g.Session().Machine()
	if m.Phase() != engine.PhaseIdle || m.CompletedSlots() != 1 {
		t.Fatalf("phase %v completed %d, want idle with dot 1 kept", m.Phase(), m.CompletedSlots())
	}
}

func TestReleaseInEmptySpaceCancelsQuietly(t *testing.T) {
	g := newGame(t, "square")
	pointerAt(g, core.PointerDown, core.Pt(20, 20))
	pointerAt(g, core.PointerMove, core.Pt(80, 20))
	res := pointerAt(g, core.PointerUp, core.Pt(50, 50))

	if has(noticeTypes(res), "wrongAttempt") {
		t.Fatal("empty release should not count as a mistake")
	}
	m := g.Session().Machine()
	if m.Phase() != engine.PhaseIdle || m.CompletedSlots() != 2 {
		t.Fatalf("phase %v completed %d", m.Phase(), m.CompletedSlots())
	}

	// resume from dot 2
	pointerAt(g, core.PointerDown, core.Pt(80, 20))
	pointerAt(g, core.PointerMove, core.Pt(80, 80))
	if m.CompletedSlots() != 3 {
		t.Fatalf("resume failed, completed %d", m.CompletedSlots())
	}
}

func TestMoveOverWrongDotIsSilent(t *testing.T) {
	g := newGame(t, "square")
	pointerAt(g, core.PointerDown, core.Pt(20, 20))
	res := pointerAt(g, core.PointerMove, core.Pt(80, 80))
	if has(noticeTypes(res), "wrongAttempt") {
		t.Fatal("moving over a dot out of order should not raise feedback")
	}
	if g.Session().Machine().Phase() != engine.PhaseConnecting {
		t.Fatal("gesture should still be live")
	}
}

func TestWrongStartFeedback(t *testing.T) {
	g := newGame(t, "square")
	res := pointerAt(g, core.PointerDown, core.Pt(80, 80))
	if !has(noticeTypes(res), "wrongAttempt") {
		t.Fatalf("notices = %v", noticeTypes(res))
	}
}

func TestKeyboardCursorDraws(t *testing.T) {
	g := newGame(t, "square")
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)
	in = core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.ContainsRune(scr.String(), '◆') {
		t.Fatal("pressed keyboard cursor not drawn")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, "square")
	pointerAt(g, core.PointerDown, core.Pt(20, 20))
	pointerAt(g, core.PointerMove, core.Pt(80, 20))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()
	for _, want := range []string{"●", "Square", "•"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}
