package board

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
)

func near(a, b core.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestFieldBoxLetterboxes(t *testing.T) {
	f := Field{Area: core.NewRect(0, 0, 80, 20), Aspect: CellAspect}
	if got, want := f.Box(), core.NewRect(20, 0, 40, 20); got != want {
		t.Fatalf("Box() = %+v, want %+v", got, want)
	}
}

func TestFieldCell(t *testing.T) {
	f := Field{Area: core.NewRect(0, 0, 80, 20), Aspect: CellAspect}
	tests := []struct {
		p      core.Point
		wx, wy int
	}{
		{core.Pt(0, 0), 20, 0},
		{core.Pt(50, 50), 40, 10},
		{core.Pt(100, 100), 59, 19},
		{core.Pt(-50, 200), 20, 19},
	}
	for _, tt := range tests {
		x, y := f.Cell(tt.p)
		if x != tt.wx || y != tt.wy {
			t.Errorf("Cell(%v) = (%d,%d), want (%d,%d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestFieldMap(t *testing.T) {
	f := Field{Area: core.NewRect(0, 0, 80, 20), Aspect: CellAspect}

	got := f.Map(core.PointerEvent{Kind: core.PointerDown, Pos: core.Pt(40, 10)})
	if want := core.Pt(51.25, 52.5); !near(got, want) {
		t.Errorf("cell map = %v, want %v", got, want)
	}

	// a web client with a 400x200 element showing a square picture
	c := &core.Container{Bounds: core.Bounds{Width: 400, Height: 200}, Aspect: 1}
	got = f.Map(core.PointerEvent{Kind: core.PointerDown, Pos: core.Pt(100, 0), Container: c})
	if want := core.Pt(0, 0); !near(got, want) {
		t.Errorf("container map = %v, want %v", got, want)
	}
	got = f.Map(core.PointerEvent{Kind: core.PointerDown, Pos: core.Pt(300, 200), Container: c})
	if want := core.Pt(100, 100); !near(got, want) {
		t.Errorf("container map = %v, want %v", got, want)
	}
}

func TestFieldCellNormalizeAgree(t *testing.T) {
	f := Field{Area: core.NewRect(2, 3, 76, 18), Aspect: CellAspect}
	box := f.Box()
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			if gx, gy := f.Cell(f.Normalize(x, y)); gx != x || gy != y {
				t.Fatalf("Cell(Normalize(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestBannerExpires(t *testing.T) {
	var b Banner
	b.Show("hi", core.ColorGreen, time.Second)
	b.Tick(500 * time.Millisecond)
	if !b.Visible() {
		t.Fatal("banner hidden too early")
	}
	b.Tick(500 * time.Millisecond)
	if b.Visible() || b.Text != "" {
		t.Fatal("banner still visible after its duration")
	}
}

func TestConfettiBurnsOut(t *testing.T) {
	var c Confetti
	c.Burst(rand.New(rand.NewSource(1)), core.NewRect(0, 0, 40, 20), 30)
	if !c.Active() {
		t.Fatal("no particles after Burst")
	}
	scr := core.NewScreen(40, 20)
	c.Draw(scr)
	for range 4 {
		c.Tick(time.Second)
	}
	if c.Active() {
		t.Fatal("particles outlived their lifetime")
	}
}

func TestOverlay(t *testing.T) {
	scr := core.NewScreen(40, 11)
	Overlay(scr, "Paused", "Press P to continue")
	if got := scr.Get(8, 3); got != '╭' {
		t.Errorf("top-left corner = %q", got)
	}
	if row := scr.Row(4); !strings.Contains(row, "Paused") {
		t.Errorf("row 4 = %q", row)
	}
}

func newTestBase(t *testing.T) *Base {
	t.Helper()
	SetLoader(&content.Loader{Dir: t.TempDir()})
	SetDifficulty(content.DifficultyAll)
	SetStartLevel("")
	t.Cleanup(func() {
		SetLoader(nil)
		SetDifficulty("")
		SetStartLevel("")
	})
	b := NewBase("dots", "Connect the Dots", content.KindOrderedPath, 0)
	b.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1})
	if b.Session() == nil {
		t.Fatalf("Reset left no session: %v", b.Err())
	}
	return b
}

func TestBaseResetLoadsBuiltin(t *testing.T) {
	b := newTestBase(t)
	if b.Source() != "builtin" {
		t.Errorf("Source() = %q", b.Source())
	}
	st := b.State()
	if st.Level != 1 || st.LevelCount == 0 || st.Difficulty != "all" {
		t.Fatalf("State() = %+v", st)
	}
	res := b.Finish()
	if len(res.Notices) == 0 || res.Notices[0].Type != "levelLoaded" {
		t.Fatalf("first notices = %+v", res.Notices)
	}
}

func TestBaseControls(t *testing.T) {
	b := newTestBase(t)
	b.Finish()

	in := core.NewInputFrame()
	in.Set(core.ActionNext)
	if b.Controls(in) {
		t.Fatal("next should be consumed")
	}
	if b.State().Level != 2 {
		t.Fatalf("Level after next = %d", b.State().Level)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionPause)
	if b.Controls(in) || !b.State().Paused {
		t.Fatal("pause should be consumed and pause the session")
	}
	if b.Controls(core.NewInputFrame()) {
		t.Fatal("input reached the game while paused")
	}
	b.Controls(in)
	if !b.Controls(core.NewInputFrame()) {
		t.Fatal("input blocked after resume")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionDifficulty)
	b.Controls(in)
	if b.State().Difficulty != "easy" || b.State().Level != 1 {
		t.Fatalf("after difficulty: %+v", b.State())
	}
}

func TestBaseJumpTo(t *testing.T) {
	b := newTestBase(t)
	if !b.JumpTo("square") || b.Session().Level().ID != "square" {
		t.Fatal("JumpTo by id failed")
	}
	if !b.JumpTo("1") || b.Session().Index() != 0 {
		t.Fatal("JumpTo by number failed")
	}
	if b.JumpTo("nope") {
		t.Fatal("JumpTo accepted an unknown level")
	}
}

func TestBaseTooSmall(t *testing.T) {
	SetLoader(&content.Loader{Dir: t.TempDir()})
	t.Cleanup(func() { SetLoader(nil) })
	b := NewBase("dots", "Connect the Dots", content.KindOrderedPath, 0)
	b.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 10, Seed: 1})
	scr := core.NewScreen(20, 10)
	if b.DrawFrame(scr) {
		t.Fatal("DrawFrame should refuse a tiny screen")
	}
	if b.Controls(core.NewInputFrame()) {
		t.Fatal("input should not reach the game on a tiny screen")
	}
}

func TestBaseView(t *testing.T) {
	b := newTestBase(t)
	v := b.View()
	if v.Game != "dots" || v.Level == nil || v.Mode != "ordered" || len(v.Waypoints) == 0 {
		t.Fatalf("View() = %+v", v)
	}
}

func TestChipsWrapAndHit(t *testing.T) {
	chips := Chips([]string{"ANTENNA", "LEG", "WING"}, core.NewRect(0, 10, 20, 2), false)
	if len(chips) != 3 {
		t.Fatalf("got %d chips", len(chips))
	}
	// " ANTENNA " plus brackets is 11 wide; " LEG " is 7 and still fits.
	if chips[0].Rect != core.NewRect(0, 10, 11, 1) || chips[1].Rect != core.NewRect(12, 10, 7, 1) {
		t.Fatalf("first row = %+v %+v", chips[0].Rect, chips[1].Rect)
	}
	if chips[2].Rect.Y != 11 || chips[2].Rect.X != 0 {
		t.Fatalf("WING should wrap to the next row, got %+v", chips[2].Rect)
	}
	if c, ok := ChipAt(chips, 14, 10); !ok || c.Label != "LEG" {
		t.Fatalf("ChipAt(14,10) = %+v, %v", c, ok)
	}
	if _, ok := ChipAt(chips, 19, 10); ok {
		t.Fatal("ChipAt hit empty space")
	}

	numbered := Chips([]string{"8"}, core.NewRect(0, 0, 20, 1), true)
	if numbered[0].Text != " 1) 8 " {
		t.Fatalf("numbered text = %q", numbered[0].Text)
	}
}

func TestCursorKeys(t *testing.T) {
	var c Cursor
	bounds := core.NewRect(0, 0, 20, 10)

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	if evs := c.Keys(in, bounds); len(evs) != 0 || !c.Visible || c.X != 10 || c.Y != 5 {
		t.Fatalf("first key should only show the cursor: %+v %+v", evs, c)
	}

	evs := c.Keys(in, bounds)
	if len(evs) != 1 || evs[0].Kind != core.PointerMove || evs[0].Pos != core.Pt(12, 5) {
		t.Fatalf("move = %+v", evs)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionConfirm)
	if evs := c.Keys(in, bounds); len(evs) != 1 || evs[0].Kind != core.PointerDown {
		t.Fatalf("press = %+v", evs)
	}
	if evs := c.Keys(in, bounds); len(evs) != 1 || evs[0].Kind != core.PointerUp {
		t.Fatalf("release = %+v", evs)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionRight)
	for range 10 {
		c.Keys(in, bounds)
	}
	if c.X != 19 {
		t.Fatalf("cursor escaped bounds: x = %d", c.X)
	}
}
