package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	_ "github.com/vovakirdan/learn-arcade/internal/games/dots"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{runeKey("n"), core.ActionNext, false},
		{runeKey("d"), core.ActionDifficulty, false},
		{runeKey("3"), core.ActionChoice3, false},
		{runeKey("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		got, quit := km.MapKey(tt.msg)
		if got != tt.want || quit != tt.isQuit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), got, quit, tt.want, tt.isQuit)
		}
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want core.PointerKind
		ok   bool
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.PointerDown, true},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, 0, false},
		{"wheel", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, 0, false},
		{"motion", tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, core.PointerMove, true},
		{"release", tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionRelease}, core.PointerUp, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := km.MapMouse(tt.msg)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if ev.Kind != tt.want {
				t.Errorf("kind = %v, want %v", ev.Kind, tt.want)
			}
			if ev.Pos.X != float64(tt.msg.X) || ev.Pos.Y != float64(tt.msg.Y) {
				t.Errorf("pos = %v, want (%d,%d)", ev.Pos, tt.msg.X, tt.msg.Y)
			}
			if ev.Container != nil {
				t.Error("terminal events should not carry a container")
			}
		})
	}
}

type stubGame struct {
	resets  int
	resized [2]int
	steps   int
	sawNext bool
	pointer []core.PointerEvent
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return core.GameState{Level: 1} }
func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.sawNext = g.sawNext || in.Has(core.ActionNext)
	g.pointer = append(g.pointer, in.Pointer...)
	return core.StepResult{State: g.State()}
}

func TestModelResizeKeepsProgress(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})

	next, _ := m.Update(runeKey("n"))
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)

	if g.steps != 1 {
		t.Fatalf("steps = %d, want 1", g.steps)
	}
	if !g.sawNext {
		t.Error("next action not forwarded")
	}
	if len(g.pointer) != 1 || g.pointer[0].Kind != core.PointerDown {
		t.Errorf("pointer = %+v", g.pointer)
	}
	if m.State().Level != 1 {
		t.Errorf("state not recorded: %+v", m.State())
	}
	if !m.inputFrame.Empty() {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, core.DefaultConfig())
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestStartModelDifficulty(t *testing.T) {
	m := NewStartModel("dots", "Connect the Dots", &content.Loader{}, content.DifficultyAll, 80, 24)
	if len(m.levels) == 0 {
		t.Fatal("expected built-in levels")
	}

	var next tea.Model = m
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyDown},
		{Type: tea.KeyRight},
		{Type: tea.KeyUp},
		{Type: tea.KeyEnter},
	} {
		next, _ = next.Update(msg)
	}

	sel := next.(StartModel).Selected()
	if sel == nil {
		t.Fatal("no selection")
	}
	if sel.Difficulty != content.DifficultyEasy || sel.Level != "" {
		t.Errorf("selection = %+v", sel)
	}
}

func TestStartModelBack(t *testing.T) {
	m := NewStartModel("dots", "Connect the Dots", nil, content.DifficultyAll, 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sm := next.(StartModel)
	if !sm.WantsBack() || sm.Selected() != nil {
		t.Errorf("back = %v, selected = %v", sm.WantsBack(), sm.Selected())
	}
}

func TestLevelBrowserPick(t *testing.T) {
	m := NewLevelBrowserModel(&content.Loader{}, "dots", 100, 30)
	if len(m.levels) == 0 {
		t.Fatal("expected built-in levels")
	}
	if m.source == "" {
		t.Error("source should be reported")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pick := next.(LevelBrowserModel).Picked()
	if pick == nil {
		t.Fatal("no pick")
	}
	if pick.GameID != "dots" || pick.Level != m.levels[0].ID {
		t.Errorf("pick = %+v", pick)
	}
}

func TestLevelRow(t *testing.T) {
	row := LevelRow(0, content.Level{ID: "square", Name: "Square", Difficulty: content.DifficultyEasy,
		Waypoints: make([]core.Waypoint, 4), TimeLimit: 30})
	want := []string{"1", "square", "Square", "easy", "4", "30s"}
	if len(row) != len(LevelColumns) {
		t.Fatalf("row has %d cells, columns %d", len(row), len(LevelColumns))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, row[i], want[i])
		}
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
	var m tea.Model = NewSessionModel(&content.Loader{}, cfg, "tester")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if s := m.(SessionModel); s.screen != screenStart || s.gameID != "dots" {
		t.Fatalf("after menu select: screen %v game %q", s.screen, s.gameID)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s := m.(SessionModel)
	if s.screen != screenGame || s.game == nil {
		t.Fatalf("after play: screen %v", s.screen)
	}
	if s.View() == "" {
		t.Error("game view is empty")
	}

	m, _ = m.Update(runeKey("b"))
	if s := m.(SessionModel); s.screen != screenMenu || s.game != nil {
		t.Errorf("after back: screen %v", s.screen)
	}
}

func TestSessionModelLevels(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 30, Seed: 1}
	var m tea.Model = NewSessionModel(&content.Loader{}, cfg, "tester")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if s := m.(SessionModel); s.screen != screenLevels {
		t.Fatalf("screen = %v, want levels", s.screen)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s := m.(SessionModel); s.screen != screenMenu {
		t.Errorf("screen = %v, want menu", s.screen)
	}
}
