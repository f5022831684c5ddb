package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

type kindedGame struct{ stubGame }

func (g *kindedGame) Kind() content.Kind { return content.KindChoiceSelection }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-b", func() Game { return &stubGame{id: "stub-b"} })
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") || Exists("stub-missing") {
		t.Fatal("Exists reported the wrong games")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "stub-a" || info.ID == "stub-b" {
			ids = append(ids, info.ID)
		}
	}
	if len(ids) != 2 || ids[0] != "stub-a" {
		t.Fatalf("List() order = %v, want sorted by ID", ids)
	}

	g, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub-b" {
		t.Errorf("created %q", g.ID())
	}
	if info, ok := Describe("stub-b"); !ok || info.Title != "Stub stub-b" || info.Kind != "" {
		t.Errorf("Describe() = %+v, %v", info, ok)
	}

	if _, err := Create("stub-missing"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, want ErrUnknownGame", err)
	}
}

func TestRegisterRecordsKind(t *testing.T) {
	Register("stub-kind", func() Game { return &kindedGame{stubGame{id: "stub-kind"}} })
	info, ok := Describe("stub-kind")
	if !ok || info.Kind != content.KindChoiceSelection {
		t.Errorf("Describe() = %+v, %v", info, ok)
	}
}

func TestRegisterPanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	tests := []struct {
		name string
		id   string
	}{
		{"duplicate", "stub-dup"},
		{"empty id", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("Register did not panic")
				}
			}()
			Register(tt.id, func() Game { return &stubGame{id: tt.id} })
		})
	}
}
