package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/learn-arcade/internal/content"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded Settings
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	want := DefaultSettings()
	for id, g := range want.Games {
		if !reflect.DeepEqual(embedded.Games[id], g) {
			t.Errorf("%s: embedded %+v, hardcoded %+v", id, embedded.Games[id], g)
		}
	}
	if embedded.Difficulty != want.Difficulty {
		t.Errorf("difficulty = %q", embedded.Difficulty)
	}
}

func TestGameFillsDefaults(t *testing.T) {
	s := Settings{Games: map[string]GameSettings{"dots": {Tolerance: 12, TimeLimit: 60}}}
	g := s.Game("dots")
	if g.Tolerance != 12 || g.AutoAdvance != 3 || g.FeedbackCooldown != 1 {
		t.Errorf("dots = %+v", g)
	}
	if g.LevelTimeLimit() != time.Minute || g.AutoAdvanceDelay() != 3*time.Second {
		t.Errorf("durations = %v, %v", g.LevelTimeLimit(), g.AutoAdvanceDelay())
	}

	tr := s.Game("tracing")
	if tr.EndTolerance != 12 || tr.MinSamples != 10 || tr.AutoAdvanceDelay() != 1500*time.Millisecond {
		t.Errorf("tracing = %+v", tr)
	}
	tol := tr.Tolerances()
	if tol != (content.Tolerances{Default: 8, Start: 8, End: 12, MinSamples: 10}) {
		t.Errorf("tolerances = %+v", tol)
	}

	unknown := s.Game("nope")
	if unknown.Tolerance != 10 || unknown.AutoAdvance != 3 {
		t.Errorf("unknown = %+v", unknown)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.yaml")
	if err := os.WriteFile(path, []byte("difficulty: hard\ngames:\n  pattern:\n    choices: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InitialDifficulty() != content.DifficultyHard || cfg.Game("pattern").Choices != 6 {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom path")
	}
}

func TestInitialDifficultyFallsBackToAll(t *testing.T) {
	if d := (Settings{Difficulty: "bogus"}).InitialDifficulty(); d != content.DifficultyAll {
		t.Errorf("difficulty = %q", d)
	}
}

func TestLoadServeFromEnv(t *testing.T) {
	t.Setenv("LEARNARCADE_HTTP_ADDR", ":9999")
	t.Setenv("LEARNARCADE_IDLE_TIMEOUT", "5m")
	t.Setenv("LEARNARCADE_LOG_LEVEL", "debug")
	cfg, err := LoadServe()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":9999" || cfg.SSHAddr != ":23234" || cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("level = %v", cfg.Level())
	}
}
