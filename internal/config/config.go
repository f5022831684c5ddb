// Package config provides YAML-based game settings with embedded defaults and
// environment-driven server configuration.
package config

import (
	"time"

	"github.com/vovakirdan/learn-arcade/internal/content"
)

// Settings holds the tunables of every game.
type Settings struct {
	Difficulty string                  `yaml:"difficulty"` // initial filter
	Games      map[string]GameSettings `yaml:"games"`
}

// GameSettings holds one game's tunables. Durations are in seconds.
type GameSettings struct {
	Tolerance        float64 `yaml:"tolerance"`
	StartTolerance   float64 `yaml:"start_tolerance"`
	EndTolerance     float64 `yaml:"end_tolerance"`
	MinSamples       int     `yaml:"min_samples"`
	Choices          int     `yaml:"choices"`
	AutoAdvance      float64 `yaml:"auto_advance"`
	FeedbackCooldown float64 `yaml:"feedback_cooldown"`
	TimeLimit        int     `yaml:"time_limit"`
	Cyclic           bool    `yaml:"cyclic"`
}

// Game returns the settings for a game, filling unset fields from the
// built-in defaults.
func (s Settings) Game(id string) GameSettings {
	def := DefaultSettings().Games[id]
	g, ok := s.Games[id]
	if !ok {
		return withFallbacks(def)
	}
	if g.Tolerance == 0 {
		g.Tolerance = def.Tolerance
	}
	if g.StartTolerance == 0 {
		g.StartTolerance = def.StartTolerance
	}
	if g.EndTolerance == 0 {
		g.EndTolerance = def.EndTolerance
	}
	if g.MinSamples == 0 {
		g.MinSamples = def.MinSamples
	}
	if g.Choices == 0 {
		g.Choices = def.Choices
	}
	if g.AutoAdvance == 0 {
		g.AutoAdvance = def.AutoAdvance
	}
	if g.FeedbackCooldown == 0 {
		g.FeedbackCooldown = def.FeedbackCooldown
	}
	return withFallbacks(g)
}

func withFallbacks(g GameSettings) GameSettings {
	if g.Tolerance <= 0 {
		g.Tolerance = 10
	}
	if g.AutoAdvance <= 0 {
		g.AutoAdvance = 3
	}
	return g
}

// Tolerances converts the settings to content tolerances.
func (g GameSettings) Tolerances() content.Tolerances {
	return content.Tolerances{
		Default:    g.Tolerance,
		Start:      g.StartTolerance,
		End:        g.EndTolerance,
		MinSamples: g.MinSamples,
		Choices:    g.Choices,
	}
}

// AutoAdvanceDelay is the pause between finishing a level and the next one.
func (g GameSettings) AutoAdvanceDelay() time.Duration {
	return seconds(g.AutoAdvance)
}

// Cooldown is the minimum gap between two retry feedback events.
func (g GameSettings) Cooldown() time.Duration {
	return seconds(g.FeedbackCooldown)
}

// LevelTimeLimit is the default per-level clock, zero when levels are untimed.
func (g GameSettings) LevelTimeLimit() time.Duration {
	return time.Duration(g.TimeLimit) * time.Second
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// InitialDifficulty parses the configured difficulty filter.
func (s Settings) InitialDifficulty() content.Difficulty {
	d, err := content.ParseDifficulty(s.Difficulty)
	if err != nil {
		return content.DifficultyAll
	}
	return d
}
