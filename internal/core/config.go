package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for answer shuffling; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// TickDuration returns the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Score       int           `json:"score"` // levels completed this session
	Level       int           `json:"level"`
	LevelCount  int           `json:"levelCount"`
	LevelName   string        `json:"levelName"`
	Difficulty  string        `json:"difficulty"`
	Phase       string        `json:"phase"`
	Complete    bool          `json:"complete"`
	AllComplete bool          `json:"allComplete"`
	Paused      bool          `json:"paused"`
	Elapsed     time.Duration `json:"elapsed"`
	Remaining   time.Duration `json:"remaining,omitempty"`
}

// Cue names a sound the presentation layer may play.
type Cue string

const (
	CueNone      Cue = ""
	CueConnect   Cue = "connect"
	CueIncorrect Cue = "incorrect"
	CueSuccess   Cue = "success"
	CueLevelWin  Cue = "levelWin"
	CueClick     Cue = "uiClick"
)

// Notice is a presentation-facing event emitted by a game step.
type Notice struct {
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	Cue       Cue    `json:"cue,omitempty"`
	Celebrate bool   `json:"celebrate,omitempty"`
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Notices []Notice
}
