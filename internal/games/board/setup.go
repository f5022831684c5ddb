package board

import (
	"sync"

	"github.com/vovakirdan/learn-arcade/internal/config"
	"github.com/vovakirdan/learn-arcade/internal/content"
)

// Package-level setup shared by all learning games. The CLI sets it once
// before any game is created; sessions only read it.
var (
	setupMu    sync.RWMutex
	loader     = &content.Loader{}
	settings   = config.DefaultSettings()
	difficulty content.Difficulty
	startLevel string
)

// SetLoader sets where games find their content.
func SetLoader(l *content.Loader) {
	setupMu.Lock()
	defer setupMu.Unlock()
	if l == nil {
		l = &content.Loader{}
	}
	loader = l
}

// Loader returns the content loader games use.
func Loader() *content.Loader {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return loader
}

// SetSettings sets the game tunables.
func SetSettings(s config.Settings) {
	setupMu.Lock()
	defer setupMu.Unlock()
	settings = s
}

// SetDifficulty overrides the initial difficulty filter. Empty uses the
// configured one.
func SetDifficulty(d content.Difficulty) {
	setupMu.Lock()
	defer setupMu.Unlock()
	difficulty = d
}

// SetStartLevel selects the first level by ID or 1-based number. Empty starts
// at the beginning.
func SetStartLevel(level string) {
	setupMu.Lock()
	defer setupMu.Unlock()
	startLevel = level
}

// Settings returns the current game tunables.
func Settings() config.Settings {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return settings
}

func currentSetup() (*content.Loader, config.Settings, content.Difficulty, string) {
	setupMu.RLock()
	defer setupMu.RUnlock()
	d := difficulty
	if d == "" {
		d = settings.InitialDifficulty()
	}
	return loader, settings, d, startLevel
}
