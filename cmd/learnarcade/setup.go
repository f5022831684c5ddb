package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/learn-arcade/internal/config"
	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/registry"
	"github.com/vovakirdan/learn-arcade/internal/storage"
)

// cliLogger reports content fallbacks without disturbing the game screen
// more than necessary.
func cliLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "learnarcade",
		Level:  log.WarnLevel,
	})
}

// openLibrary opens the content library, or returns nil with a warning.
func openLibrary() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open content library: %v\n", err)
		return nil
	}
	return store
}

// setupGames points every game at its settings and content. source is an
// explicit file or an http(s) URL; empty uses the normal search order.
func setupGames(store *storage.Store, source string, logger *log.Logger) error {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	board.SetSettings(settings)

	l := &content.Loader{Dir: flagContentDir, Logger: logger}
	if store != nil {
		l.Store = store
	}
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		l.URL = source
	case source != "":
		l.Path = source
	}
	board.SetLoader(l)
	return nil
}

// runtimeConfig sizes the games to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// kindOf returns the level kind a registered game plays.
func kindOf(gameID string) content.Kind {
	info, _ := registry.Describe(gameID)
	return info.Kind
}

func requireGame(gameID string) {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'learnarcade list' to see available games.")
		os.Exit(1)
	}
}
