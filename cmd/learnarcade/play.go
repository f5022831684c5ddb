package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/platform/tui"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

var (
	flagDifficulty string
	flagLevel      string
	flagContent    string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Mouse               - Drag, click and trace on the picture
  Arrows/hjkl         - Move the cursor
  Enter/Space         - Press or release at the cursor
  1-4                 - Pick an answer (patterns)
  P/Esc               - Pause
  R                   - Restart the level
  N                   - Skip to the next level
  D                   - Cycle the difficulty filter
  Q/Ctrl+C            - Quit

Difficulty options:
  all, easy, medium, hard

Content:
  --content takes a YAML/JSON file or an http(s) URL serving a JSON document.
  Without it, games look in the content library, --content-dir,
  ~/.learnarcade/content and ./content before the built-in levels.

Examples:
  learnarcade play dots
  learnarcade play tracing --difficulty easy
  learnarcade play labelling --level heart
  learnarcade play pattern --content ./patterns.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty filter: all, easy, medium, hard")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "First level, by ID or 1-based number")
	playCmd.Flags().StringVar(&flagContent, "content", "", "Content document file or URL")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	if flagDifficulty != "" {
		d, err := content.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		board.SetDifficulty(d)
	}
	board.SetStartLevel(flagLevel)

	store := openLibrary()
	if store != nil {
		defer store.Close()
	}
	if err := setupGames(store, flagContent, cliLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(game, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
