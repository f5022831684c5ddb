package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/platform/tui"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Each game opens a start menu for the difficulty filter and first level.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Browse levels
  Q            - Quit

Examples:
  learnarcade menu
  learnarcade menu --fps 60
  learnarcade menu --content-dir ./content`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openLibrary()
	if store != nil {
		defer store.Close()
	}
	if err := setupGames(store, "", cliLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	cfg := runtimeConfig()
	initial := board.Settings().InitialDifficulty()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		var gameID, level string
		diff := initial

		if menuResult.WantsLevels {
			res, err := tui.RunLevelBrowser(board.Loader(), "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if res.Pick == nil {
				if res.Back {
					continue
				}
				return
			}
			gameID, level, diff = res.Pick.GameID, res.Pick.Level, content.DifficultyAll
		} else {
			gameID = menuResult.GameID
			if gameID == "" {
				return
			}
			info, _ := registry.Describe(gameID)
			sel, err := tui.RunStartMenu(gameID, info.Title, board.Loader(), initial, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if sel == nil {
				continue
			}
			diff, level = sel.Difficulty, sel.Level
		}

		playPreset(gameID, diff, level, cfg)
	}
}

// playPreset runs one game with a difficulty filter and first level chosen
// in the menus.
func playPreset(gameID string, diff content.Difficulty, level string, cfg core.RuntimeConfig) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}
	if p, ok := game.(tui.Presetter); ok {
		p.Preset(diff, level)
	}

	cfg.Seed = time.Now().UnixNano()
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if err := tui.Run(game, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
	}
}
