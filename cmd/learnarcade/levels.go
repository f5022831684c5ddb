package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/platform/tui"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

var flagPlain bool

var levelsCmd = &cobra.Command{
	Use:   "levels [game]",
	Short: "Browse the levels of the games",
	Long: `Browse every game's levels as resolved from the content sources.
Enter plays the highlighted level.

With --plain the levels of one game are printed as a table instead.

Examples:
  learnarcade levels
  learnarcade levels tracing
  learnarcade levels dots --plain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive browser")
}

func runLevels(_ *cobra.Command, args []string) {
	var gameID string
	if len(args) == 1 {
		gameID = args[0]
		requireGame(gameID)
	}

	store := openLibrary()
	if store != nil {
		defer store.Close()
	}
	if err := setupGames(store, "", cliLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	if flagPlain {
		ids := []string{gameID}
		if gameID == "" {
			ids = ids[:0]
			for _, g := range registry.List() {
				ids = append(ids, g.ID)
			}
		}
		for _, id := range ids {
			if err := printLevels(id); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
		return
	}

	cfg := runtimeConfig()
	res, err := tui.RunLevelBrowser(board.Loader(), gameID, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if res.Pick != nil {
		playPreset(res.Pick.GameID, content.DifficultyAll, res.Pick.Level, cfg)
	}
}

func printLevels(gameID string) error {
	doc, from, err := board.Loader().Load(context.Background(), gameID)
	if err != nil {
		return err
	}
	levels := doc.WithKind(kindOf(gameID)).Scenarios

	fmt.Printf("%s (%s, %s)\n", gameID, doc.GameTitle, from)
	fmt.Println()

	widths := make([]int, len(tui.LevelColumns))
	rows := make([][]string, len(levels))
	for i, title := range tui.LevelColumns {
		widths[i] = len(title)
	}
	for i, l := range levels {
		rows[i] = tui.LevelRow(i, l)
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], len(cell))
		}
	}

	printRow := func(cells []string) {
		var b strings.Builder
		b.WriteString(" ")
		for j, cell := range cells {
			fmt.Fprintf(&b, " %-*s", widths[j], cell)
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
	printRow(tui.LevelColumns)
	dashes := make([]string, len(widths))
	for j, w := range widths {
		dashes[j] = strings.Repeat("-", w)
	}
	printRow(dashes)
	for _, r := range rows {
		printRow(r)
	}
	fmt.Println()
	return nil
}
