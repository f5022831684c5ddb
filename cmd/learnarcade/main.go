// learnarcade runs the learning games (connect-the-dots, labelling, letter
// tracing and number patterns) in the terminal, over SSH and over the web.
//
// Usage:
//
//	learnarcade list                 - List available games
//	learnarcade play <game>          - Play a game
//	learnarcade menu                 - Pick games interactively
//	learnarcade levels [game]        - Browse the levels of the games
//	learnarcade content <command>    - Manage the content library
//	learnarcade serve                - Serve the games over SSH and HTTP
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible choice order
//	--db <path>           - Set content library path (default: ~/.learnarcade/library.db)
//	--content-dir <dir>   - Look for <game>.yaml content files in dir
//	--config <path>       - Game settings YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/learn-arcade/internal/games/dots"
	_ "github.com/vovakirdan/learn-arcade/internal/games/labelling"
	_ "github.com/vovakirdan/learn-arcade/internal/games/pattern"
	_ "github.com/vovakirdan/learn-arcade/internal/games/tracing"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagContentDir string
	flagConfig     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "learnarcade",
	Short: "Learn Arcade - small learning games for the terminal",
	Long: `Learn Arcade is a set of pointer-driven learning games: connect the
dots, label a picture, trace letters and complete number patterns.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  levels   - Browse levels
  content  - Import, export and remove library content
  serve    - Serve the games over SSH and HTTP

Examples:
  learnarcade list
  learnarcade play dots --difficulty easy
  learnarcade menu
  learnarcade content import dots ./shapes.yaml
  learnarcade serve --ssh :2222 --http :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.learnarcade/library.db", "Path to the content library")
	rootCmd.PersistentFlags().StringVar(&flagContentDir, "content-dir", "", "Directory with <game>.yaml content files")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game settings YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(serveCmd)
}
