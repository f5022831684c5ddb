package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/storage"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Manage the content library",
	Long: `Import, export, list and remove the level documents kept in the
content library. A library document replaces a game's built-in levels.

Examples:
  learnarcade content import dots ./shapes.yaml
  learnarcade content export dots > dots.yaml
  learnarcade content list
  learnarcade content rm dots`,
}

var contentImportCmd = &cobra.Command{
	Use:   "import <game> <file>",
	Short: "Store a YAML or JSON document for a game",
	Args:  cobra.ExactArgs(2),
	Run:   runContentImport,
}

var contentExportCmd = &cobra.Command{
	Use:   "export <game>",
	Short: "Print a game's library document as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runContentExport,
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library documents",
	Args:  cobra.NoArgs,
	Run:   runContentList,
}

var contentRmCmd = &cobra.Command{
	Use:   "rm <game>",
	Short: "Remove a game's library document",
	Args:  cobra.ExactArgs(1),
	Run:   runContentRm,
}

func init() {
	contentCmd.AddCommand(contentImportCmd, contentExportCmd, contentListCmd, contentRmCmd)
}

// mustOpenLibrary opens the library or exits; the content commands have
// nothing to do without it.
func mustOpenLibrary() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening content library: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runContentImport(_ *cobra.Command, args []string) {
	gameID, path := args[0], args[1]
	requireGame(gameID)

	doc, err := content.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if errs := doc.WithKind(kindOf(gameID)).Invalid(); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %s is not playable:\n", path)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		os.Exit(1)
	}

	store := mustOpenLibrary()
	defer store.Close()
	if err := store.SaveDocument(context.Background(), gameID, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Imported %d levels for %s.\n", len(doc.Scenarios), gameID)
}

func runContentExport(_ *cobra.Command, args []string) {
	gameID := args[0]
	requireGame(gameID)

	store := mustOpenLibrary()
	defer store.Close()

	doc, err := store.LoadDocument(context.Background(), gameID)
	if errors.Is(err, content.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "No library document for %s; exporting the built-in levels.\n", gameID)
		doc, err = content.Builtin(gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}

	data, err := content.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	os.Stdout.Write(data)
}

func runContentList(_ *cobra.Command, _ []string) {
	store := mustOpenLibrary()
	defer store.Close()

	infos, err := store.ListDocuments(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if len(infos) == 0 {
		fmt.Println("The content library is empty.")
		fmt.Println()
		fmt.Println("Run 'learnarcade content import <game> <file>' to add levels.")
		return
	}

	fmt.Printf("  %-10s  %-24s  %-6s  %s\n", "Game", "Title", "Levels", "Updated")
	fmt.Printf("  %-10s  %-24s  %-6s  %s\n", "----", "-----", "------", "-------")
	for _, info := range infos {
		fmt.Printf("  %-10s  %-24s  %-6d  %s\n",
			info.GameID, info.Title, info.Levels, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func runContentRm(_ *cobra.Command, args []string) {
	gameID := args[0]

	store := mustOpenLibrary()
	defer store.Close()

	err := store.DeleteDocument(context.Background(), gameID)
	switch {
	case errors.Is(err, content.ErrNotFound):
		fmt.Printf("No library document for %s.\n", gameID)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	default:
		fmt.Printf("Removed the library document for %s.\n", gameID)
	}
}
