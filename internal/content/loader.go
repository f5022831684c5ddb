package content

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Store is a document library, such as the SQLite content store.
type Store interface {
	LoadDocument(ctx context.Context, gameID string) (Document, error)
}

// Loader resolves a game's document.
// Search order: Path -> URL -> Store -> Dir/<game>.yaml -> ~/.learnarcade/content/<game>.yaml
// -> ./content/<game>.yaml -> embedded default.
type Loader struct {
	Path   string // explicit file; errors here are fatal
	URL    string // remote JSON document; failures fall through
	Store  Store
	Dir    string
	Client *http.Client
	Logger *log.Logger
}

// Load returns the document for gameID and a description of where it came from.
func (l *Loader) Load(ctx context.Context, gameID string) (Document, string, error) {
	if l.Path != "" {
		doc, err := ReadFile(l.Path)
		if err != nil {
			return Document{}, "", err
		}
		return doc, l.Path, nil
	}

	if l.URL != "" {
		doc, err := Fetch(ctx, l.Client, l.URL)
		if err == nil {
			return doc, l.URL, nil
		}
		l.warn("content fetch failed, falling back", "url", l.URL, "err", err)
	}

	if l.Store != nil {
		doc, err := l.Store.LoadDocument(ctx, gameID)
		switch {
		case err == nil:
			return doc, "library", nil
		case !errors.Is(err, ErrNotFound):
			l.warn("content library unavailable", "game", gameID, "err", err)
		}
	}

	for _, path := range l.candidates(gameID) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		doc, err := ReadFile(path)
		if err != nil {
			l.warn("skipping content file", "path", path, "err", err)
			continue
		}
		return doc, path, nil
	}

	doc, err := Builtin(gameID)
	if err != nil {
		return Document{}, "", err
	}
	return doc, "builtin", nil
}

func (l *Loader) candidates(gameID string) []string {
	var paths []string
	name := gameID + ".yaml"
	if l.Dir != "" {
		paths = append(paths, filepath.Join(l.Dir, name), filepath.Join(l.Dir, gameID+".json"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".learnarcade", "content", name))
	}
	return append(paths, filepath.Join("content", name))
}

func (l *Loader) warn(msg string, kv ...any) {
	if l.Logger != nil {
		l.Logger.Warn(msg, kv...)
	}
}

// ReadFile loads a YAML or JSON document from disk.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("content: failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Builtin returns the embedded default document for a game.
func Builtin(gameID string) (Document, error) {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return Document{}, fmt.Errorf("content: no built-in content for %q", gameID)
	}
	return Parse(data)
}

// Fetch downloads a JSON document.
func Fetch(ctx context.Context, client *http.Client, url string) (Document, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, fmt.Errorf("content: fetch %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("content: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Document{}, fmt.Errorf("content: fetch %s: status %d", url, resp.StatusCode)
	}

	var doc Document
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("content: decode %s: %w", url, err)
	}
	if len(doc.Scenarios) == 0 {
		return Document{}, fmt.Errorf("content: %s has no scenarios", url)
	}
	return doc, nil
}
