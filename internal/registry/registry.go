// Package registry keeps the factories of the learning games. Each game
// package registers itself from init(), so the CLI, the SSH server and the
// web API find games by ID without importing them by name.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
)

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what every platform drives. Implementations hold pure logic: the
// platform maps keys and pointers into InputFrames, calls Step once per tick
// and renders into a Screen.
type Game interface {
	// ID is the stable identifier used on the command line, in content file
	// names and in URLs.
	ID() string
	Title() string

	// Reset loads content and starts a fresh session sized to cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions and pointer events collected
	// since the previous one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Kinded is implemented by games that play one level kind.
type Kinded interface {
	Kind() content.Kind
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
	Kind  content.Kind
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a game factory. It panics on an empty or duplicate ID since
// both are programming errors in an init() function.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if k, ok := g.(Kinded); ok {
		info.Kind = k.Kind()
	}
	factories[id] = f
	infos[id] = info
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new instance of the game.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Describe(id)
	return ok
}

// Describe returns the metadata of a registered game.
func Describe(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}
