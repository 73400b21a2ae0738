// Package registry keeps the factories of every playable game.
// Games register themselves in init(), so frontends can list and create them
// by ID without importing game packages directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Game is the contract between a game and a frontend. Games hold pure logic;
// the frontend owns timing, input mapping and drawing the screen buffer.
type Game interface {
	// ID returns the identifier used by the CLI and the score store.
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts the game from scratch with the given runtime settings.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current state (score, game over, paused).
	State() core.GameState
}

// Retuner is implemented by games that accept a reloaded configuration
// while running.
type Retuner interface {
	Retune(cfg config.RunnerConfig)
}

// ShapeRenderer is implemented by games that can be drawn as rectangles in
// world coordinates, for frontends that render pixels.
type ShapeRenderer interface {
	// WorldSize returns the size of the play area in world units.
	WorldSize() (w, h float64)

	// Shapes appends the current frame to dst, back to front.
	Shapes(dst []core.Shape) []core.Shape
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory. It panics on a duplicate or empty ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if id == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a game ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
