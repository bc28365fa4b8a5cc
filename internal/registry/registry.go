// Package registry provides a global registry for game factories.
// Rulesets register themselves in init() functions, allowing the frontends
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/horse-dash/internal/config"
	"github.com/vovakirdan/horse-dash/internal/core"
	"github.com/vovakirdan/horse-dash/internal/draw"
)

// Game is the interface every registered ruleset implements.
// Games contain pure logic with no frontend dependencies (no Bubble Tea, no
// ebiten). The frontends handle input mapping, timing, and painting.
type Game interface {
	// ID returns the ruleset identifier (e.g., "stamina", "gate").
	// Used for CLI commands and the run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh run. The RuntimeConfig provides the field size,
	// the RNG seed and the recipient.
	Reset(cfg core.RuntimeConfig)

	// Resize re-synchronizes the field with a new surface size without
	// restarting the run.
	Resize(w, h int)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Jump, Pause, etc.).
	Step(in core.InputFrame) core.StepResult

	// Render emits the current frame into the display list.
	// The list is reset by the game.
	Render(dst *draw.List)

	// State returns the current game state.
	State() core.GameState

	// Recipient returns who the current run is for.
	Recipient() config.Recipient
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Options are passed to factories. Empty paths use the default config
// search order.
type Options struct {
	ConfigPath     string // Custom ruleset YAML
	RecipientsPath string // Custom recipient table YAML
	Logger         *log.Logger
}

// Factory is a function that creates a new instance of a game.
type Factory func(opts Options) Game

type entry struct {
	factory Factory
	title   string
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: title}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(opts), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
