// Package registry provides a global registry for presentation backends.
// Backends register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
)

// Backend presents a game and feeds it keyboard input.
// Each backend owns its frame loop and calls Game.Frame once per tick.
type Backend interface {
	// ID returns a unique identifier for this backend (e.g., "terminal").
	// Used by the --backend flag.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run plays g until it stops, ctx is cancelled or a device fails.
	Run(ctx context.Context, g *breakout.Game, cfg core.RuntimeConfig) error
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a backend.
type Factory func() Backend

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered backends, sorted by ID.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for id := range factories {
		result = append(result, BackendInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new backend by its ID.
// Returns an error if the backend ID is not registered.
func Create(id string) (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", id)
	}

	return f(), nil
}

// Exists checks if a backend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
