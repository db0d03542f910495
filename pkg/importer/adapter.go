// Package importer downloads and installs the catalog's external
// inputs: the species dataset sheet and the category icon pack. Each
// input has an Adapter that knows its URL, its place in the application
// root, and how to verify what it fetched.
package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Adapter imports one external source into the application root layout.
type Adapter interface {
	// ID is the adapter's unique name, used on the CLI and as the
	// sources-database key.
	ID() string
	// Target is the root-relative path the adapter installs to.
	Target() string
	Description() string
	// DefaultURL seeds the sources database; operators can override it
	// there without rebuilding.
	DefaultURL() string
	License() string
	// Import fetches sourceURL and installs the result under rootDir.
	Import(ctx context.Context, sourceURL, rootDir string) error
}

var (
	adaptersMu sync.RWMutex
	adapters   = map[string]Adapter{}
)

// Register adds an adapter. Called from adapter init functions.
func Register(a Adapter) {
	adaptersMu.Lock()
	adapters[a.ID()] = a
	adaptersMu.Unlock()
}

// Get looks an adapter up by id.
func Get(id string) (Adapter, error) {
	adaptersMu.RLock()
	defer adaptersMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns every registered adapter, ordered by id.
func All() []Adapter {
	adaptersMu.RLock()
	defer adaptersMu.RUnlock()
	out := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
