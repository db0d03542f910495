// CLAUDE:SUMMARY Catalog: builds the whole enriched snapshot at load time and swaps it atomically on reload.
package flora

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// RowSource produces the raw dataset rows. A missing source yields zero
// rows and a nil error.
type RowSource func() ([]map[string]string, error)

// Config locates the on-disk inputs for one catalog.
type Config struct {
	// Root is the application root; every exposed asset path is
	// relative to it.
	Root string
	// PhotoRoot holds one subdirectory of photos per species slug.
	// Both "photos" and "Photos" casings are accepted.
	PhotoRoot string
	// IconsRoot holds the Species/ Leaf/ Fruit/ icon directories.
	IconsRoot string
	// Source reads the dataset rows.
	Source RowSource
}

// Catalog serves classification queries against the current snapshot.
// Load replaces the snapshot as a whole; in-flight readers keep whatever
// snapshot they started with.
type Catalog struct {
	mu   sync.RWMutex
	cfg  Config
	snap *Snapshot
}

// NewCatalog creates an empty catalog for the given inputs.
func NewCatalog(cfg Config) *Catalog {
	return &Catalog{cfg: cfg, snap: &Snapshot{ByID: map[string]*SpeciesRecord{}}}
}

// Load rebuilds the three asset indexes, re-reads the dataset, builds a
// fresh snapshot, and swaps it in. A missing or unreadable source is an
// empty dataset, not an error.
func (c *Catalog) Load() error {
	icons := IconSet{
		Species: BuildAssetIndex(filepath.Join(c.cfg.IconsRoot, "Species"), c.cfg.Root),
		Leaf:    BuildAssetIndex(filepath.Join(c.cfg.IconsRoot, "Leaf"), c.cfg.Root),
		Fruit:   BuildAssetIndex(filepath.Join(c.cfg.IconsRoot, "Fruit"), c.cfg.Root),
	}

	var rows []map[string]string
	if c.cfg.Source != nil {
		var err error
		rows, err = c.cfg.Source()
		if err != nil {
			slog.Warn("dataset unreadable, serving empty catalog", "error", err)
			rows = nil
		}
	}

	b := Builder{
		Icons:     icons,
		PhotoRoot: existingCasing(c.cfg.PhotoRoot),
		AppRoot:   c.cfg.Root,
	}
	snap := b.Build(rows)

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return nil
}

// Reload re-runs the whole load; the new snapshot replaces the old one
// as a unit.
func (c *Catalog) Reload() error {
	return c.Load()
}

// Snapshot returns the current immutable snapshot.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// ListAll returns all records in source order with the filters summary.
func (c *Catalog) ListAll() ([]*SpeciesRecord, FiltersSummary) {
	snap := c.Snapshot()
	return snap.Records, snap.Filters
}

// GetByID looks a record up by slug. The second result reports whether
// the id exists; an unknown id is the caller's not-found condition.
func (c *Catalog) GetByID(id string) (*SpeciesRecord, bool) {
	snap := c.Snapshot()
	rec, ok := snap.ByID[id]
	return rec, ok
}

// RecordCount returns the number of records in the current snapshot.
func (c *Catalog) RecordCount() int {
	return len(c.Snapshot().Records)
}

// IconCount returns the total number of indexed icon assets.
func (c *Catalog) IconCount() int {
	snap := c.Snapshot()
	return len(snap.Icons.Species) + len(snap.Icons.Leaf) + len(snap.Icons.Fruit)
}

// existingCasing returns path if it exists, otherwise tries the sibling
// with the base name's first letter case flipped (photo roots ship as
// both "photos" and "Photos"). Falls back to path.
func existingCasing(path string) string {
	if isDir(path) {
		return path
	}
	base := filepath.Base(path)
	if base == "" {
		return path
	}
	var alt string
	if base[0] >= 'a' && base[0] <= 'z' {
		alt = string(base[0]-'a'+'A') + base[1:]
	} else if base[0] >= 'A' && base[0] <= 'Z' {
		alt = string(base[0]-'A'+'a') + base[1:]
	} else {
		return path
	}
	altPath := filepath.Join(filepath.Dir(path), alt)
	if isDir(altPath) {
		return altPath
	}
	return path
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
