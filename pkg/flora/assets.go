// CLAUDE:SUMMARY Asset index construction: normalized basename -> root-relative path maps built from image directories.
package flora

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// allowedImageExt is the extension whitelist shared by icon indexing and
// photo listing. Lowercase, including the dot.
var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
}

// IsImagePath reports whether path has an allowed image extension.
func IsImagePath(path string) bool {
	return allowedImageExt[strings.ToLower(filepath.Ext(path))]
}

// AssetIndex maps a normalized key to a root-relative asset path.
// Immutable after construction.
type AssetIndex map[string]string

// BuildAssetIndex scans dir for image files and maps the normalized
// basename of each to its appRoot-relative path (forward slashes, leading
// slash). A missing directory yields an empty index, not an error.
// os.ReadDir lists lexically, so when two filenames normalize to the same
// key the lexically later one wins, on every platform.
func BuildAssetIndex(dir, appRoot string) AssetIndex {
	idx := make(AssetIndex)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return idx
	}

	var collisions int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !IsImagePath(name) {
			continue
		}
		key := NormalizeKey(strings.TrimSuffix(name, filepath.Ext(name)))
		if _, exists := idx[key]; exists {
			collisions++
		}
		idx[key] = rootRelative(filepath.Join(dir, name), appRoot)
	}

	if collisions > 0 {
		slog.Warn("asset key collisions after normalization", "dir", dir, "collisions", collisions)
	}
	return idx
}

// Lookup returns the asset path for an already-normalized key.
func (idx AssetIndex) Lookup(key string) (string, bool) {
	p, ok := idx[key]
	return p, ok
}

// rootRelative turns an on-disk path into the exposed form: relative to
// appRoot, forward slashes, leading slash.
func rootRelative(path, appRoot string) string {
	rel, err := filepath.Rel(appRoot, path)
	if err != nil {
		rel = path
	}
	return "/" + filepath.ToSlash(rel)
}
