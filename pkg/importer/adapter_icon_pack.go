// CLAUDE:SUMMARY Import adapter for the category icon pack: downloads the ZIP and unpacks Species/Leaf/Fruit icons.
package importer

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/florakit/herbarium/pkg/flora"
)

func init() {
	Register(&iconPackAdapter{})
}

type iconPackAdapter struct{}

func (a *iconPackAdapter) ID() string          { return "icon-pack" }
func (a *iconPackAdapter) Target() string      { return "static/Icons" }
func (a *iconPackAdapter) Description() string { return "Category icon pack (species/leaf/fruit)" }
func (a *iconPackAdapter) DefaultURL() string {
	return "https://data.florakit.dev/herbarium/icons.zip"
}
func (a *iconPackAdapter) License() string { return "CC BY-SA 4.0" }

// iconCategories are the archive's expected top-level directories.
var iconCategories = map[string]bool{"Species": true, "Leaf": true, "Fruit": true}

func (a *iconPackAdapter) Import(ctx context.Context, sourceURL, rootDir string) error {
	dlDir := filepath.Join(rootDir, "static", "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	zipPath := filepath.Join(dlDir, "icons.zip")
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, zipPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	iconsRoot := filepath.Join(rootDir, filepath.FromSlash(a.Target()))
	extracted, err := extractIcons(zipPath, iconsRoot)
	if err != nil {
		return fmt.Errorf("unpack: %w", err)
	}
	fmt.Printf("  %d icons installed\n", extracted)
	return nil
}

// extractIcons writes the archive's Species/ Leaf/ Fruit/ image entries
// under iconsRoot, keeping the category directory and the base filename.
// Anything else in the archive is skipped.
func extractIcons(zipPath, iconsRoot string) (int, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()

	count := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Clean(strings.ReplaceAll(f.Name, `\`, "/"))
		parts := strings.Split(name, "/")
		if len(parts) < 2 || !iconCategories[parts[0]] {
			continue
		}
		base := parts[len(parts)-1]
		if !flora.IsImagePath(base) {
			continue
		}

		destDir := filepath.Join(iconsRoot, parts[0])
		if err := ensureDir(destDir); err != nil {
			return count, err
		}
		if err := extractEntry(f, filepath.Join(destDir, base)); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
