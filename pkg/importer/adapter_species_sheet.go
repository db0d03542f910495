// CLAUDE:SUMMARY Import adapter for the species dataset sheet: downloads the CSV export and installs it under data/.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/florakit/herbarium/pkg/dataset"
	"github.com/florakit/herbarium/pkg/flora"
)

func init() {
	Register(&speciesSheetAdapter{})
}

type speciesSheetAdapter struct{}

func (a *speciesSheetAdapter) ID() string          { return "species-sheet" }
func (a *speciesSheetAdapter) Target() string      { return "data/species.csv" }
func (a *speciesSheetAdapter) Description() string { return "Species dataset sheet (CSV export)" }
func (a *speciesSheetAdapter) DefaultURL() string {
	return "https://data.florakit.dev/herbarium/species.csv"
}
func (a *speciesSheetAdapter) License() string { return "CC BY 4.0" }

func (a *speciesSheetAdapter) Import(ctx context.Context, sourceURL, rootDir string) error {
	dlDir := filepath.Join(rootDir, "data", "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	tmpPath := filepath.Join(dlDir, "species.csv")
	fmt.Printf("  downloading %s...\n", sourceURL)
	if err := downloadFile(ctx, sourceURL, tmpPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	// Sanity-check before installing: the sheet must parse and carry a
	// Scientific name column somewhere.
	rows, err := dataset.ReadFile(tmpPath, dataset.FormatSpec{Delimiter: ",", HasHeader: true}, nil)
	if err != nil {
		return fmt.Errorf("verify sheet: %w", err)
	}
	named := 0
	for _, row := range rows {
		if row[flora.ColScientificName] != "" {
			named++
		}
	}
	if named == 0 {
		return fmt.Errorf("verify sheet: no rows with a %q value", flora.ColScientificName)
	}
	fmt.Printf("  %d species rows\n", named)

	dest := filepath.Join(rootDir, filepath.FromSlash(a.Target()))
	if err := ensureDir(filepath.Dir(dest)); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("install sheet: %w", err)
	}
	return nil
}
