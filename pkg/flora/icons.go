// CLAUDE:SUMMARY Fallback-chain icon resolvers (species/leaf/fruit) and the per-slug photo lister.
package flora

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// IconSet holds the three category indexes built once per snapshot.
type IconSet struct {
	Species AssetIndex
	Leaf    AssetIndex
	Fruit   AssetIndex
}

var parenSegment = regexp.MustCompile(`\([^)]*\)`)

// ResolveSpeciesIcon tries the scientific name, the common name, then
// each of those with parenthesized segments removed (when that yields a
// new non-empty candidate), and returns the first species-index hit.
func (s IconSet) ResolveSpeciesIcon(scientific, common string) (string, bool) {
	candidates := []string{scientific, common}
	for _, c := range []string{scientific, common} {
		stripped := strings.TrimSpace(parenSegment.ReplaceAllString(c, ""))
		if stripped != "" && !containsString(candidates, stripped) {
			candidates = append(candidates, stripped)
		}
	}
	for _, c := range candidates {
		if p, ok := s.Species.Lookup(NormalizeKey(c)); ok {
			return p, true
		}
	}
	return "", false
}

// leafIconChain returns the ordered lookup phrases for a classification.
// Unknown categories get no chain and therefore never match.
func leafIconChain(category, subtype string) []string {
	switch {
	case strings.HasPrefix(strings.ToLower(category), "simple"):
		return []string{"simple leaf", "simple"}
	case strings.HasPrefix(strings.ToLower(category), "pinnately"):
		switch subtype {
		case "single":
			return []string{"single compound", "pinnately single", "pinnately compound single"}
		case "double":
			return []string{"double compound", "pinnately double", "pinnately compound double"}
		default:
			return []string{"pinnately compound", "compound"}
		}
	case strings.HasPrefix(strings.ToLower(category), "palmately"):
		return []string{"palmately compound", "palmate", "palmately"}
	default:
		return nil
	}
}

// ResolveLeafIcon walks the category's phrase chain against the leaf
// index and returns the first hit.
func (s IconSet) ResolveLeafIcon(category, subtype string) (string, bool) {
	for _, phrase := range leafIconChain(category, subtype) {
		if p, ok := s.Leaf.Lookup(NormalizeKey(phrase)); ok {
			return p, true
		}
	}
	return "", false
}

// fruitAliases is kept for icon packs whose filenames differ from the
// dataset's casing; the lookup only fires on exact normalized equality.
var fruitAliases = []string{"pod", "capsule", "drupe", "other"}

// ResolveFruitIcon looks the normalized fruit-type text up directly,
// then through the fixed alias set.
func (s IconSet) ResolveFruitIcon(fruitType string) (string, bool) {
	if fruitType == "" {
		return "", false
	}
	key := NormalizeKey(fruitType)
	if p, ok := s.Fruit.Lookup(key); ok {
		return p, true
	}
	for _, alias := range fruitAliases {
		if key != alias {
			continue
		}
		if p, ok := s.Fruit.Lookup(alias); ok {
			return p, true
		}
	}
	return "", false
}

// ResolvePhotos lists the image files under photoRoot/slug, sorted by
// path, as appRoot-relative paths. No directory means no photos.
func ResolvePhotos(photoRoot, appRoot, slug string) []string {
	dir := filepath.Join(photoRoot, slug)
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil || len(matches) == 0 {
		return nil
	}
	sort.Strings(matches)

	var photos []string
	for _, m := range matches {
		if !IsImagePath(m) {
			continue
		}
		photos = append(photos, rootRelative(m, appRoot))
	}
	return photos
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
