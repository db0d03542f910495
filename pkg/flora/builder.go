// CLAUDE:SUMMARY Record builder: turns raw dataset rows into an immutable enriched snapshot plus filters summary.
package flora

import "sort"

// Dataset column names. A row missing any of these simply reads as empty.
const (
	ColSrNo            = "Sr No"
	ColScientificName  = "Scientific name"
	ColEtymology       = "Etymology"
	ColCommonName      = "Common name"
	ColHabitat         = "Habitat"
	ColPhenology       = "Phenology"
	ColIdentification  = "Identification Characters"
	ColLeafType        = "Leaf type"
	ColFruitType       = "Fruit Type"
	ColSeedGermination = "Seed Germination"
	ColPest            = "Pest"
)

// RequiredColumns lists every column a source sheet is expected to carry.
var RequiredColumns = []string{
	ColSrNo, ColScientificName, ColEtymology, ColCommonName, ColHabitat,
	ColPhenology, ColIdentification, ColLeafType, ColFruitType,
	ColSeedGermination, ColPest,
}

// Snapshot is one consistent, immutable view of the whole catalog:
// records in source order, the id-keyed map, and the filters summary.
// Readers share it by pointer; a reload builds a new one and swaps.
type Snapshot struct {
	Icons   IconSet
	Records []*SpeciesRecord
	ByID    map[string]*SpeciesRecord
	Filters FiltersSummary
}

// Builder assembles a Snapshot from raw rows using pre-built asset
// indexes and the on-disk photo layout.
type Builder struct {
	Icons     IconSet
	PhotoRoot string
	AppRoot   string
}

// Build enriches every row into a SpeciesRecord and aggregates the
// filters summary. Rows with a blank scientific name are not records.
// Duplicate slugs: the map keeps the later record, the list keeps both.
func (b Builder) Build(rows []map[string]string) *Snapshot {
	slugs := NewSlugger()
	snap := &Snapshot{
		Icons:   b.Icons,
		Records: []*SpeciesRecord{},
		ByID:    make(map[string]*SpeciesRecord),
	}

	for _, row := range rows {
		sci := ToDisplayString(row[ColScientificName])
		if sci == "" {
			continue
		}
		com := ToDisplayString(row[ColCommonName])
		id := slugs.Slug(sci)

		leafRaw := ToDisplayString(row[ColLeafType])
		leaf := ClassifyLeaf(leafRaw)
		fruit := ToDisplayString(row[ColFruitType])

		rec := &SpeciesRecord{
			ID:              id,
			SrNo:            ToDisplayString(row[ColSrNo]),
			ScientificName:  sci,
			Etymology:       ToDisplayString(row[ColEtymology]),
			CommonName:      com,
			Habitat:         ToDisplayString(row[ColHabitat]),
			Phenology:       ToDisplayString(row[ColPhenology]),
			Identification:  ToDisplayString(row[ColIdentification]),
			LeafTypeRaw:     leafRaw,
			LeafCategory:    leaf.Category,
			LeafSubtype:     leaf.Subtype,
			FruitType:       fruit,
			SeedGermination: ToDisplayString(row[ColSeedGermination]),
			Pest:            ToDisplayString(row[ColPest]),
			Photos:          []string{},
		}

		if photos := ResolvePhotos(b.PhotoRoot, b.AppRoot, id); photos != nil {
			rec.Photos = photos
		}
		if p, ok := b.Icons.ResolveSpeciesIcon(sci, com); ok {
			rec.Icons.Species = p
		}
		if p, ok := b.Icons.ResolveLeafIcon(leaf.Category, leaf.Subtype); ok {
			rec.Icons.Leaf = p
		}
		if p, ok := b.Icons.ResolveFruitIcon(fruit); ok {
			rec.Icons.Fruit = p
		}

		snap.Records = append(snap.Records, rec)
		snap.ByID[id] = rec
	}

	snap.Filters = b.buildFilters(snap.Records)
	return snap
}

// buildFilters computes the cross-record aggregate: fixed category and
// subtype lists, sorted distinct fruit types, and one chip icon per
// category and fruit type (absent when no icon matches).
func (b Builder) buildFilters(records []*SpeciesRecord) FiltersSummary {
	seen := make(map[string]bool)
	fruitTypes := []string{}
	for _, rec := range records {
		ft := rec.FruitType
		if ft == "" || seen[ft] {
			continue
		}
		seen[ft] = true
		fruitTypes = append(fruitTypes, ft)
	}
	sort.Strings(fruitTypes)

	leafChips := make(map[string]string, len(LeafToplevel))
	for _, cat := range LeafToplevel {
		if p, ok := b.Icons.ResolveLeafIcon(cat, ""); ok {
			leafChips[cat] = p
		}
	}
	fruitChips := make(map[string]string, len(fruitTypes))
	for _, ft := range fruitTypes {
		if p, ok := b.Icons.ResolveFruitIcon(ft); ok {
			fruitChips[ft] = p
		}
	}

	return FiltersSummary{
		LeafToplevel:   LeafToplevel,
		LeafSubtypes:   LeafSubtypes,
		FruitTypes:     fruitTypes,
		LeafChipIcons:  leafChips,
		FruitChipIcons: fruitChips,
	}
}
