// CLAUDE:SUMMARY Enriched species record and filters-summary types served by the catalog.
package flora

// RecordIcons carries the resolved icon paths, each optional.
type RecordIcons struct {
	Species string `json:"species,omitempty"`
	Leaf    string `json:"leaf,omitempty"`
	Fruit   string `json:"fruit,omitempty"`
}

// SpeciesRecord is one fully-enriched dataset row. Built once at load
// time and immutable afterwards.
type SpeciesRecord struct {
	ID              string      `json:"id"`
	SrNo            string      `json:"sr_no"`
	ScientificName  string      `json:"scientific_name"`
	Etymology       string      `json:"etymology"`
	CommonName      string      `json:"common_name"`
	Habitat         string      `json:"habitat"`
	Phenology       string      `json:"phenology"`
	Identification  string      `json:"identification"`
	LeafTypeRaw     string      `json:"leaf_type_raw"`
	LeafCategory    string      `json:"leaf_category,omitempty"`
	LeafSubtype     string      `json:"leaf_subtype,omitempty"`
	FruitType       string      `json:"fruit_type"`
	SeedGermination string      `json:"seed_germination"`
	Pest            string      `json:"pest"`
	Photos          []string    `json:"photos"`
	Icons           RecordIcons `json:"icons"`
}

// FiltersSummary is the aggregate read-only view used by list clients to
// render filter chips.
type FiltersSummary struct {
	LeafToplevel   []string          `json:"leaf_toplevel"`
	LeafSubtypes   []string          `json:"leaf_subtypes_possible"`
	FruitTypes     []string          `json:"fruit_types"`
	LeafChipIcons  map[string]string `json:"leaf_chip_icons"`
	FruitChipIcons map[string]string `json:"fruit_chip_icons"`
}
