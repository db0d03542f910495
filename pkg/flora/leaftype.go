// CLAUDE:SUMMARY Leaf-type taxonomy parser: ordered first-match-wins rule table over free-text descriptions.
package flora

import (
	"regexp"
	"strings"
)

// Top-level leaf categories as they appear in records and filters.
const (
	LeafSimple    = "Simple"
	LeafPinnately = "Pinnately compound"
	LeafPalmately = "Palmately compound"
)

// LeafToplevel is the fixed category list exposed in FiltersSummary.
var LeafToplevel = []string{LeafSimple, LeafPinnately, LeafPalmately}

// LeafSubtypes is the fixed possible-subtype list exposed in FiltersSummary.
var LeafSubtypes = []string{"single", "double"}

// LeafClassification is the parsed (category, subtype) pair. Empty
// strings mean "unknown" / "no subtype".
type LeafClassification struct {
	Category string
	Subtype  string
}

var subtypeTag = regexp.MustCompile(`(?i)\((single|double|triple)\)`)

// leafRule is one classification heuristic. Rules are evaluated in
// order; the first matching rule decides the category, and its extractor
// (if any) pulls the subtype out of the original text.
type leafRule struct {
	match    func(lower string) bool
	category string
	subtype  func(raw string) string
}

// The dataset uses inconsistent free-text leaf descriptions; this ordered
// heuristic is kept exactly as the data demands it. In particular a bare
// "compound" resolves to Pinnately compound, a known bias in the source
// labels, not something to fix here.
var leafRules = []leafRule{
	{
		match:    func(l string) bool { return strings.HasPrefix(l, "simple") || strings.Contains(l, "simple") },
		category: LeafSimple,
	},
	{
		match: func(l string) bool {
			return strings.HasPrefix(l, "pinnately") || strings.Contains(l, "pinnate") || strings.Contains(l, "compound")
		},
		category: LeafPinnately,
		subtype: func(raw string) string {
			m := subtypeTag.FindStringSubmatch(raw)
			if m == nil {
				return ""
			}
			return strings.ToLower(m[1])
		},
	},
	{
		match:    func(l string) bool { return strings.HasPrefix(l, "palmately") || strings.Contains(l, "palmate") },
		category: LeafPalmately,
	},
}

// ClassifyLeaf parses a raw "Leaf type" cell into a classification.
// Unrecognized text yields the zero classification.
func ClassifyLeaf(raw string) LeafClassification {
	t := strings.TrimSpace(raw)
	lower := strings.ToLower(t)
	for _, rule := range leafRules {
		if !rule.match(lower) {
			continue
		}
		c := LeafClassification{Category: rule.category}
		if rule.subtype != nil {
			c.Subtype = rule.subtype(t)
		}
		return c
	}
	return LeafClassification{}
}
