// CLAUDE:SUMMARY Slug derivation from scientific names plus the per-build memoizing Slugger.
package flora

import "strings"

// Slugify derives a lowercase, hyphen-separated, URL/filesystem-safe id
// from a name: whitespace/underscore runs become one hyphen, everything
// but [a-z0-9-] is dropped, hyphen runs collapse, no edge hyphens.
// Deterministic; distinct names may still collide.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	pendingHyphen := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			pendingHyphen = true
		default:
		}
	}
	return b.String()
}

// Slugger memoizes Slugify by exact input. One Slugger is owned by each
// catalog build pass; it is not safe for concurrent use and never
// outlives the snapshot it helped build.
type Slugger struct {
	cache map[string]string
}

func NewSlugger() *Slugger {
	return &Slugger{cache: make(map[string]string)}
}

// Slug returns the memoized slug for name.
func (s *Slugger) Slug(name string) string {
	if slug, ok := s.cache[name]; ok {
		return slug
	}
	slug := Slugify(name)
	s.cache[name] = slug
	return slug
}
