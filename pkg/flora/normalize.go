// CLAUDE:SUMMARY Canonical lookup-key normalization and total display-string coercion used by every matcher.
package flora

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeKey canonicalizes a display string into a lookup key:
// lowercase, hyphen/underscore runs folded to one space, everything but
// [a-z0-9 ] stripped, whitespace collapsed, trimmed. Idempotent.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			pendingSpace = true
		default:
			// punctuation and non-ASCII are dropped without a separator
		}
	}
	return b.String()
}

// ToDisplayString coerces any ingested cell value to trimmed text.
// Total: nil and unknown types never fail, they stringify.
func ToDisplayString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", x))
	}
}
