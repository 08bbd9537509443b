package dom

import (
	"strings"
	"unicode"
)

// Marker tokens substituted for characters that are legal in XML names
// but not in identifiers. Escaping them distinctly keeps namespaced and
// dashed names recoverable.
const (
	ColonMarker = "_COLON_"
	DashMarker  = "_DASH_"
)

// NormalizeName maps an element or attribute name onto a safe identifier
// key. Colons and dashes become their marker tokens; any remaining rune
// that is not a letter, digit or underscore becomes an underscore, and a
// leading digit is prefixed. Normalization is deterministic and never
// fails.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, ":", ColonMarker)
	name = strings.ReplaceAll(name, "-", DashMarker)
	return sanitize(name)
}

func sanitize(name string) string {
	if name == "" {
		return "x"
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('x')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
