package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes text for comparison:
//   - surrounding whitespace is trimmed
//   - case is folded without locale rules
//   - diacritics are removed ("á" -> "a", "ñ" -> "n")
//   - whitespace runs collapse to a single space
//
// Normalize is total and idempotent.
func Normalize(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	s = removeDiacritics(s)
	return strings.Join(strings.Fields(s), " ")
}

// removeDiacritics decomposes s, drops nonspacing marks and recomposes.
func removeDiacritics(s string) string {
	// transform.Chain carries state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
