package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes characters and drops combining marks, so
// "Café" and "Cafe" normalize identically.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize returns the canonical comparison form of text: lowercased,
// diacritics stripped, punctuation and hyphens folded to single spaces,
// whitespace collapsed, trimmed. Empty input normalizes to "".
func Normalize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	if stripped, _, err := transform.String(diacriticStripper, lowered); err == nil {
		lowered = stripped
	}

	var b strings.Builder
	b.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			// Punctuation, hyphens, and whitespace all collapse to a
			// single separating space.
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// LooseEqual reports whether two strings normalize to the same form.
func LooseEqual(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// LooseContains reports whether one normalized form is a substring of the
// other. Empty forms never contain or get contained.
func LooseContains(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
