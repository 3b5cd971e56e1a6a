package glyph

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold maps s onto the atlas range: combining marks are removed after
// canonical decomposition, so "é" becomes "e", and every remaining rune
// outside printable ASCII except '\n' becomes '?'.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || (r >= firstRune && r <= lastRune) {
			return r
		}
		return '?'
	}, folded)
}
