// Package textnorm canonicalizes answer and reference strings for comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var quoteReplacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"’", "'",
)

// Normalize lower-cases s, unifies quote glyphs, replaces every rune outside
// [a-z0-9äöüß], whitespace, '-' and '/' with a space, collapses whitespace
// runs and trims the result.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = cases.Lower(language.Und).String(s)
	s = quoteReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokens returns the space-separated tokens of the normalized text.
func Tokens(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// Equal reports whether a and b are identical after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == 'ä', r == 'ö', r == 'ü', r == 'ß':
		return true
	case r == '-', r == '/':
		return true
	}
	return unicode.IsSpace(r)
}
