// Package normalize cleans raw text before chunking.
//
// A word character is a Unicode letter, a Unicode number, or '_'.
// Whitespace is anything unicode.IsSpace reports. Everything else is
// dropped, whitespace runs collapse to a single ASCII space, and the
// result is lowercased with simple per-rune case mapping.
package normalize

import (
	"strings"
	"unicode"
)

// IsWordRune reports whether r survives normalization as part of a word.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Normalize strips punctuation, collapses whitespace, trims, and lowercases.
// Normalize is idempotent.
func Normalize(text string) string {
	kept := strings.Map(func(r rune) rune {
		if IsWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	// Fields both collapses runs and drops leading/trailing space.
	return strings.ToLower(strings.Join(strings.Fields(kept), " "))
}
