package upc

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// PlaceholderPrefix starts the name given to products no database recognised
const PlaceholderPrefix = "Unknown Product"

const minLength = 6

// Fold narrows full-width scanner output and drops whitespace. Dashes and
// other punctuation are kept, so it suits barcodes that carry them.
func Fold(raw string) string {
	return strip(width.Narrow.String(raw), unicode.IsSpace)
}

// Normalize folds product UPCs to plain ASCII digits/letters: full-width
// characters are narrowed, whitespace and dashes are dropped.
func Normalize(raw string) string {
	return strip(Fold(raw), func(r rune) bool { return r == '-' })
}

func strip(s string, drop func(rune) bool) string {
	return strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, s)
}

// Valid reports whether a normalised code is long enough to look up
func Valid(code string) bool {
	return len(code) >= minLength
}

// PlaceholderName is stored for products created from an unrecognised code
func PlaceholderName(code string) string {
	return fmt.Sprintf("%s - UPC %s", PlaceholderPrefix, code)
}

// IsPlaceholderName reports whether name was produced by PlaceholderName
func IsPlaceholderName(name string) bool {
	return strings.HasPrefix(name, PlaceholderPrefix)
}
