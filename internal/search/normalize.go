// file: internal/search/normalize.go
// version: 1.0.0
// guid: 85632e2a-1b5c-4e18-9184-f14114b61600

package search

import (
	"strings"
	"unicode"
)

// Normalize lowercases a string, collapses runs of whitespace to a single
// space, and trims the ends. It is total: every input has a defined output.
func Normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeField is a nil-safe Normalize for optional record fields.
func NormalizeField(s *string) string {
	if s == nil {
		return ""
	}
	return Normalize(*s)
}

// Tokenize splits a normalized query into its non-empty whitespace-delimited
// tokens. An empty query yields no tokens.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}

// NormalizePostcode strips all whitespace and uppercases, the canonical form
// for postcode prefix comparisons ("SW1A 1AA" -> "SW1A1AA").
func NormalizePostcode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// NormalizePostcodeField is a nil-safe NormalizePostcode.
func NormalizePostcodeField(s *string) string {
	if s == nil {
		return ""
	}
	return NormalizePostcode(*s)
}

// PostcodeArea extracts the UK postcode area prefix from a normalized
// postcode: the leading letters plus the digit run that follows them
// ("SW1A1AA" -> "SW1"). When the postcode has no letter-to-digit boundary
// the first 4 characters are used instead.
func PostcodeArea(normalized string) string {
	runes := []rune(normalized)
	letters := 0
	for letters < len(runes) && unicode.IsLetter(runes[letters]) {
		letters++
	}
	if letters > 0 && letters < len(runes) && unicode.IsDigit(runes[letters]) {
		end := letters
		for end < len(runes) && unicode.IsDigit(runes[end]) {
			end++
		}
		return string(runes[:end])
	}
	if len(runes) > 4 {
		return string(runes[:4])
	}
	return normalized
}
