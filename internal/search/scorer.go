// file: internal/search/scorer.go
// version: 1.1.0
// guid: 95d22813-1b25-4917-9aa0-83405d84bc4d

package search

import (
	"strings"

	"github.com/practiceops/practice-directory/internal/models"
)

// Weights holds the additive scoring constants. The values are hand-tuned
// against real directory queries; tests assert relative ordering rather than
// exact sums so the constants stay tunable.
type Weights struct {
	CodeExact     int
	NameExact     int
	NamePrefix    int
	NameSubstring int
	PostcodeExact int
	CityExact     int

	TokenNameWord      int
	TokenNameSubstring int
	TokenCityPostcode  int
	TokenAddress       int

	// Fuzzy bonuses are ceilings: the contribution is ceiling minus edit
	// distance, floored at zero.
	NameFuzzyCeiling int
	CodeFuzzyCeiling int
}

// DefaultWeights returns the production scoring constants.
func DefaultWeights() Weights {
	return Weights{
		CodeExact:          120,
		NameExact:          100,
		NamePrefix:         60,
		NameSubstring:      40,
		PostcodeExact:      45,
		CityExact:          15,
		TokenNameWord:      20,
		TokenNameSubstring: 15,
		TokenCityPostcode:  10,
		TokenAddress:       8,
		NameFuzzyCeiling:   30,
		CodeFuzzyCeiling:   20,
	}
}

// Score computes the relevance of one candidate against a normalized query
// and its tokens. The signals are independent and additive, except that a
// token counts as either a whole word in the name or a substring of it,
// never both. Missing fields normalize to "" and simply contribute nothing.
func Score(c *models.PracticeRecord, query string, tokens []string, w Weights) (int, models.Highlight) {
	name := Normalize(c.Name)
	code := Normalize(c.ODSCode)
	postcode := NormalizeField(c.Postcode)
	city := NormalizeField(c.City)
	address := NormalizeField(c.AddressLine1)

	score := 0
	highlight := models.Highlight{Fields: []string{}}

	if code != "" && code == query {
		score += w.CodeExact
		highlight.Fields = append(highlight.Fields, "ods_code")
		highlight.ExactMatch = true
	}
	if name != "" && name == query {
		score += w.NameExact
		highlight.Fields = append(highlight.Fields, "name")
		highlight.ExactMatch = true
	}
	if strings.HasPrefix(name, query) {
		score += w.NamePrefix
	}
	if strings.Contains(name, query) {
		score += w.NameSubstring
	}
	if postcode != "" && postcode == query {
		score += w.PostcodeExact
		highlight.Fields = append(highlight.Fields, "postcode")
	}
	if city != "" && city == query {
		score += w.CityExact
		highlight.Fields = append(highlight.Fields, "city")
	}

	nameWords := strings.Fields(name)
	for _, tok := range tokens {
		if containsWord(nameWords, tok) {
			score += w.TokenNameWord
		} else if strings.Contains(name, tok) {
			score += w.TokenNameSubstring
		}
		if strings.Contains(city, tok) || strings.Contains(postcode, tok) {
			score += w.TokenCityPostcode
		}
		if strings.Contains(address, tok) {
			score += w.TokenAddress
		}
	}

	if bonus := w.NameFuzzyCeiling - Levenshtein(name, query); bonus > 0 {
		score += bonus
	}
	if bonus := w.CodeFuzzyCeiling - Levenshtein(code, query); bonus > 0 {
		score += bonus
	}

	return score, highlight
}

func containsWord(words []string, tok string) bool {
	for _, w := range words {
		if w == tok {
			return true
		}
	}
	return false
}
