// file: internal/search/filters.go
// version: 1.0.1
// guid: e7bf5611-e175-401e-978e-5e8756d7f1ba

package search

import (
	"strings"

	"github.com/practiceops/practice-directory/internal/models"
)

// FilterByRadius narrows candidates to those whose postcode shares the
// query's prefix at the requested granularity. Candidates without a postcode
// are dropped; they cannot participate in a postcode search. An empty query
// postcode leaves the candidate list untouched.
func FilterByRadius(candidates []models.PracticeRecord, rawPostcode string, mode models.RadiusMode) []models.PracticeRecord {
	queryPC := NormalizePostcode(rawPostcode)
	if queryPC == "" {
		return candidates
	}

	var prefix string
	switch mode {
	case models.RadiusExact:
		prefix = queryPC
	case models.RadiusDistrict:
		if len(queryPC) > 2 {
			prefix = queryPC[:2]
		} else {
			prefix = queryPC
		}
	case models.RadiusArea:
		prefix = PostcodeArea(queryPC)
	default:
		prefix = PostcodeArea(queryPC)
	}

	filtered := make([]models.PracticeRecord, 0, len(candidates))
	for _, c := range candidates {
		pc := NormalizePostcodeField(c.Postcode)
		if pc == "" {
			continue
		}
		if strings.HasPrefix(pc, prefix) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// FilterByType keeps candidates whose name contains the practice-type
// keyword. Hyphenated type slugs ("urgent-care") are matched as spaced
// keywords ("urgent care"). The sentinel "all" disables the filter.
func FilterByType(candidates []models.PracticeRecord, practiceType string) []models.PracticeRecord {
	if practiceType == "" || practiceType == "all" {
		return candidates
	}
	keyword := Normalize(strings.ReplaceAll(practiceType, "-", " "))
	if keyword == "" {
		return candidates
	}

	filtered := make([]models.PracticeRecord, 0, len(candidates))
	for _, c := range candidates {
		if strings.Contains(Normalize(c.Name), keyword) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// searchHaystack concatenates every searchable text field of a record, used
// for token-coverage checks in name searches.
func searchHaystack(c *models.PracticeRecord) string {
	parts := []string{
		Normalize(c.Name),
		NormalizeField(c.City),
		NormalizeField(c.Postcode),
		NormalizeField(c.AddressLine1),
	}
	return strings.Join(parts, " ")
}

// coversAllTokens reports whether every query token appears somewhere in the
// record's haystack. A candidate missing even one token is excluded no
// matter how well the others match.
func coversAllTokens(c *models.PracticeRecord, tokens []string) bool {
	haystack := searchHaystack(c)
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}
