// file: internal/models/practice.go
// version: 1.1.0
// guid: e029fe6b-d684-4f94-b877-82f2df67264d

package models

import (
	"encoding/json"
	"fmt"
)

// SearchType selects which search mode the engine runs.
type SearchType string

const (
	SearchTypeName     SearchType = "name"
	SearchTypePostcode SearchType = "postcode"
	SearchTypeType     SearchType = "type"
)

// ParseSearchType validates a raw searchType value.
func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(s) {
	case SearchTypeName, SearchTypePostcode, SearchTypeType:
		return SearchType(s), nil
	default:
		return "", fmt.Errorf("unrecognized searchType: %q", s)
	}
}

// RadiusMode controls how wide the postcode-prefix filter casts.
type RadiusMode string

const (
	RadiusExact    RadiusMode = "exact"
	RadiusArea     RadiusMode = "area"
	RadiusDistrict RadiusMode = "district"
)

// ParseRadiusMode normalizes a raw radius value, defaulting to area when the
// value is missing or unrecognized.
func ParseRadiusMode(s string) RadiusMode {
	switch RadiusMode(s) {
	case RadiusExact, RadiusDistrict:
		return RadiusMode(s)
	default:
		return RadiusArea
	}
}

// PracticeRecord is a single healthcare facility in the directory.
// Records are owned by the ingestion pipeline; the search engine treats
// them as read-only.
type PracticeRecord struct {
	ODSCode      string          `json:"ods_code" db:"ods_code"`
	Name         string          `json:"name" db:"name"`
	Postcode     *string         `json:"postcode" db:"postcode"`
	City         *string         `json:"city" db:"city"`
	AddressLine1 *string         `json:"address_line1" db:"address_line1"`
	AddressLine2 *string         `json:"address_line2" db:"address_line2"`
	Phone        *string         `json:"phone" db:"phone"`
	Status       *string         `json:"status" db:"status"`
	PrimaryRole  *string         `json:"primary_role" db:"primary_role"`
	LastUpdated  *string         `json:"last_updated" db:"last_updated"`
	RawData      json.RawMessage `json:"raw_data,omitempty" db:"raw_data"`
}

// Highlight explains which fields of a record matched the query exactly.
type Highlight struct {
	Fields     []string `json:"fields"`
	ExactMatch bool     `json:"exactMatch"`
}

// ScoredResult is a practice record with its computed relevance score.
// Built fresh per request and never persisted.
type ScoredResult struct {
	PracticeRecord
	Score     int       `json:"score"`
	Highlight Highlight `json:"highlight"`
}

// Search limit bounds. Requests outside the range are clamped, not rejected.
const (
	MinSearchLimit     = 1
	MaxSearchLimit     = 200
	DefaultSearchLimit = 50
)

// SearchOptions tunes a single search request.
type SearchOptions struct {
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
	Radius       string `json:"radius"`
	PracticeType string `json:"practiceType"`
	IncludeRaw   bool   `json:"includeRaw"`
}

// SearchRequest is the engine's input, typically bound from a JSON POST body.
type SearchRequest struct {
	SearchType string        `json:"searchType"`
	Query      string        `json:"query"`
	Options    SearchOptions `json:"options"`
}

// SearchResponse carries the ordered, truncated result set. Total counts
// matches before truncation; Returned counts what survived the limit.
type SearchResponse struct {
	Results    []ScoredResult `json:"results"`
	Total      int            `json:"total"`
	Returned   int            `json:"returned"`
	SearchType SearchType     `json:"searchType"`
	Query      string         `json:"query"`
}
