// file: internal/search/filters_test.go
// version: 1.0.0
// guid: 1da9fd23-4683-4a1d-96cd-e43317f473c8

package search

import (
	"testing"

	"github.com/practiceops/practice-directory/internal/models"
)

func strPtr(s string) *string { return &s }

func practice(code, name, postcode string) models.PracticeRecord {
	rec := models.PracticeRecord{ODSCode: code, Name: name}
	if postcode != "" {
		rec.Postcode = strPtr(postcode)
	}
	return rec
}

func codes(records []models.PracticeRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ODSCode)
	}
	return out
}

func TestFilterByRadius_Exact(t *testing.T) {
	candidates := []models.PracticeRecord{
		practice("A1", "Riverside Medical Practice", "SW1A1AA"),
		practice("A2", "Park Lane Surgery", "SW1A 2BB"),
		practice("A3", "No Postcode Clinic", ""),
	}
	got := FilterByRadius(candidates, "SW1A 1AA", models.RadiusExact)
	if len(got) != 1 || got[0].ODSCode != "A1" {
		t.Errorf("exact radius kept %v, want [A1]", codes(got))
	}
}

func TestFilterByRadius_District(t *testing.T) {
	candidates := []models.PracticeRecord{
		practice("A1", "One", "SW1A 1AA"),
		practice("A2", "Two", "SW7 2AZ"),
		practice("A3", "Three", "W1K 1PN"),
	}
	got := FilterByRadius(candidates, "SW1A 1AA", models.RadiusDistrict)
	want := []string{"A1", "A2"}
	if len(got) != 2 || got[0].ODSCode != want[0] || got[1].ODSCode != want[1] {
		t.Errorf("district radius kept %v, want %v", codes(got), want)
	}
}

func TestFilterByRadius_Area(t *testing.T) {
	candidates := []models.PracticeRecord{
		practice("A1", "One", "SW1A 1AA"),
		practice("A2", "Two", "SW1X 9NH"),
		practice("A3", "Three", "SW7 2AZ"),
	}
	// Area of SW1A1AA is SW1; SW7 does not share it.
	got := FilterByRadius(candidates, "SW1A 1AA", models.RadiusArea)
	want := []string{"A1", "A2"}
	if len(got) != 2 || got[0].ODSCode != want[0] || got[1].ODSCode != want[1] {
		t.Errorf("area radius kept %v, want %v", codes(got), want)
	}
}

func TestFilterByRadius_EmptyQueryPassesThrough(t *testing.T) {
	candidates := []models.PracticeRecord{
		practice("A1", "One", "SW1A 1AA"),
		practice("A2", "Two", ""),
	}
	got := FilterByRadius(candidates, "   ", models.RadiusArea)
	if len(got) != 2 {
		t.Errorf("empty query postcode should not filter, kept %v", codes(got))
	}
}

func TestFilterByRadius_DropsMissingPostcodes(t *testing.T) {
	candidates := []models.PracticeRecord{
		practice("A1", "One", "SW1A 1AA"),
		practice("A2", "Two", ""),
	}
	got := FilterByRadius(candidates, "SW1A 1AA", models.RadiusArea)
	if len(got) != 1 || got[0].ODSCode != "A1" {
		t.Errorf("records without a postcode must be dropped, kept %v", codes(got))
	}
}

func TestFilterByType(t *testing.T) {
	candidates := []models.PracticeRecord{
		practice("A1", "Riverside Medical Practice", ""),
		practice("A2", "High Street Dental Surgery", ""),
		practice("A3", "Urgent Care Centre", ""),
	}

	tests := []struct {
		practiceType string
		want         []string
	}{
		{"all", []string{"A1", "A2", "A3"}},
		{"", []string{"A1", "A2", "A3"}},
		{"dental", []string{"A2"}},
		{"urgent-care", []string{"A3"}},
		{"DENTAL", []string{"A2"}},
		{"nonexistent", []string{}},
	}
	for _, tt := range tests {
		got := codes(FilterByType(candidates, tt.practiceType))
		if len(got) != len(tt.want) {
			t.Errorf("FilterByType(%q) kept %v, want %v", tt.practiceType, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("FilterByType(%q) kept %v, want %v", tt.practiceType, got, tt.want)
				break
			}
		}
	}
}

func TestCoversAllTokens(t *testing.T) {
	rec := models.PracticeRecord{
		ODSCode:      "A81001",
		Name:         "Riverside Surgery",
		City:         strPtr("Middlesbrough"),
		Postcode:     strPtr("TS1 2AB"),
		AddressLine1: strPtr("1 Riverside Park"),
	}

	tests := []struct {
		tokens []string
		want   bool
	}{
		{[]string{"riverside"}, true},
		{[]string{"riverside", "surgery"}, true},
		{[]string{"riverside", "medical"}, false},
		{[]string{"middlesbrough"}, true},
		{[]string{"riverside", "park"}, true},
		{nil, true},
	}
	for _, tt := range tests {
		if got := coversAllTokens(&rec, tt.tokens); got != tt.want {
			t.Errorf("coversAllTokens(%v) = %v, want %v", tt.tokens, got, tt.want)
		}
	}
}
