// file: cmd/search_test.go
// version: 1.0.0
// guid: 0ddc4b1f-9a68-4e25-b7c3-51f0e8a29d46

package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/practiceops/practice-directory/internal/database"
	"github.com/practiceops/practice-directory/internal/models"
)

func strPtr(s string) *string { return &s }

func TestRunSearchAndPrintResults(t *testing.T) {
	store := database.NewMemoryStore()
	defer store.Close()

	records := []models.PracticeRecord{
		{ODSCode: "A81001", Name: "Riverside Dental Practice", Postcode: strPtr("SW1A 1AA"), City: strPtr("London")},
		{ODSCode: "B82001", Name: "Hillcrest Pharmacy", Postcode: strPtr("LS1 4DY"), City: strPtr("Leeds")},
	}
	for i := range records {
		if err := store.UpsertPractice(&records[i]); err != nil {
			t.Fatalf("UpsertPractice: %v", err)
		}
	}

	resp, err := runSearch(context.Background(), store, models.SearchRequest{
		SearchType: "name",
		Query:      "riverside dental",
	})
	if err != nil {
		t.Fatalf("runSearch: %v", err)
	}
	if resp.Returned != 1 {
		t.Fatalf("Returned = %d, want 1", resp.Returned)
	}

	var out strings.Builder
	printResults(&out, resp)
	got := out.String()
	if !strings.Contains(got, "A81001") || !strings.Contains(got, "Riverside Dental Practice") {
		t.Errorf("printResults output missing record: %q", got)
	}
	if !strings.Contains(got, "London, SW1A 1AA") {
		t.Errorf("printResults output missing location: %q", got)
	}
}

func TestRunSearch_InvalidType(t *testing.T) {
	store := database.NewMemoryStore()
	defer store.Close()

	_, err := runSearch(context.Background(), store, models.SearchRequest{
		SearchType: "wildcard",
		Query:      "anything",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown search type")
	}
}
