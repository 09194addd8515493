// file: cmd/search.go
// version: 1.0.0
// guid: f1a6c3e8-7b24-4d90-8e5f-2c9b0d41a768

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/practiceops/practice-directory/internal/models"
	"github.com/practiceops/practice-directory/internal/search"
)

func runSearch(ctx context.Context, store search.CandidateStore, req models.SearchRequest) (*models.SearchResponse, error) {
	return search.NewEngine(store).Search(ctx, req)
}

func printResults(w io.Writer, resp *models.SearchResponse) {
	fmt.Fprintf(w, "%d of %d results for %q (%s search)\n", resp.Returned, resp.Total, resp.Query, resp.SearchType)
	for i, r := range resp.Results {
		location := ""
		if r.City != nil {
			location = *r.City
		}
		if r.Postcode != nil {
			if location != "" {
				location += ", "
			}
			location += *r.Postcode
		}
		fmt.Fprintf(w, "%3d. [%4d] %-10s %s", i+1, r.Score, r.ODSCode, r.Name)
		if location != "" {
			fmt.Fprintf(w, " (%s)", location)
		}
		fmt.Fprintln(w)
	}
}
