// file: internal/search/engine.go
// version: 1.2.0
// guid: e009a5b0-d829-4624-b279-09cbf1b835e2

package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/practiceops/practice-directory/internal/models"
)

// Fetch-size caps keep the scoring pass bounded regardless of the requested
// limit. Name searches over-fetch more aggressively because the
// token-coverage filter discards candidates the store's coarse match let in.
const (
	nameFetchFactor   = 5
	nameFetchCap      = 500
	prefixFetchFactor = 3
	prefixFetchCap    = 300
)

// ValidationError marks a request the caller got wrong; handlers map it to a
// 4xx response instead of a 5xx.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid search request: " + e.Reason
}

// CandidateStore is the engine's single external collaborator. It performs
// only a coarse, cheap pre-filter (substring/prefix match on the relevant
// fields); all relevance ranking belongs to the engine.
type CandidateStore interface {
	FetchCandidates(ctx context.Context, searchType models.SearchType, query string, fetchLimit int, includeRaw bool) ([]models.PracticeRecord, error)
}

// Engine ranks practice-directory candidates for one search request at a
// time. It holds no per-request state, so a single Engine serves concurrent
// requests without coordination.
type Engine struct {
	store   CandidateStore
	weights Weights
}

// NewEngine creates an engine with the default scoring weights.
func NewEngine(store CandidateStore) *Engine {
	return NewEngineWithWeights(store, DefaultWeights())
}

// NewEngineWithWeights creates an engine with custom scoring weights.
func NewEngineWithWeights(store CandidateStore, w Weights) *Engine {
	return &Engine{store: store, weights: w}
}

// Search runs the full pipeline: validate, fetch, filter, score, sort,
// truncate. Store failures fail the whole request; an empty filtered set is
// a successful response with zero results.
func (e *Engine) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &ValidationError{Reason: "query must not be empty"}
	}
	searchType, err := models.ParseSearchType(req.SearchType)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	limit := clampLimit(req.Options.Limit)
	radius := models.ParseRadiusMode(req.Options.Radius)

	normalized := Normalize(query)
	tokens := Tokenize(normalized)

	candidates, err := e.store.FetchCandidates(ctx, searchType, query, fetchLimit(searchType, limit), req.Options.IncludeRaw)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	switch searchType {
	case models.SearchTypePostcode:
		candidates = FilterByRadius(candidates, query, radius)
	case models.SearchTypeType:
		candidates = FilterByType(candidates, req.Options.PracticeType)
	case models.SearchTypeName:
		if len(tokens) > 0 {
			covered := candidates[:0:0]
			for i := range candidates {
				if coversAllTokens(&candidates[i], tokens) {
					covered = append(covered, candidates[i])
				}
			}
			candidates = covered
		}
	}

	results := make([]models.ScoredResult, 0, len(candidates))
	for i := range candidates {
		score, highlight := Score(&candidates[i], normalized, tokens, e.weights)
		rec := candidates[i]
		if !req.Options.IncludeRaw {
			rec.RawData = nil
		}
		results = append(results, models.ScoredResult{
			PracticeRecord: rec,
			Score:          score,
			Highlight:      highlight,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		ni, nj := strings.ToLower(results[i].Name), strings.ToLower(results[j].Name)
		if ni != nj {
			return ni < nj
		}
		// ODS codes are unique, so the order is total.
		return results[i].ODSCode < results[j].ODSCode
	})

	total := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	return &models.SearchResponse{
		Results:    results,
		Total:      total,
		Returned:   len(results),
		SearchType: searchType,
		Query:      query,
	}, nil
}

func clampLimit(limit int) int {
	if limit == 0 {
		return models.DefaultSearchLimit
	}
	if limit < models.MinSearchLimit {
		return models.MinSearchLimit
	}
	if limit > models.MaxSearchLimit {
		return models.MaxSearchLimit
	}
	return limit
}

func fetchLimit(searchType models.SearchType, limit int) int {
	switch searchType {
	case models.SearchTypeName:
		return min(limit*nameFetchFactor, nameFetchCap)
	case models.SearchTypePostcode, models.SearchTypeType:
		return min(limit*prefixFetchFactor, prefixFetchCap)
	default:
		return min(limit*prefixFetchFactor, prefixFetchCap)
	}
}
