// file: internal/server/practice_service.go
// version: 1.2.0
// guid: 5e0c7d21-84af-4b63-a9f2-1d6e3b90c8f7

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/practiceops/practice-directory/internal/config"
	"github.com/practiceops/practice-directory/internal/database"
	"github.com/practiceops/practice-directory/internal/models"
	"github.com/practiceops/practice-directory/internal/search"
)

const typeCountsCacheKey = "practice-type-counts"

// getPractice handles GET /api/practices/:code.
func (s *Server) getPractice(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		RespondWithBadRequest(c, "practice code is required")
		return
	}

	rec, err := s.store.GetPracticeByCode(code)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			RespondWithNotFound(c, "practice", code)
			return
		}
		RespondWithInternalError(c, "failed to load practice: "+err.Error())
		return
	}

	if !ParseQueryBool(c, "include_raw", false) {
		rec.RawData = nil
	}
	c.JSON(http.StatusOK, rec)
}

// listPractices handles GET /api/practices with limit/offset pagination.
func (s *Server) listPractices(c *gin.Context) {
	params := ParsePaginationParams(c)

	records, err := s.store.ListPractices(params.Limit, params.Offset)
	if err != nil {
		RespondWithInternalError(c, "failed to list practices: "+err.Error())
		return
	}
	if !ParseQueryBool(c, "include_raw", false) {
		for i := range records {
			records[i].RawData = nil
		}
	}

	count, err := s.store.CountPractices()
	if err != nil {
		RespondWithInternalError(c, "failed to count practices: "+err.Error())
		return
	}

	RespondWithList(c, records, count, params.Limit, params.Offset)
}

// upsertPractice handles POST /api/practices. Upserts keyed by ODS code, the
// same path the ingestion pipeline uses.
func (s *Server) upsertPractice(c *gin.Context) {
	var rec models.PracticeRecord
	if HandleBindError(c, c.ShouldBindJSON(&rec)) {
		return
	}

	rec.ODSCode = strings.TrimSpace(rec.ODSCode)
	if rec.ODSCode == "" {
		RespondWithValidationError(c, "ods_code", "must not be empty")
		return
	}
	if strings.TrimSpace(rec.Name) == "" {
		RespondWithValidationError(c, "name", "must not be empty")
		return
	}

	if err := s.store.UpsertPractice(&rec); err != nil {
		RespondWithInternalError(c, "failed to save practice: "+err.Error())
		return
	}

	// Type counts are stale now.
	s.typeCache.Invalidate(typeCountsCacheKey)

	c.JSON(http.StatusCreated, rec)
}

// getPracticeTypes handles GET /api/practice-types. Counts are computed over
// the full directory and cached; the response says whether it was served from
// cache.
func (s *Server) getPracticeTypes(c *gin.Context) {
	if counts, ok := s.typeCache.Get(typeCountsCacheKey); ok {
		c.JSON(http.StatusOK, PracticeTypesResponse{Types: counts, Cached: true})
		return
	}

	counts, err := s.computeTypeCounts()
	if err != nil {
		RespondWithInternalError(c, "failed to compute practice types: "+err.Error())
		return
	}
	s.typeCache.Set(typeCountsCacheKey, counts)

	c.JSON(http.StatusOK, PracticeTypesResponse{Types: counts, Cached: false})
}

func (s *Server) computeTypeCounts() ([]PracticeTypeCount, error) {
	keywords := config.AppConfig.PracticeTypes
	counts := make([]PracticeTypeCount, len(keywords))
	for i, kw := range keywords {
		counts[i] = PracticeTypeCount{Type: kw}
	}

	// Page through the directory once, testing every keyword per record.
	const pageSize = 500
	for offset := 0; ; offset += pageSize {
		page, err := s.store.ListPractices(pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		for i := range counts {
			counts[i].Count += len(search.FilterByType(page, counts[i].Type))
		}
		if len(page) < pageSize {
			break
		}
	}

	return counts, nil
}
