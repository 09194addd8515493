// file: internal/server/search_service.go
// version: 1.2.0
// guid: 3f8b0ac9-61d4-4e07-bb2a-9f5e8c1d7246

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/practiceops/practice-directory/internal/metrics"
	"github.com/practiceops/practice-directory/internal/models"
	"github.com/practiceops/practice-directory/internal/search"
)

// searchPractices handles POST /api/search.
//
// Validation failures (empty query, unknown searchType) come back as 400;
// store failures fail the whole request with 500 rather than returning a
// partial result set.
func (s *Server) searchPractices(c *gin.Context) {
	var req models.SearchRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}

	metricType := req.SearchType
	if _, err := models.ParseSearchType(req.SearchType); err != nil {
		metricType = "invalid"
	}
	metrics.IncSearchStarted(metricType)

	start := time.Now()
	resp, err := s.engine.Search(c.Request.Context(), req)
	metrics.ObserveSearchDuration(metricType, time.Since(start))

	if err != nil {
		metrics.IncSearchFailed(metricType)
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			RespondWithBadRequest(c, verr.Error())
			return
		}
		RespondWithInternalError(c, "search failed: "+err.Error())
		return
	}

	metrics.IncSearchCompleted(metricType)
	metrics.ObserveCandidatesScored(metricType, resp.Total)

	c.JSON(http.StatusOK, resp)
}
