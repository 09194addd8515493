// file: internal/server/import_service.go
// version: 1.1.0
// guid: 8d1f5b3a-7c29-4e86-b0d4-9a2e6c50f817

package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/practiceops/practice-directory/internal/ingest"
	"github.com/practiceops/practice-directory/internal/metrics"
)

// importExtract handles POST /api/import. The extract file must already be on
// the server's filesystem; the body names the path rather than carrying the
// payload.
func (s *Server) importExtract(c *gin.Context) {
	var req ImportRequest
	if HandleBindError(c, c.ShouldBindJSON(&req)) {
		return
	}

	path := strings.TrimSpace(req.Path)
	if path == "" {
		RespondWithValidationError(c, "path", "must not be empty")
		return
	}
	if _, err := os.Stat(path); err != nil {
		RespondWithBadRequest(c, "extract not readable: "+err.Error())
		return
	}

	result, err := ingest.ImportFile(c.Request.Context(), s.store, path, ingest.Options{
		Replace: req.Replace,
	})
	if err != nil {
		RespondWithInternalError(c, "import failed: "+err.Error())
		return
	}

	s.typeCache.Invalidate(typeCountsCacheKey)
	if count, err := s.store.CountPractices(); err == nil {
		metrics.SetPractices(count)
	}

	c.JSON(http.StatusOK, ImportResponse{
		BatchID:  result.BatchID,
		Imported: result.Imported,
		Skipped:  result.Skipped,
	})
}
