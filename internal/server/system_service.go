// file: internal/server/system_service.go
// version: 1.1.0
// guid: 2a9d4f68-0c3b-4e57-91d8-6b5f7e20a3c4

package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/practiceops/practice-directory/internal/config"
	"github.com/practiceops/practice-directory/internal/metrics"
)

// healthCheck handles GET /health. A store failure degrades the report but
// does not fail the probe; the process is still serving.
func (s *Server) healthCheck(c *gin.Context) {
	status := "ok"
	count, err := s.store.CountPractices()
	if err != nil {
		status = "degraded"
		count = 0
	} else {
		metrics.SetPractices(count)
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Practices: count,
		Database:  config.AppConfig.DatabaseType,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Version:   Version + " (" + runtime.Version() + ")",
	})
}
