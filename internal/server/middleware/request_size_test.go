// file: internal/server/middleware/request_size_test.go
// version: 1.1.0
// guid: 355bac54-ca12-474e-941d-b171b362aeca

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMethodHasBody(t *testing.T) {
	t.Parallel()

	assert.True(t, methodHasBody(http.MethodPost))
	assert.True(t, methodHasBody(http.MethodPut))
	assert.True(t, methodHasBody(http.MethodPatch))
	assert.False(t, methodHasBody(http.MethodGet))
	assert.False(t, methodHasBody(http.MethodDelete))
}

func TestSelectBodyLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(10), selectBodyLimit("/api/import", 1, 10))
	assert.Equal(t, int64(1), selectBodyLimit("/api/search", 1, 10))
	assert.Equal(t, int64(1), selectBodyLimit("/api/practices", 1, 10))
}

func TestMaxRequestBodySize_Middleware(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MaxRequestBodySize(8, 16))
	router.POST("/api/search", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/api/import", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	// JSON endpoint over limit should be rejected.
	jsonPayload := bytes.Repeat([]byte("a"), 9)
	jsonReq := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(jsonPayload))
	jsonResp := httptest.NewRecorder()
	router.ServeHTTP(jsonResp, jsonReq)
	assert.Equal(t, http.StatusRequestEntityTooLarge, jsonResp.Code)

	// Import endpoint accepts larger payloads.
	importPayload := bytes.Repeat([]byte("b"), 12)
	importReq := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(importPayload))
	importResp := httptest.NewRecorder()
	router.ServeHTTP(importResp, importReq)
	assert.Equal(t, http.StatusOK, importResp.Code)

	// Methods without request bodies pass untouched.
	getReq := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)
	assert.Equal(t, http.StatusOK, getResp.Code)
}
