// file: internal/server/server.go
// version: 1.4.0
// guid: 7c2e9d14-5a6b-4f30-9e81-d2c47ab0e655

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/practiceops/practice-directory/internal/cache"
	"github.com/practiceops/practice-directory/internal/config"
	"github.com/practiceops/practice-directory/internal/database"
	"github.com/practiceops/practice-directory/internal/metrics"
	"github.com/practiceops/practice-directory/internal/search"
	"github.com/practiceops/practice-directory/internal/server/middleware"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const typeCountsCacheTTL = 5 * time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	store      database.Store
	engine     *search.Engine
	typeCache  *cache.Cache[[]PracticeTypeCount]
	startTime  time.Time
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer creates a new server instance backed by the given store.
func NewServer(store database.Store) *Server {
	router := gin.New()

	// Set up middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.NewIPRateLimiter(
		config.AppConfig.RateLimitPerMinute,
		config.AppConfig.RateLimitBurst,
	).Middleware())
	router.Use(middleware.MaxRequestBodySize(
		config.AppConfig.MaxBodyBytes,
		config.AppConfig.MaxBodyBytes*16,
	))

	// Register metrics (idempotent)
	metrics.Register()

	server := &Server{
		router:    router,
		store:     store,
		engine:    search.NewEngine(store),
		typeCache: cache.New[[]PracticeTypeCount](typeCountsCacheTTL),
		startTime: time.Now(),
	}

	server.setupRoutes()

	return server
}

// Router exposes the configured gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(cfg ServerConfig) error {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Keep the practice-count gauge fresh while running.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if count, err := s.store.CountPractices(); err == nil {
					metrics.SetPractices(count)
				} else {
					log.Printf("[DEBUG] Heartbeat: failed to count practices: %v", err)
				}
			case <-quit:
				return
			}
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api")
	{
		// Search
		api.POST("/search", s.searchPractices)

		// Practice records
		api.GET("/practices", s.listPractices)
		api.POST("/practices", s.upsertPractice)
		api.GET("/practices/:code", s.getPractice)

		// Directory summaries
		api.GET("/practice-types", s.getPracticeTypes)

		// Registry extract ingestion
		api.POST("/import", s.importExtract)
	}
}
