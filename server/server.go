package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/domain"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/feed"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/webhook"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/processor.go -pkg mocks -skip-ensure -fmt goimports . Processor
//go:generate moq -out mocks/stats.go -pkg mocks -skip-ensure -fmt goimports . StatsProvider
//go:generate moq -out mocks/puller.go -pkg mocks -skip-ensure -fmt goimports . Puller

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	pipeline Pipeline
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Pipeline bundles the ingestion components the HTTP boundary drives.
// All shared state lives in these injected service objects; the server
// itself stays stateless.
type Pipeline struct {
	Verifier   *webhook.Verifier
	Limiter    *webhook.Limiter
	Normalizer *feed.Normalizer
	Processor  Processor
	Stats      StatsProvider
	Puller     Puller
	AdminToken string
}

// Processor drives normalized posts through classification, dedup and dispatch
type Processor interface {
	ProcessBatch(ctx context.Context, posts []domain.CanonicalPost) domain.BatchResult
}

// StatsProvider serves aggregate processing counters
type StatsProvider interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

// Puller triggers the RSS fallback fetch on operator demand
type Puller interface {
	PullAll(ctx context.Context) domain.BatchResult
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, pipeline Pipeline, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		pipeline: pipeline,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedbridge", "capawawa", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST /webhook", s.webhookHandler)
	s.router.HandleFunc("POST /manual", s.manualHandler)
	s.router.HandleFunc("GET /manual", s.manualFormHandler)
	s.router.HandleFunc("POST /pull", s.pullHandler)
	s.router.HandleFunc("GET /health", s.healthHandler)
	s.router.HandleFunc("GET /stats", s.statsHandler)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
