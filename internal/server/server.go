// Package server exposes the analysis pipeline over HTTP: single-image
// analysis, health and metrics endpoints, and a WebSocket batch stream.
package server

import (
	"context"
	"image"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itemlens/itemlens/internal/analyze"
)

// Analyzer is the pipeline surface the server needs.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, imagePath string) (analyze.Result, error)
	AnalyzeImage(ctx context.Context, img image.Image) (analyze.Result, error)
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	// RequestsPerMinute enables per-client rate limiting when positive.
	RequestsPerMinute int
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	analyzer    Analyzer
	corsOrigin  string
	maxUploadMB int64
	limiter     *rateLimiter
}

// NewServer creates a server around an analyzer.
func NewServer(cfg Config, analyzer Analyzer) *Server {
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 20
	}
	s := &Server{
		analyzer:    analyzer,
		corsOrigin:  cfg.CORSOrigin,
		maxUploadMB: cfg.MaxUploadMB,
	}
	if cfg.RequestsPerMinute > 0 {
		s.limiter = newRateLimiter(cfg.RequestsPerMinute)
	}
	return s
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/analyze", s.corsMiddleware(s.rateLimitMiddleware(s.analyzeHandler)))
	mux.HandleFunc("/ws/batch", s.batchWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
