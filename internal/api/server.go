// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/metrics"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/observability"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
)

const maxBodyBytes = 1 << 20

// Server exposes health, readiness, metrics and the assessment API.
type Server struct {
	logger     logger.Logger
	obs        *observability.Observability
	assessor   atomic.Pointer[risk.Assessor]
	httpServer *http.Server
	now        func() time.Time
}

func NewServer(addr string, log logger.Logger, obs *observability.Observability) *Server {
	s := &Server{
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
		obs:    obs,
		now:    time.Now,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
	return s
}

// SetAssessor publishes the loaded pipeline and marks the server ready.
func (s *Server) SetAssessor(a *risk.Assessor) {
	s.assessor.Store(a)
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /health", s.instrument("/health", s.handleHealth))
	mux.Handle("GET /ready", s.instrument("/ready", s.handleReady))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /api/v1/form", s.instrument("/api/v1/form", s.handleForm))
	mux.Handle("POST /api/v1/assess", s.instrument("/api/v1/assess", s.handleAssess))
	return mux
}

// Start serves until Shutdown is called. It returns once the listener fails
// or is closed.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx, span := s.obs.StartSpan(r.Context(), r.Method+" "+route)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(ctx))

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.logger.Debug("HTTP request", map[string]interface{}{
			"method":     r.Method,
			"route":      route,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
