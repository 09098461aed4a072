package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-advisor-service/internal/advisor"
	"github.com/couchcryptid/weather-advisor-service/internal/domain"
)

// AdvisorService is the conversational surface the server exposes.
type AdvisorService interface {
	Answer(ctx context.Context, req advisor.Request) (advisor.Response, error)
	CurrentWeather(ctx context.Context, city, language string) (string, domain.WeatherSnapshot, error)
}

// Server exposes the chat and weather API plus health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	advisor    AdvisorService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /api/chat, /api/weather/{city},
// /healthz, /readyz, and /metrics routes.
func NewServer(addr string, svc AdvisorService, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		advisor: svc,
		logger:  logger,
	}

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/weather/{city}", s.handleWeather)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req advisor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	resp, err := s.advisor.Answer(r.Context(), req)
	if err != nil {
		// The response still carries the user-facing failure sentence.
		s.logger.Error("chat request failed", "error", err)
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")
	lang := r.URL.Query().Get("lang")

	summary, snapshot, err := s.advisor.CurrentWeather(r.Context(), city, lang)
	if err != nil {
		s.logger.Error("weather request failed", "city", city, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": summary})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"city":     snapshot.City,
		"summary":  summary,
		"snapshot": snapshot,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
