package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"gagyebu/internal/auth"
	applog "gagyebu/internal/log"
	"gagyebu/internal/middleware/trace"
	"gagyebu/internal/services"
)

// Server is the JSON API over the ledger.
type Server struct {
	http.Server
	ledger *services.LedgerService
	agg    *services.Aggregator
	tokens *auth.TokenManager
	tracer *trace.Middleware
	now    func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService, agg *services.Aggregator, tokens *auth.TokenManager) *Server {
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		ledger: ledger,
		agg:    agg,
		tokens: tokens,
		tracer: trace.NewMiddleware(clientIP),
		now:    time.Now,
	}

	r := mux.NewRouter()
	r.Use(s.tracer.Middleware)
	r.Use(applog.Middleware(applog.New(slog.Default(), applog.ComponentHTTP), func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	}))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireUser)
	authed.HandleFunc("/categories", s.handleCategories).Methods(http.MethodGet)
	authed.HandleFunc("/entries", s.handleCreateEntry).Methods(http.MethodPost)
	authed.HandleFunc("/entries", s.handleListEntries).Methods(http.MethodGet)
	authed.HandleFunc("/entries/{id:[0-9]+}", s.handleDeleteEntry).Methods(http.MethodDelete)
	authed.HandleFunc("/balance", s.handleBalance).Methods(http.MethodGet)
	authed.HandleFunc("/days/{date}/summary", s.handleDailySummary).Methods(http.MethodGet)
	authed.HandleFunc("/months/{ym}/totals", s.handleMonthTotals).Methods(http.MethodGet)
	authed.HandleFunc("/months/{ym}/categories", s.handleMonthCategories).Methods(http.MethodGet)
	authed.HandleFunc("/months/{ym}/recommendation", s.handleRecommendation).Methods(http.MethodGet)
	authed.HandleFunc("/months/{ym}/dashboard", s.handleDashboard).Methods(http.MethodGet)

	s.Handler = r
	return s
}

// Shutdown gracefully shuts down the server once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	m := s.tracer.GetMetrics()
	writeJSON(w, http.StatusOK, "ok", map[string]int64{
		"total_requests":  m.TotalRequests,
		"client_errors":   m.ClientErrors,
		"failed_requests": m.FailedRequests,
		"avg_duration_ms": m.AvgDurationMs,
	})
}

// handleReady probes the store with a cheap lookup.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if _, err := s.ledger.UserExists(ctx, "readyz"); err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "Readiness probe failed", applog.FieldError, err)
		writeError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	writeJSON(w, http.StatusOK, "ready", nil)
}
