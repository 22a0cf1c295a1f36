// Package trace assigns request ids and keeps request counters for the
// health endpoint.
package trace

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	applog "gagyebu/internal/log"
)

type requestIDKey struct{}

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Metrics is a snapshot of the request counters.
type Metrics struct {
	TotalRequests  int64
	ClientErrors   int64
	FailedRequests int64
	AvgDurationMs  int64
}

// Middleware traces requests and counts them by outcome.
type Middleware struct {
	extractIP func(*http.Request) string
	logger    *applog.Logger

	total, clientErrors, failed atomic.Int64
	totalDuration               atomic.Int64 // microseconds
}

// NewMiddleware creates a trace middleware. extractIP may be nil.
func NewMiddleware(extractIP func(*http.Request) string) *Middleware {
	return &Middleware{
		extractIP: extractIP,
		logger:    applog.New(slog.Default(), applog.ComponentHTTP),
	}
}

// Middleware reuses an incoming X-Request-ID when it is a UUID and issues a
// fresh one otherwise. The id is echoed in the response header.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))
		elapsed := time.Since(start)

		m.total.Add(1)
		m.totalDuration.Add(elapsed.Microseconds())
		level := slog.LevelInfo
		switch {
		case rec.status >= 500:
			m.failed.Add(1)
			level = slog.LevelError
		case rec.status >= 400:
			m.clientErrors.Add(1)
			level = slog.LevelWarn
		}

		clientIP := ""
		if m.extractIP != nil {
			clientIP = m.extractIP(r)
		}
		m.logger.Log(ctx, level, "HTTP request completed",
			applog.FieldComponent, m.logger.Component(),
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rec.status,
			applog.FieldDuration, elapsed.Milliseconds(),
			applog.FieldClientIP, clientIP)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// GetRequestID returns the id assigned by Middleware, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// GetMetrics returns the current counters.
func (m *Middleware) GetMetrics() Metrics {
	snap := Metrics{
		TotalRequests:  m.total.Load(),
		ClientErrors:   m.clientErrors.Load(),
		FailedRequests: m.failed.Load(),
	}
	if snap.TotalRequests > 0 {
		snap.AvgDurationMs = m.totalDuration.Load() / snap.TotalRequests / 1000
	}
	return snap
}
