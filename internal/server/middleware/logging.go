package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/adlens/adlens/internal/observability"
)

// responseWriter wraps http.ResponseWriter to capture status code and size.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// routePattern extracts the chi route pattern to keep metric label
// cardinality bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "/unknown"
}

// RequestLogger logs every request and records request metrics.
func RequestLogger(logger *zap.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			route := routePattern(r)

			if metrics != nil {
				metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(wrapped.statusCode)).Inc()
				metrics.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
			}

			if logger != nil {
				logger.Info("http request",
					zap.String("method", r.Method),
					zap.String("route", route),
					zap.Int("status", wrapped.statusCode),
					zap.Int64("bytes", wrapped.bytesWritten),
					zap.Duration("duration", duration),
					zap.String("request_id", GetRequestID(r.Context())))
			}
		})
	}
}

// Recovery converts panics into 500 responses instead of dropped
// connections.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if logger != nil {
						logger.Error("panic in handler",
							zap.Any("panic", rec),
							zap.String("path", r.URL.Path),
							zap.String("request_id", GetRequestID(r.Context())),
							zap.Stack("stack"))
					}
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"Internal server error","code":"INTERNAL_ERROR"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
