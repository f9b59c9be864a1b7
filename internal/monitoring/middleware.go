package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Middleware records request counts and latency. Used as a chi
// middleware, wrapping the whole router.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)
		path := normalizePath(r.URL.Path)

		HTTPRequestDuration.WithLabelValues(path, r.Method, statusCode).Observe(duration)
		HTTPRequestsTotal.WithLabelValues(path, r.Method, statusCode).Inc()
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses parameterised routes so label cardinality
// stays bounded.
func normalizePath(path string) string {
	path = strings.TrimPrefix(path, "/")

	switch {
	case strings.HasPrefix(path, "api/v1/catalog/upload"):
		return "catalog_upload"
	case strings.HasPrefix(path, "api/v1/catalog"):
		return "catalog"
	case strings.HasPrefix(path, "api/v1/cart"):
		return "cart"
	case strings.HasPrefix(path, "api/v1/checkout"):
		return "checkout"
	case strings.HasPrefix(path, "api/v1/ledger"):
		return "ledger"
	case strings.HasPrefix(path, "api/v1/auth"):
		return "auth"
	case strings.HasPrefix(path, "api/v1/users"):
		return "users"
	case strings.HasPrefix(path, "metrics"):
		return "metrics"
	case strings.HasPrefix(path, "health"):
		return "health"
	default:
		parts := strings.Split(path, "/")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0]
		}
		return "unknown"
	}
}
