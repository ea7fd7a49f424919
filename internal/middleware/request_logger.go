package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFromContext returns the request id set by RequestLogger, empty
// when none is set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger assigns each request an id, echoes it in X-Request-ID and
// logs one line per request.
type RequestLogger struct {
	logger *zap.Logger
}

// NewRequestLogger creates a new request logging middleware
func NewRequestLogger(logger *zap.Logger) *RequestLogger {
	return &RequestLogger{logger: logger}
}

type loggedResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *loggedResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Middleware wraps a handler with request id propagation and access logging.
func (rl *RequestLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		logged := &loggedResponseWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(logged, r.WithContext(ctx))

		rl.logger.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", logged.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
