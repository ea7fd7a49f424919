package middleware

import (
	"net/http"
)

// SecurityHeaders adds standard protective headers to every response.
type SecurityHeaders struct {
	isDevelopment bool
}

// NewSecurityHeaders creates a new security headers middleware
func NewSecurityHeaders(isDevelopment bool) *SecurityHeaders {
	return &SecurityHeaders{
		isDevelopment: isDevelopment,
	}
}

// Middleware wraps an HTTP handler with security headers.
func (sh *SecurityHeaders) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// HSTS only in production; local development runs plain HTTP.
		if !sh.isDevelopment {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		// The service only serves JSON and relayed XML; nothing here is a
		// document that should load resources or be framed.
		w.Header().Set("Content-Security-Policy",
			"default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'")

		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("X-Permitted-Cross-Domain-Policies", "none")

		next.ServeHTTP(w, r)
	})
}
