package middleware

import (
	"net/http"
)

// CORS allows the brand sites to call the signup API from the browser.
type CORS struct {
	allowedOrigins map[string]bool
	allowAll       bool
}

// NewCORS creates the middleware. An empty origin list allows any origin,
// which is only appropriate in development.
func NewCORS(origins []string) *CORS {
	c := &CORS{
		allowedOrigins: make(map[string]bool, len(origins)),
		allowAll:       len(origins) == 0,
	}
	for _, origin := range origins {
		c.allowedOrigins[origin] = true
	}
	return c
}

// Middleware handles preflight requests and sets the CORS headers for
// allowed origins.
func (c *CORS) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (c.allowAll || c.allowedOrigins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
