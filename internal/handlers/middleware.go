package handlers

import (
	"net/http"

	"github.com/vitrina-piezas/catalog/internal/metrics"
)

// CORS allows the catalog API and files to be fetched from any origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects requests beyond the handler's limiter with 429. Every
// API call rescans the tree unless caching is on, so this bounds disk work.
func (h *Handler) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	if h.limiter == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow() {
			metrics.RateLimited.Inc()
			h.writeError(w, "rate_limit", "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
