package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/vitrina-piezas/catalog/internal/metrics"
	"github.com/vitrina-piezas/catalog/internal/storage"
)

type Handler struct {
	store   *storage.CatalogStore
	root    string
	limiter *rate.Limiter
}

// New creates the catalog HTTP handler. root is the catalog directory
// static files are served from; limiter may be nil to disable rate limiting.
func New(store *storage.CatalogStore, root string, limiter *rate.Limiter) *Handler {
	return &Handler{
		store:   store,
		root:    root,
		limiter: limiter,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, endpoint string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(http.StatusInternalServerError)).Inc()
		return
	}
	metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(http.StatusOK)).Inc()
}

func (h *Handler) writeError(w http.ResponseWriter, endpoint, message string, code int) {
	slog.Error(message, "endpoint", endpoint, "code", code)
	http.Error(w, message, code)
	metrics.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

// snapshotOrError loads the current catalog, answering 500 when the root
// cannot be read.
func (h *Handler) snapshotOrError(w http.ResponseWriter, endpoint string) (*storage.Snapshot, bool) {
	snap, err := h.store.Get()
	if err != nil {
		h.writeError(w, endpoint, "Unable to scan catalog", http.StatusInternalServerError)
		return nil, false
	}
	return snap, true
}
