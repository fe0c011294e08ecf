package handlers

import (
	"net/http"
	"strings"

	"github.com/vitrina-piezas/catalog/internal/models"
	"github.com/vitrina-piezas/catalog/internal/pricing"
	"github.com/vitrina-piezas/catalog/internal/scanner"
)

func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "products", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, ok := h.snapshotOrError(w, "products")
	if !ok {
		return
	}

	records := make([]models.ProductRecord, 0, len(snap.Records))
	for _, rec := range snap.Records {
		records = append(records, rec.MapPaths(rootedURL))
	}
	h.writeJSON(w, "products", records)
}

func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "categories", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, ok := h.snapshotOrError(w, "categories")
	if !ok {
		return
	}
	h.writeJSON(w, "categories", scanner.Categories(snap.Records))
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "config", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, ok := h.snapshotOrError(w, "config")
	if !ok {
		return
	}
	doc, err := snap.Config.Document()
	if err != nil {
		h.writeError(w, "config", "Unable to encode config", http.StatusInternalServerError)
		return
	}

	// The config file as written, plus the kit template price already
	// rounded so the storefront does not have to recompute it
	doc["digitalTemplatePrice"] = pricing.DigitalTemplatePrice(snap.Config.TypeConfig(models.TypeKit))
	h.writeJSON(w, "config", doc)
}

// HandleAPINotFound answers unknown /api/ paths.
func (h *Handler) HandleAPINotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, "unknown", "Endpoint not found", http.StatusNotFound)
}

// rootedURL turns a catalog-relative path into the URL the server serves it at.
func rootedURL(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
