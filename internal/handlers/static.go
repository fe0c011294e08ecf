package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// HandleStatic serves the storefront page and any file of the catalog tree.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	requested := strings.TrimPrefix(r.URL.Path, "/")
	if requested == "" {
		requested = "index.html"
	}

	// Prevent directory traversal and hidden files such as .env
	for _, segment := range strings.Split(requested, "/") {
		if segment == ".." || strings.HasPrefix(segment, ".") {
			http.Error(w, "Invalid file path", http.StatusBadRequest)
			return
		}
	}

	fullPath := filepath.Join(h.root, filepath.FromSlash(requested))
	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		slog.Debug("Static file not found", "path", requested)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	switch strings.ToLower(filepath.Ext(fullPath)) {
	case ".glb":
		w.Header().Set("Content-Type", "model/gltf-binary")
	case ".webp":
		w.Header().Set("Content-Type", "image/webp")
	}

	http.ServeFile(w, r, fullPath)
}
