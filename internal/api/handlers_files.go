package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// handleImage serves a cropped diagram written during extraction.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")
	file := chi.URLParam(r, "file")

	if !safePathComponent(book) || !safePathComponent(file) {
		jsonError(w, "invalid path", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.cfg.ImageDir, "images", book, file)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		jsonError(w, "image not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

// handleListDocuments returns the most recent persisted extractions.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	docs, err := s.orchestrator.Store().Recent(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// safePathComponent rejects anything that could escape the image root.
func safePathComponent(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	return true
}
