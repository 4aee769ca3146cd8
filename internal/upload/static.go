package upload

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// StaticHandler serves stored files by filename. No authorization check: any
// holder of a filename may fetch it.
type StaticHandler struct {
	store *Store
}

func NewStaticHandler(store *Store) *StaticHandler {
	return &StaticHandler{store: store}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "static_photo")

	filename := r.PathValue("filename")
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		logger.Debug("Rejected photo request with invalid filename", "filename", filename)
		http.NotFound(w, r)
		return
	}

	// ServeFile sets the content type from the extension and returns a
	// standard 404 when the file does not exist.
	http.ServeFile(w, r, filepath.Join(h.store.Dir(), filename))
}
