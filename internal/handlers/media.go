package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"media-board/internal/filesystem"
)

// ServeMedia handles GET /media/{name}: it resolves the media:// URLs
// attached to listing records so the grid can render stored files
// without re-deriving the naming convention. Only base filenames are
// honored; traversal components are stripped.
func (h *Handlers) ServeMedia(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(mux.Vars(r)["name"])
	if name == "." || name == "/" {
		writeJSONError(w, "invalid file name", http.StatusBadRequest)
		return
	}

	path := h.store.Paths().AssetPath(name)
	if !filesystem.Exists(path) {
		writeJSONError(w, "file not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, path)
}
