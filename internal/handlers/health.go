package handlers

import (
	"net/http"

	"media-board/internal/filesystem"
)

// HealthCheck handles GET /healthz. The store is healthy when its
// metadata directory is reachable.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	if !filesystem.Exists(h.store.Paths().MetadataDir) {
		writeJSONError(w, "storage root unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSONStatus(w, "ok")
}
