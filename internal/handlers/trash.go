package handlers

import (
	"net/http"

	"media-board/internal/logging"
)

// ListTrash handles GET /api/trash: the join logic of the active
// listing, rooted at the trash side.
func (h *Handlers) ListTrash(w http.ResponseWriter, _ *http.Request) {
	records, err := h.store.ListTrash()
	if err != nil {
		logging.Error("Trash listing failed: %v", err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"items": records})
}

// EmptyTrash handles DELETE /api/trash: permanent, on-demand purge.
func (h *Handlers) EmptyTrash(w http.ResponseWriter, _ *http.Request) {
	if err := h.store.EmptyTrash(); err != nil {
		logging.Error("Empty trash failed: %v", err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONStatus(w, "ok")
}
