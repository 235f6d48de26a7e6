package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"media-board/internal/identity"
	"media-board/internal/logging"
	"media-board/internal/metadata"
	"media-board/internal/store"
)

// saveRequest is the import payload from the grid UI. Payload is either
// a data URL with inline bytes or an absolute source path; link items
// send neither.
type saveRequest struct {
	ID       string          `json:"id"`
	Payload  string          `json:"payload"`
	Metadata json.RawMessage `json:"metadata"`
}

// SaveItem handles POST /api/items.
func (h *Handlers) SaveItem(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Metadata) == 0 {
		writeJSONError(w, "metadata is required", http.StatusBadRequest)
		return
	}

	doc, err := metadata.Parse(req.Metadata)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := req.ID
	if id == "" {
		id = identity.NewID(doc.Type)
	}

	result, err := h.store.Save(id, req.Payload, doc)
	if err != nil {
		logging.Error("Save failed for %s: %v", id, err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result)
}

// ListItems handles GET /api/items. Order is unspecified; the grid
// sorts client-side, typically by createdAt.
func (h *Handlers) ListItems(w http.ResponseWriter, _ *http.Request) {
	records, err := h.store.List()
	if err != nil {
		logging.Error("List failed: %v", err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{"items": records})
}

// UpdateMetadata handles PUT /api/items/{id}/metadata. The body is a
// complete replacement document; analysis results arrive here.
func (h *Handlers) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var doc metadata.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSONError(w, "invalid metadata document", http.StatusBadRequest)
		return
	}

	if err := h.store.Update(id, &doc); err != nil {
		logging.Error("Update failed for %s: %v", id, err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONStatus(w, "ok")
}

// DeleteItem handles DELETE /api/items/{id}: soft-delete into trash.
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.store.Delete(id)
	if errors.Is(err, store.ErrNothingToDelete) {
		writeJSONError(w, "nothing to delete", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Delete failed for %s: %v", id, err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONStatus(w, "ok")
}

// RestoreItem handles POST /api/items/{id}/restore.
func (h *Handlers) RestoreItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.store.Restore(id)
	if errors.Is(err, store.ErrNothingToDelete) {
		writeJSONError(w, "nothing to restore", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Error("Restore failed for %s: %v", id, err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSONStatus(w, "ok")
}
