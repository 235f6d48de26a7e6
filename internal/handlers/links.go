package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"media-board/internal/identity"
	"media-board/internal/logging"
	"media-board/internal/metadata"
)

// saveLinkRequest asks the server to capture and store a link card.
type saveLinkRequest struct {
	URL string `json:"url"`
}

// SaveLink handles POST /api/links: fetch the page, scrape the
// open-graph preview, download its assets, and persist the link card
// as a metadata-only item.
func (h *Handlers) SaveLink(w http.ResponseWriter, r *http.Request) {
	var req saveLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeJSONError(w, "url is required", http.StatusBadRequest)
		return
	}

	preview, err := h.preview.Capture(r.Context(), req.URL)
	if err != nil {
		logging.Error("Link capture failed for %s: %v", req.URL, err)
		writeJSONError(w, err.Error(), http.StatusBadGateway)
		return
	}

	id := identity.NewID(identity.KindLink)
	doc := &metadata.Document{
		Type:        identity.KindLink,
		URL:         req.URL,
		Title:       preview.Title,
		Description: preview.Description,
		OGImageURL:  preview.OGImageURL,
		FaviconURL:  preview.FaviconURL,
		CreatedAt:   time.Now().UnixMilli(),
	}

	result, err := h.store.Save(id, "", doc)
	if err != nil {
		logging.Error("Link save failed for %s: %v", req.URL, err)
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]interface{}{
		"id":       result.ID,
		"metadata": doc,
	})
}
