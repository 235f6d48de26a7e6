package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"media-board/internal/logging"
)

// Events handles GET /api/events: a server-sent-events stream of
// debounced store change notifications, so the grid re-lists when the
// directories are modified outside the application.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	if h.watcher == nil {
		writeJSONError(w, "change notifications disabled", http.StatusServiceUnavailable)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-h.watcher.Events():
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				logging.Error("failed to encode watcher event: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
