package handlers

import (
	"media-board/internal/linkpreview"
	"media-board/internal/store"
	"media-board/internal/watcher"
)

// Handlers bundles the HTTP endpoints of the local API. The grid UI is
// the only intended client; the server binds to localhost.
type Handlers struct {
	store   *store.Store
	preview *linkpreview.Fetcher
	watcher *watcher.Watcher
}

// New creates the handler set. The watcher may be nil when change
// notifications are disabled.
func New(s *store.Store, preview *linkpreview.Fetcher, w *watcher.Watcher) *Handlers {
	return &Handlers{
		store:   s,
		preview: preview,
		watcher: w,
	}
}
