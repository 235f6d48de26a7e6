// Package watcher emits debounced change events when the store's
// active directories are modified outside the application, so the grid
// UI can re-list instead of showing stale records.
package watcher
