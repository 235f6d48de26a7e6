// Package handlers implements the localhost HTTP API the grid UI
// talks to: item save/list/update, soft-delete and restore, trash
// management, link-card capture, media file serving and change events.
package handlers
