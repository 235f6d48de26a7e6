package store

import (
	"fmt"
	"time"

	"media-board/internal/logging"
	"media-board/internal/metadata"
)

// Update rewrites the sidecar for an id with a complete replacement
// document. It is an overwrite, not a merge: callers supply the full
// desired state, typically to persist asynchronous analysis results
// without touching media bytes.
//
// No check is made against a corresponding media file. An id that was
// never saved can still receive metadata; the resulting ghost record
// stays invisible to listings until a matching media file appears.
func (s *Store) Update(id string, doc *metadata.Document) (err error) {
	start := time.Now()
	defer func() { s.observer.ObserveOperation("update", time.Since(start), err) }()

	if id == "" {
		return fmt.Errorf("update requires an id")
	}
	if doc == nil {
		return fmt.Errorf("update requires a metadata document")
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	doc.ID = id

	if err := s.writeSidecar(s.paths.MetadataPath(id), doc); err != nil {
		return err
	}
	logging.Debug("Updated metadata for %s", id)
	return nil
}
