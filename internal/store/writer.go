package store

import (
	"encoding/json"
	"fmt"
	"time"

	"media-board/internal/filesystem"
	"media-board/internal/identity"
	"media-board/internal/imageconv"
	"media-board/internal/logging"
	"media-board/internal/metadata"
)

// SaveResult reports the outcome of a successful save.
type SaveResult struct {
	ID       string `json:"id"`
	FilePath string `json:"filePath,omitempty"`
}

// Save persists one item: media bytes first, sidecar second. The
// payload is either a data URL carrying inline bytes or an absolute
// source path to copy verbatim; link items carry no payload at all.
//
// A media write failure produces no sidecar, so no phantom entry can
// appear in listings. A sidecar write failure after the media write
// leaves an orphan on disk; the orphan-drop rule keeps it out of
// listings and nothing is rolled back.
func (s *Store) Save(id, payload string, doc *metadata.Document) (result *SaveResult, err error) {
	start := time.Now()
	defer func() { s.observer.ObserveOperation("save", time.Since(start), err) }()

	if id == "" {
		return nil, fmt.Errorf("save requires an id")
	}
	if doc == nil {
		return nil, fmt.Errorf("save requires a metadata document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.ID = id

	if doc.IsLink() {
		doc.FilePath = nil
		if err := s.writeSidecar(s.paths.MetadataPath(id), doc); err != nil {
			return nil, err
		}
		logging.Debug("Saved link item %s", id)
		return &SaveResult{ID: id}, nil
	}

	if payload == "" {
		return nil, fmt.Errorf("media item %s has no payload", id)
	}

	mediaPath := s.paths.MediaPath(id)
	if imageconv.IsDataURL(payload) {
		if err := s.writeInlineMedia(id, payload, mediaPath, doc); err != nil {
			return nil, err
		}
	} else {
		// A filesystem path: copy verbatim so import never holds the
		// full file in memory.
		if err := filesystem.Copy(payload, mediaPath); err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", payload, err)
		}
	}

	doc.FilePath = &mediaPath
	if err := s.writeSidecar(s.paths.MetadataPath(id), doc); err != nil {
		// The media bytes stay behind as an orphan; degraded but
		// self-healing since listings drop it.
		return nil, fmt.Errorf("media written but sidecar failed for %s: %w", id, err)
	}

	logging.Debug("Saved %s item %s -> %s", doc.Type, id, mediaPath)
	return &SaveResult{ID: id, FilePath: mediaPath}, nil
}

// writeInlineMedia decodes a data URL payload and writes it to
// mediaPath. Inline images are always persisted as PNG; non-PNG inline
// data is re-encoded before hitting the disk.
func (s *Store) writeInlineMedia(id, payload, mediaPath string, doc *metadata.Document) error {
	data, mime, err := imageconv.DecodeDataURL(payload)
	if err != nil {
		return fmt.Errorf("bad payload for %s: %w", id, err)
	}

	if identity.KindForID(id) == identity.KindImage {
		data, err = imageconv.EnsurePNG(data, mime)
		if err != nil {
			return fmt.Errorf("failed to convert %s to PNG: %w", id, err)
		}
		if doc.Width == 0 && doc.Height == 0 {
			if w, h, derr := imageconv.Dimensions(data); derr == nil {
				doc.Width, doc.Height = w, h
			}
		}
	}

	if err := filesystem.WriteFile(mediaPath, data); err != nil {
		return fmt.Errorf("failed to write media for %s: %w", id, err)
	}
	return nil
}

// writeSidecar marshals and writes a metadata document.
func (s *Store) writeSidecar(path string, doc *metadata.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := filesystem.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}
