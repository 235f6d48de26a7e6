package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"media-board/internal/filesystem"
	"media-board/internal/logging"
	"media-board/internal/metadata"
)

// Delete soft-deletes an item by moving its files into the trash
// mirror: media first, then any auxiliary link-preview assets named in
// the sidecar, then the sidecar last. Each move is independent; a
// failure on one sibling never rolls back a move already performed.
// If neither a media file nor a sidecar existed, ErrNothingToDelete is
// returned so the caller can distinguish that case.
func (s *Store) Delete(id string) (err error) {
	start := time.Now()
	defer func() { s.observer.ObserveOperation("delete", time.Since(start), err) }()

	if id == "" {
		return fmt.Errorf("delete requires an id")
	}

	moved := 0
	var firstErr error

	mediaPath := s.paths.MediaPath(id)
	if filesystem.Exists(mediaPath) {
		if merr := filesystem.Move(mediaPath, s.paths.TrashMediaPath(id)); merr != nil {
			firstErr = fmt.Errorf("failed to trash media for %s: %w", id, merr)
		} else {
			moved++
			s.observer.ObserveTrashMove("delete")
		}
	}

	metaPath := s.paths.MetadataPath(id)
	if filesystem.Exists(metaPath) {
		// Discover auxiliary assets before the sidecar moves; they are
		// referenced by filename, not id.
		for _, name := range s.auxAssetNames(metaPath) {
			src := s.paths.AssetPath(name)
			if !filesystem.Exists(src) {
				continue
			}
			if merr := filesystem.Move(src, s.paths.TrashAssetPath(name)); merr != nil {
				logging.Warn("Failed to trash asset %s for %s: %v", name, id, merr)
				if firstErr == nil {
					firstErr = merr
				}
				continue
			}
			moved++
			s.observer.ObserveTrashMove("delete")
		}

		if merr := filesystem.Move(metaPath, s.paths.TrashMetadataPath(id)); merr != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to trash metadata for %s: %w", id, merr)
			}
		} else {
			moved++
			s.observer.ObserveTrashMove("delete")
		}
	}

	if firstErr != nil {
		return firstErr
	}
	if moved == 0 {
		return ErrNothingToDelete
	}
	logging.Debug("Trashed %s (%d files)", id, moved)
	return nil
}

// Restore is the mirror of Delete. The sidecar is read from its trash
// copy first, since the auxiliary asset names must be resolved before
// anything moves, then assets, media and finally the sidecar return to
// their active-side locations.
func (s *Store) Restore(id string) (err error) {
	start := time.Now()
	defer func() { s.observer.ObserveOperation("restore", time.Since(start), err) }()

	if id == "" {
		return fmt.Errorf("restore requires an id")
	}

	moved := 0
	var firstErr error

	trashMetaPath := s.paths.TrashMetadataPath(id)
	auxNames := s.auxAssetNames(trashMetaPath)

	for _, name := range auxNames {
		src := s.paths.TrashAssetPath(name)
		if !filesystem.Exists(src) {
			continue
		}
		if merr := filesystem.Move(src, s.paths.AssetPath(name)); merr != nil {
			logging.Warn("Failed to restore asset %s for %s: %v", name, id, merr)
			if firstErr == nil {
				firstErr = merr
			}
			continue
		}
		moved++
		s.observer.ObserveTrashMove("restore")
	}

	trashMediaPath := s.paths.TrashMediaPath(id)
	if filesystem.Exists(trashMediaPath) {
		if merr := filesystem.Move(trashMediaPath, s.paths.MediaPath(id)); merr != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to restore media for %s: %w", id, merr)
			}
		} else {
			moved++
			s.observer.ObserveTrashMove("restore")
		}
	}

	if filesystem.Exists(trashMetaPath) {
		if merr := filesystem.Move(trashMetaPath, s.paths.MetadataPath(id)); merr != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to restore metadata for %s: %w", id, merr)
			}
		} else {
			moved++
			s.observer.ObserveTrashMove("restore")
		}
	}

	if firstErr != nil {
		return firstErr
	}
	if moved == 0 {
		return ErrNothingToDelete
	}
	logging.Debug("Restored %s (%d files)", id, moved)
	return nil
}

// EmptyTrash permanently erases everything under both trash
// subdirectories. It runs at process start and end, and on demand, so
// the trash is a same-run undo buffer rather than cross-session
// history.
func (s *Store) EmptyTrash() (err error) {
	start := time.Now()
	defer func() { s.observer.ObserveOperation("empty_trash", time.Since(start), err) }()

	if ierr := filesystem.RemoveAllChildren(s.paths.TrashImages); ierr != nil {
		err = ierr
	}
	if merr := filesystem.RemoveAllChildren(s.paths.TrashMetadata); merr != nil && err == nil {
		err = merr
	}
	if err != nil {
		return fmt.Errorf("failed to empty trash: %w", err)
	}

	s.observer.ObservePurge()
	logging.Debug("Trash emptied")
	return nil
}

// auxAssetNames parses a sidecar and returns the filenames of locally
// downloaded link-preview assets it references. A reference counts as
// local when it is neither a remote URL nor inline data. Unreadable
// sidecars yield no names; the move sequence continues without them.
func (s *Store) auxAssetNames(sidecarPath string) []string {
	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		return nil
	}
	doc, err := metadata.Parse(data)
	if err != nil {
		logging.Debug("Cannot resolve assets from %s: %v", sidecarPath, err)
		return nil
	}

	var names []string
	for _, ref := range []string{doc.OGImageURL, doc.FaviconURL} {
		if isLocalAssetRef(ref) {
			names = append(names, ref)
		}
	}
	return names
}

func isLocalAssetRef(ref string) bool {
	if ref == "" {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "data:"} {
		if strings.HasPrefix(ref, prefix) {
			return false
		}
	}
	return true
}
