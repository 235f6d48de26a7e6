package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"media-board/internal/filesystem"
	"media-board/internal/identity"
	"media-board/internal/logging"
	"media-board/internal/metadata"
	"media-board/internal/workers"
)

// maxListWorkers caps the listing fan-out; the corpus is single-user
// sized, so the cap exists only to keep descriptor usage sane.
const maxListWorkers = 16

// List enumerates every metadata sidecar on the active side in
// parallel and joins each against its media file. Orphans (media-kind
// sidecars with no media file) and malformed sidecars are dropped with
// a log line, never an error; link records pass through unconditionally.
// Output order is unspecified; callers sort.
func (s *Store) List() (records []Record, err error) {
	start := time.Now()
	defer func() { s.observer.ObserveOperation("list", time.Since(start), err) }()

	records, err = s.listDir(s.paths.MetadataDir, s.paths.ImagesDir)
	if err == nil {
		s.observer.ObserveListingSize(len(records))
	}
	return records, err
}

// ListTrash applies the same join logic rooted at the trash side.
func (s *Store) ListTrash() (records []Record, err error) {
	start := time.Now()
	defer func() { s.observer.ObserveOperation("list", time.Since(start), err) }()

	return s.listDir(s.paths.TrashMetadata, s.paths.TrashImages)
}

func (s *Store) listDir(metaDir, mediaDir string) ([]Record, error) {
	entries, err := os.ReadDir(metaDir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return []Record{}, nil
	}

	numWorkers := workers.ForIO(maxListWorkers)
	if numWorkers > len(names) {
		numWorkers = len(names)
	}

	jobs := make(chan string, len(names))
	results := make(chan Record, len(names))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				if record, ok := s.joinRecord(metaDir, mediaDir, name); ok {
					results <- record
				}
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()
	close(results)

	records := make([]Record, 0, len(names))
	for record := range results {
		records = append(records, record)
	}
	return records, nil
}

// joinRecord reads one sidecar and joins it with its media file.
// Returns ok=false when the record must be excluded: unreadable or
// malformed sidecar, or a media-kind record whose media file is gone.
func (s *Store) joinRecord(metaDir, mediaDir, name string) (Record, bool) {
	path := filepath.Join(metaDir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("Skipping unreadable sidecar %s: %v", path, err)
		s.observer.ObserveMalformedSidecar()
		return Record{}, false
	}

	doc, err := metadata.Parse(data)
	if err != nil {
		logging.Warn("Skipping sidecar %s: %v", path, err)
		s.observer.ObserveMalformedSidecar()
		return Record{}, false
	}

	id := strings.TrimSuffix(name, ".json")
	if doc.ID != "" {
		id = doc.ID
	}

	if doc.IsLink() {
		return Record{ID: id, Document: doc}, true
	}

	mediaName := identity.MediaFilename(id)
	mediaPath := filepath.Join(mediaDir, mediaName)
	if !filesystem.Exists(mediaPath) {
		logging.Debug("Dropping orphan %s: media file %s missing", id, mediaPath)
		s.observer.ObserveOrphanDropped()
		return Record{}, false
	}

	// Point the record at where the media file actually is, so trash
	// listings stay self-consistent after a move.
	doc.FilePath = &mediaPath

	return Record{
		ID:       id,
		FileURL:  LocalURLScheme + mediaName,
		Document: doc,
	}, true
}
