package store

import (
	"encoding/json"
	"errors"

	"media-board/internal/metadata"
	"media-board/internal/storage"
)

// ErrNothingToDelete is the distinguished failure returned when neither
// a media file nor a sidecar exists for the id being deleted or
// restored. Callers use it to decide whether to drop their in-memory
// entry anyway.
var ErrNothingToDelete = errors.New("nothing to delete")

// LocalURLScheme is the scheme of the addressing string handed to the
// presentation layer so it can render stored files without re-deriving
// the naming convention.
const LocalURLScheme = "media://"

// Store is the local content store: it persists media bytes and
// metadata sidecars under a storage context, lists them back into
// self-consistent records, and implements soft-delete with restore and
// purge. A Store holds no state between calls beyond its paths.
type Store struct {
	paths    *storage.Context
	observer Observer
}

// New creates a Store over an already-scaffolded storage context.
func New(paths *storage.Context) *Store {
	return &Store{paths: paths, observer: nopObserver{}}
}

// SetObserver installs a metrics observer. Passing nil restores the
// no-op observer.
func (s *Store) SetObserver(o Observer) {
	if o == nil {
		s.observer = nopObserver{}
		return
	}
	s.observer = o
}

// Paths exposes the storage context, e.g. for serving media files over
// the local API.
func (s *Store) Paths() *storage.Context {
	return s.paths
}

// Record is one self-consistent listing entry: a validated sidecar
// document joined with its media file.
type Record struct {
	ID       string
	FileURL  string
	Document *metadata.Document
}

// MarshalJSON flattens the document fields alongside id and fileUrl,
// which is the shape the grid UI consumes.
func (r Record) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(r.Document)
	if err != nil {
		return nil, err
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(base, &flat); err != nil {
		return nil, err
	}

	idJSON, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}
	flat["id"] = idJSON

	if r.FileURL != "" {
		urlJSON, err := json.Marshal(r.FileURL)
		if err != nil {
			return nil, err
		}
		flat["fileUrl"] = urlJSON
	}

	return json.Marshal(flat)
}
