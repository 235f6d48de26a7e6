package identity

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind represents the kind of a stored item.
type Kind string

const (
	// KindImage represents an imported image.
	KindImage Kind = "image"
	// KindVideo represents an imported video.
	KindVideo Kind = "video"
	// KindLink represents a saved link card. Link items have no media file;
	// they are identified by the "type" field in their metadata, never by
	// id shape.
	KindLink Kind = "link"
)

const (
	// PrefixImage is the id prefix for image items.
	PrefixImage = "img"
	// PrefixVideo is the id prefix for video items.
	PrefixVideo = "vid"
	// PrefixLink is the id prefix for link items.
	PrefixLink = "link"
)

// KindForID derives the media kind encoded in an item id. Ids starting
// with "vid_" are videos; everything else is treated as an image. Link
// items never reach this function because no path lookup depends on
// their id shape.
func KindForID(id string) Kind {
	if strings.HasPrefix(id, PrefixVideo+"_") {
		return KindVideo
	}
	return KindImage
}

// ExtensionFor returns the on-disk file extension for a media kind.
// Images are always persisted as PNG regardless of their source format,
// so id+kind alone suffice to compute every path.
func ExtensionFor(kind Kind) string {
	if kind == KindVideo {
		return ".mp4"
	}
	return ".png"
}

// MediaFilename returns the media filename for an id, derived entirely
// from the id itself.
func MediaFilename(id string) string {
	return id + ExtensionFor(KindForID(id))
}

// MetadataFilename returns the sidecar filename for an id.
func MetadataFilename(id string) string {
	return id + ".json"
}

// NewID mints an item id of the form <prefix>_<unixMillis>_<random>.
// Collisions are avoided by construction (timestamp plus random base36
// suffix), not by interlock. Link ids use a UUID suffix since nothing
// derives a path from them.
func NewID(kind Kind) string {
	if kind == KindLink {
		return PrefixLink + "_" + uuid.NewString()
	}
	prefix := PrefixImage
	if kind == KindVideo {
		prefix = PrefixVideo
	}
	suffix := strconv.FormatInt(rand.Int63n(36*36*36*36*36*36*36), 36) //nolint:gosec // uniqueness, not security
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
