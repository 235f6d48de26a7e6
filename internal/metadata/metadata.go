package metadata

import (
	"encoding/json"
	"fmt"

	"media-board/internal/identity"
)

// Pattern is one analysis result produced by the external vision
// service for an item.
type Pattern struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context,omitempty"`
}

// Document is a metadata sidecar, discriminated by Type. Image, video
// and link items share one document shape; kind-specific fields are
// simply absent for the kinds that do not use them. Fields the store
// does not recognize survive read/write cycles via Extra.
type Document struct {
	Type identity.Kind `json:"type"`
	ID   string        `json:"id,omitempty"`

	// FilePath is the absolute path of the media file, or null for
	// link items, which never have one.
	FilePath *string `json:"filePath"`

	CreatedAt   int64  `json:"createdAt,omitempty"` // unix milliseconds
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Link-card fields. OGImageURL and FaviconURL each hold either a
	// remote URL or the path of a locally downloaded auxiliary asset.
	URL        string `json:"url,omitempty"`
	OGImageURL string `json:"ogImageUrl,omitempty"`
	FaviconURL string `json:"faviconUrl,omitempty"`

	// Analysis fields, written back through the metadata updater.
	Patterns    []Pattern `json:"patterns,omitempty"`
	IsAnalyzing bool      `json:"isAnalyzing,omitempty"`
	Error       string    `json:"error,omitempty"`

	// Extra carries fields this version does not know about so a
	// rewrite never drops them.
	Extra map[string]json.RawMessage `json:"-"`
}

// knownKeys are the JSON keys owned by Document itself; everything else
// lands in Extra.
var knownKeys = map[string]bool{
	"type": true, "id": true, "filePath": true, "createdAt": true,
	"width": true, "height": true, "title": true, "description": true,
	"url": true, "ogImageUrl": true, "faviconUrl": true,
	"patterns": true, "isAnalyzing": true, "error": true,
}

type documentAlias Document

// UnmarshalJSON decodes a sidecar, stashing unrecognized fields in
// Extra instead of discarding them.
func (d *Document) UnmarshalJSON(data []byte) error {
	var alias documentAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if knownKeys[key] {
			delete(raw, key)
		}
	}
	if len(raw) > 0 {
		alias.Extra = raw
	}

	*d = Document(alias)
	return nil
}

// MarshalJSON encodes the document with any preserved Extra fields
// merged back in. Known fields always win over Extra on key conflicts.
func (d Document) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(documentAlias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range d.Extra {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// Validate checks the discriminator. A document without a recognized
// type cannot be joined against a media file and is rejected on read.
func (d *Document) Validate() error {
	switch d.Type {
	case identity.KindImage, identity.KindVideo, identity.KindLink:
		return nil
	case "":
		return fmt.Errorf("metadata document has no type")
	default:
		return fmt.Errorf("unknown metadata type %q", d.Type)
	}
}

// IsLink reports whether the document describes a link card, which has
// no media file and passes through listings unconditionally.
func (d *Document) IsLink() bool {
	return d.Type == identity.KindLink
}

// Parse decodes and validates a sidecar document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed metadata: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
