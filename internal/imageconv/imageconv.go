package imageconv

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	// Decoders for the source formats the importer accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP format support
)

const dataURLPrefix = "data:"

// IsDataURL reports whether a save payload carries inline bytes rather
// than a source file path. The caller signals which by the payload's
// leading scheme.
func IsDataURL(payload string) bool {
	return strings.HasPrefix(payload, dataURLPrefix)
}

// DecodeDataURL extracts the raw bytes and declared MIME type from a
// data: URL. Only base64 encoding is supported, which is what the
// import surface produces.
func DecodeDataURL(payload string) ([]byte, string, error) {
	if !IsDataURL(payload) {
		return nil, "", fmt.Errorf("payload is not a data URL")
	}

	comma := strings.IndexByte(payload, ',')
	if comma < 0 {
		return nil, "", fmt.Errorf("data URL has no payload separator")
	}

	header := payload[len(dataURLPrefix):comma]
	if !strings.HasSuffix(header, ";base64") {
		return nil, "", fmt.Errorf("data URL is not base64 encoded")
	}
	mime := strings.TrimSuffix(header, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload[comma+1:])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return data, mime, nil
}

// EnsurePNG converts inline image bytes to PNG. Bytes already declared
// as PNG pass through untouched; anything else is decoded and
// re-encoded, so images are always persisted as PNG regardless of
// source format.
func EnsurePNG(data []byte, mime string) ([]byte, error) {
	if mime == "image/png" {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", mime, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Dimensions returns the pixel size of encoded image bytes without
// fully decoding the image.
func Dimensions(data []byte) (width, height int, err error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return config.Width, config.Height, nil
}
