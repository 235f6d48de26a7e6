package imageconv

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

// encodeTestImage returns encoded bytes of a solid 10x10 image.
func encodeTestImage(t *testing.T, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	default:
		t.Fatalf("unsupported test format %q", format)
	}
	if err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestIsDataURL(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{
			name:    "data URL",
			payload: "data:image/png;base64,aGk=",
			want:    true,
		},
		{
			name:    "absolute path",
			payload: "/home/user/photo.jpg",
			want:    false,
		},
		{
			name:    "empty",
			payload: "",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDataURL(tt.payload); got != tt.want {
				t.Errorf("IsDataURL(%q) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}

func TestDecodeDataURL(t *testing.T) {
	pngBytes := encodeTestImage(t, "png")

	data, mime, err := DecodeDataURL(dataURL("image/png", pngBytes))
	if err != nil {
		t.Fatalf("DecodeDataURL() error = %v", err)
	}
	if mime != "image/png" {
		t.Errorf("mime = %q, want image/png", mime)
	}
	if !bytes.Equal(data, pngBytes) {
		t.Error("decoded bytes differ from original")
	}
}

func TestDecodeDataURLErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "not a data URL",
			payload: "/some/path.png",
		},
		{
			name:    "missing separator",
			payload: "data:image/png;base64",
		},
		{
			name:    "not base64",
			payload: "data:image/png,rawdata",
		},
		{
			name:    "invalid base64 payload",
			payload: "data:image/png;base64,!!!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeDataURL(tt.payload); err == nil {
				t.Errorf("DecodeDataURL(%q) succeeded, want error", tt.payload)
			}
		})
	}
}

func TestEnsurePNGPassThrough(t *testing.T) {
	pngBytes := encodeTestImage(t, "png")

	out, err := EnsurePNG(pngBytes, "image/png")
	if err != nil {
		t.Fatalf("EnsurePNG() error = %v", err)
	}
	if !bytes.Equal(out, pngBytes) {
		t.Error("PNG input was re-encoded, want pass-through")
	}
}

func TestEnsurePNGConvertsJPEG(t *testing.T) {
	jpegBytes := encodeTestImage(t, "jpeg")

	out, err := EnsurePNG(jpegBytes, "image/jpeg")
	if err != nil {
		t.Fatalf("EnsurePNG() error = %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding converted output: %v", err)
	}
	if format != "png" {
		t.Errorf("converted format = %q, want png", format)
	}
	if cfg.Width != 10 || cfg.Height != 10 {
		t.Errorf("converted size = %dx%d, want 10x10", cfg.Width, cfg.Height)
	}
}

func TestEnsurePNGRejectsGarbage(t *testing.T) {
	_, err := EnsurePNG([]byte("definitely not an image"), "image/jpeg")
	if err == nil {
		t.Fatal("EnsurePNG() of garbage succeeded, want error")
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error = %v, want decode failure", err)
	}
}

func TestDimensions(t *testing.T) {
	pngBytes := encodeTestImage(t, "png")

	w, h, err := Dimensions(pngBytes)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 10 || h != 10 {
		t.Errorf("Dimensions() = %dx%d, want 10x10", w, h)
	}

	if _, _, err := Dimensions([]byte("nope")); err == nil {
		t.Error("Dimensions() of garbage succeeded, want error")
	}
}
