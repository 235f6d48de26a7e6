package identity

import (
	"strings"
	"testing"
)

func TestKindForID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want Kind
	}{
		{
			name: "image prefix",
			id:   "img_1700000000000_a1b2c3",
			want: KindImage,
		},
		{
			name: "video prefix",
			id:   "vid_1700000000000_a1b2c3",
			want: KindVideo,
		},
		{
			name: "unknown prefix defaults to image",
			id:   "something_else",
			want: KindImage,
		},
		{
			name: "bare vid without separator is image",
			id:   "video",
			want: KindImage,
		},
		{
			name: "empty id",
			id:   "",
			want: KindImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KindForID(tt.id)
			if got != tt.want {
				t.Errorf("KindForID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want string
	}{
		{
			name: "video is mp4",
			kind: KindVideo,
			want: ".mp4",
		},
		{
			name: "image is png",
			kind: KindImage,
			want: ".png",
		},
		{
			name: "link falls back to png",
			kind: KindLink,
			want: ".png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtensionFor(tt.kind)
			if got != tt.want {
				t.Errorf("ExtensionFor(%v) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestMediaFilename(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{
			name: "image id",
			id:   "img_1000_abc",
			want: "img_1000_abc.png",
		},
		{
			name: "video id",
			id:   "vid_1000_abc",
			want: "vid_1000_abc.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MediaFilename(tt.id)
			if got != tt.want {
				t.Errorf("MediaFilename(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestMetadataFilename(t *testing.T) {
	if got := MetadataFilename("img_1000_abc"); got != "img_1000_abc.json" {
		t.Errorf("MetadataFilename = %q, want img_1000_abc.json", got)
	}
}

func TestNewID(t *testing.T) {
	imgID := NewID(KindImage)
	if !strings.HasPrefix(imgID, "img_") {
		t.Errorf("NewID(KindImage) = %q, want img_ prefix", imgID)
	}
	if parts := strings.Split(imgID, "_"); len(parts) != 3 {
		t.Errorf("NewID(KindImage) = %q, want three underscore-separated parts", imgID)
	}

	vidID := NewID(KindVideo)
	if !strings.HasPrefix(vidID, "vid_") {
		t.Errorf("NewID(KindVideo) = %q, want vid_ prefix", vidID)
	}
	if KindForID(vidID) != KindVideo {
		t.Errorf("KindForID(NewID(KindVideo)) = %v, want video", KindForID(vidID))
	}

	linkID := NewID(KindLink)
	if !strings.HasPrefix(linkID, "link_") {
		t.Errorf("NewID(KindLink) = %q, want link_ prefix", linkID)
	}

	// Ids must be unique by construction.
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID(KindLink)
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
