package store

import (
	"encoding/json"
	"os"
	"testing"

	"media-board/internal/identity"
	"media-board/internal/metadata"
)

func TestUpdateOverwritesSidecar(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save("img_1000_abc", pngPayload(t, 5, 5), &metadata.Document{
		Type:        identity.KindImage,
		Title:       "before analysis",
		IsAnalyzing: true,
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	mediaPath := s.paths.MediaPath("img_1000_abc")
	replacement := &metadata.Document{
		Type:     identity.KindImage,
		FilePath: &mediaPath,
		Patterns: []metadata.Pattern{
			{Name: "gingham", Confidence: 0.87, Context: "shirt"},
		},
	}
	if err := s.Update("img_1000_abc", replacement); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	data, err := os.ReadFile(s.paths.MetadataPath("img_1000_abc"))
	if err != nil {
		t.Fatalf("reading sidecar: %v", err)
	}
	doc, err := metadata.Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Patterns) != 1 || doc.Patterns[0].Name != "gingham" {
		t.Errorf("patterns = %v, want gingham", doc.Patterns)
	}
	// Overwrite, not merge: fields absent from the replacement are gone.
	if doc.Title != "" {
		t.Errorf("title = %q, want empty after overwrite", doc.Title)
	}
	if doc.IsAnalyzing {
		t.Error("isAnalyzing = true, want cleared by overwrite")
	}
}

func TestUpdateLeavesMediaBytesAlone(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save("img_1000_abc", pngPayload(t, 5, 5), &metadata.Document{Type: identity.KindImage}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	before, err := os.ReadFile(s.paths.MediaPath("img_1000_abc"))
	if err != nil {
		t.Fatalf("reading media: %v", err)
	}

	if err := s.Update("img_1000_abc", &metadata.Document{Type: identity.KindImage, Title: "patched"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	after, err := os.ReadFile(s.paths.MediaPath("img_1000_abc"))
	if err != nil {
		t.Fatalf("reading media: %v", err)
	}
	if string(before) != string(after) {
		t.Error("media bytes changed by metadata update")
	}
}

func TestUpdateCreatesGhostRecord(t *testing.T) {
	s := newTestStore(t)

	// An id never created via Save can still receive metadata. The
	// ghost sidecar exists on disk but never surfaces in listings.
	if err := s.Update("img_7000_ghost", &metadata.Document{Type: identity.KindImage}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := os.Stat(s.paths.MetadataPath("img_7000_ghost")); err != nil {
		t.Fatalf("ghost sidecar missing: %v", err)
	}

	records, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if findRecord(records, "img_7000_ghost") != nil {
		t.Error("ghost record surfaced in listing")
	}
}

func TestUpdatePreservesUnknownFields(t *testing.T) {
	s := newTestStore(t)

	input := []byte(`{"type":"image","futureField":{"a":1}}`)
	var doc metadata.Document
	if err := json.Unmarshal(input, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if err := s.Update("img_8000_fwd", &doc); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	data, err := os.ReadFile(s.paths.MetadataPath("img_8000_fwd"))
	if err != nil {
		t.Fatalf("reading sidecar: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sidecar is not JSON: %v", err)
	}
	if _, ok := raw["futureField"]; !ok {
		t.Error("unknown field dropped by rewrite")
	}
}

func TestUpdateValidation(t *testing.T) {
	s := newTestStore(t)

	if err := s.Update("", &metadata.Document{Type: identity.KindImage}); err == nil {
		t.Error("Update() with empty id succeeded")
	}
	if err := s.Update("img_1_a", nil); err == nil {
		t.Error("Update() with nil document succeeded")
	}
	if err := s.Update("img_1_a", &metadata.Document{Type: "bogus"}); err == nil {
		t.Error("Update() with invalid type succeeded")
	}
}
