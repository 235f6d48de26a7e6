package linkpreview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"media-board/internal/storage"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="Example Page">
<meta property="og:description" content="A page about examples.">
<meta property="og:image" content="/assets/og.png">
<link rel="shortcut icon" href="/favicon.ico">
</head>
<body>hello</body>
</html>`

func newTestFetcher(t *testing.T) (*Fetcher, *storage.Context) {
	t.Helper()

	paths, err := storage.New(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	return NewFetcher(paths), paths
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if _, err := w.Write([]byte(testPage)); err != nil {
			t.Errorf("writing page: %v", err)
		}
	})
	mux.HandleFunc("/assets/og.png", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("og-image-bytes")); err != nil {
			t.Errorf("writing og image: %v", err)
		}
	})
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("favicon-bytes")); err != nil {
			t.Errorf("writing favicon: %v", err)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCapture(t *testing.T) {
	fetcher, paths := newTestFetcher(t)
	server := newTestServer(t)

	preview, err := fetcher.Capture(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	if preview.Title != "Example Page" {
		t.Errorf("title = %q, want Example Page", preview.Title)
	}
	if preview.Description != "A page about examples." {
		t.Errorf("description = %q", preview.Description)
	}

	// Both assets must be downloaded and referenced by local filename.
	if strings.HasPrefix(preview.OGImageURL, "http") {
		t.Errorf("og image = %q, want local filename", preview.OGImageURL)
	}
	if !strings.HasPrefix(preview.OGImageURL, "og_") {
		t.Errorf("og image filename = %q, want og_ prefix", preview.OGImageURL)
	}
	data, err := os.ReadFile(paths.AssetPath(preview.OGImageURL))
	if err != nil {
		t.Fatalf("og asset not on disk: %v", err)
	}
	if string(data) != "og-image-bytes" {
		t.Errorf("og asset content = %q", data)
	}

	if !strings.HasPrefix(preview.FaviconURL, "favicon_") {
		t.Errorf("favicon filename = %q, want favicon_ prefix", preview.FaviconURL)
	}
	if _, err := os.Stat(paths.AssetPath(preview.FaviconURL)); err != nil {
		t.Errorf("favicon asset not on disk: %v", err)
	}
}

func TestCaptureFallsBackToPageTitle(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(`<html><head><title>Only Title</title></head><body></body></html>`)); err != nil {
			t.Errorf("writing page: %v", err)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	preview, err := fetcher.Capture(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if preview.Title != "Only Title" {
		t.Errorf("title = %q, want Only Title", preview.Title)
	}
	if preview.OGImageURL != "" || preview.FaviconURL != "" {
		t.Errorf("assets = %q/%q, want empty", preview.OGImageURL, preview.FaviconURL)
	}
}

func TestCaptureDegradesToRemoteURLOnDownloadFailure(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// The "/" pattern is a catch-all; without this check the
		// /missing.png request would be served the page with 200.
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page := `<html><head><meta property="og:image" content="/missing.png"></head></html>`
		if _, err := w.Write([]byte(page)); err != nil {
			t.Errorf("writing page: %v", err)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	preview, err := fetcher.Capture(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if preview.OGImageURL != server.URL+"/missing.png" {
		t.Errorf("og image = %q, want remote URL fallback", preview.OGImageURL)
	}
}

func TestCapturePageFetchFailure(t *testing.T) {
	fetcher, _ := newTestFetcher(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := fetcher.Capture(context.Background(), server.URL+"/"); err == nil {
		t.Fatal("Capture() of 404 page succeeded, want error")
	}
}

func TestAssetFilename(t *testing.T) {
	name := assetFilename("og", "https://example.com/page", "https://cdn.example.com/img.jpeg")
	if !strings.HasPrefix(name, "og_example_com_") {
		t.Errorf("filename = %q, want og_example_com_ prefix", name)
	}
	if !strings.HasSuffix(name, ".jpeg") {
		t.Errorf("filename = %q, want .jpeg suffix", name)
	}

	icoName := assetFilename("favicon", "https://example.com", "https://example.com/favicon")
	if !strings.HasSuffix(icoName, ".ico") {
		t.Errorf("favicon filename = %q, want .ico default", icoName)
	}
}
