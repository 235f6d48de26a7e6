package linkpreview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/net/html"

	"media-board/internal/filesystem"
	"media-board/internal/logging"
	"media-board/internal/storage"
)

const (
	fetchTimeout = 10 * time.Second

	// maxAssetBytes caps a downloaded preview asset.
	maxAssetBytes = 10 << 20
)

// Preview holds what could be scraped for a link card. OGImageURL and
// FaviconURL are local filenames when the download succeeded and remote
// URLs otherwise; the store treats only the former as auxiliary assets.
type Preview struct {
	Title       string
	Description string
	OGImageURL  string
	FaviconURL  string
}

// Fetcher scrapes link-card previews and downloads their assets into
// the images directory.
type Fetcher struct {
	client *http.Client
	paths  *storage.Context
}

// NewFetcher creates a Fetcher storing assets under the given context.
func NewFetcher(paths *storage.Context) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		paths:  paths,
	}
}

// Capture fetches a page, extracts its open-graph fields and favicon,
// and downloads both assets locally. Download failures degrade to the
// remote URL; only the page fetch itself is fatal.
func (f *Fetcher) Capture(ctx context.Context, pageURL string) (*Preview, error) {
	preview, err := f.scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	if preview.OGImageURL != "" {
		if name, derr := f.download(ctx, preview.OGImageURL, "og", pageURL); derr != nil {
			logging.Warn("Failed to download og:image for %s: %v", pageURL, derr)
		} else {
			preview.OGImageURL = name
		}
	}
	if preview.FaviconURL != "" {
		if name, derr := f.download(ctx, preview.FaviconURL, "favicon", pageURL); derr != nil {
			logging.Warn("Failed to download favicon for %s: %v", pageURL, derr)
		} else {
			preview.FaviconURL = name
		}
	}
	return preview, nil
}

// scrape fetches and parses the page HTML.
func (f *Fetcher) scrape(ctx context.Context, pageURL string) (*Preview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bad link URL %q: %w", pageURL, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.Warn("failed to close response body for %s: %v", pageURL, cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch of %s returned status %d", pageURL, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	preview := &Preview{}
	var pageTitle string
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "title":
			if n.FirstChild != nil && pageTitle == "" {
				pageTitle = strings.TrimSpace(n.FirstChild.Data)
			}
		case "meta":
			prop := attr(n, "property")
			if prop == "" {
				prop = attr(n, "name")
			}
			content := attr(n, "content")
			switch prop {
			case "og:title":
				preview.Title = content
			case "og:description", "description":
				if preview.Description == "" {
					preview.Description = content
				}
			case "og:image":
				preview.OGImageURL = content
			}
		case "link":
			rel := strings.ToLower(attr(n, "rel"))
			if strings.Contains(rel, "icon") && preview.FaviconURL == "" {
				preview.FaviconURL = attr(n, "href")
			}
		}
	})

	if preview.Title == "" {
		preview.Title = pageTitle
	}
	preview.OGImageURL = resolveRef(pageURL, preview.OGImageURL)
	preview.FaviconURL = resolveRef(pageURL, preview.FaviconURL)
	return preview, nil
}

// download fetches an asset into the images directory and returns the
// local filename the sidecar should reference.
func (f *Fetcher) download(ctx context.Context, assetURL, prefix, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.Warn("failed to close asset body for %s: %v", assetURL, cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("asset fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return "", err
	}

	name := assetFilename(prefix, pageURL, assetURL)
	if err := filesystem.WriteFile(f.paths.AssetPath(name), data); err != nil {
		return "", err
	}
	logging.Debug("Downloaded %s asset for %s -> %s", prefix, pageURL, name)
	return name, nil
}

// assetFilename derives a stable, filesystem-safe name for a preview
// asset from the page host and the asset's own extension.
func assetFilename(prefix, pageURL, assetURL string) string {
	host := "unknown"
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host = strings.ReplaceAll(u.Host, ".", "_")
		host = strings.ReplaceAll(host, ":", "_")
	}

	ext := ".png"
	if prefix == "favicon" {
		ext = ".ico"
	}
	if u, err := url.Parse(assetURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" && len(e) <= 5 {
			ext = e
		}
	}

	return fmt.Sprintf("%s_%s_%d%s", prefix, host, time.Now().UnixMilli(), ext)
}

// resolveRef makes ref absolute against the page URL.
func resolveRef(pageURL, ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
