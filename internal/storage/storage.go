package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"media-board/internal/identity"
	"media-board/internal/logging"
)

const (
	// AppDirName is the directory created under the platform config
	// directory when no explicit root is configured.
	AppDirName = "media-board"

	imagesDirName   = "images"
	metadataDirName = "metadata"
	trashDirName    = ".trash"
)

// Context holds the resolved storage root and every directory derived
// from it. It is constructed once at startup and passed explicitly to
// each component; nothing reads the root from process-wide state.
type Context struct {
	Root          string
	ImagesDir     string
	MetadataDir   string
	TrashImages   string
	TrashMetadata string
}

// DefaultRoot returns the platform-specific base directory for the
// store, e.g. ~/.config/media-board on Linux or
// ~/Library/Application Support/media-board on macOS.
func DefaultRoot() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// New resolves a Context rooted at root and scaffolds the directory
// layout: images/, metadata/ and their .trash mirrors.
func New(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}

	ctx := &Context{
		Root:          root,
		ImagesDir:     filepath.Join(root, imagesDirName),
		MetadataDir:   filepath.Join(root, metadataDirName),
		TrashImages:   filepath.Join(root, trashDirName, imagesDirName),
		TrashMetadata: filepath.Join(root, trashDirName, metadataDirName),
	}

	for _, dir := range []string{ctx.ImagesDir, ctx.MetadataDir, ctx.TrashImages, ctx.TrashMetadata} {
		if err := ensureDirectory(dir); err != nil {
			return nil, err
		}
	}

	if err := testWriteAccess(ctx.MetadataDir); err != nil {
		return nil, fmt.Errorf("storage root is not writable: %w", err)
	}

	logging.Debug("Storage context ready at %s", root)
	return ctx, nil
}

// MediaPath returns the active-side media file path for an id, derived
// from the id alone.
func (c *Context) MediaPath(id string) string {
	return filepath.Join(c.ImagesDir, identity.MediaFilename(id))
}

// MetadataPath returns the active-side sidecar path for an id.
func (c *Context) MetadataPath(id string) string {
	return filepath.Join(c.MetadataDir, identity.MetadataFilename(id))
}

// TrashMediaPath returns the trash-side media file path for an id.
func (c *Context) TrashMediaPath(id string) string {
	return filepath.Join(c.TrashImages, identity.MediaFilename(id))
}

// TrashMetadataPath returns the trash-side sidecar path for an id.
func (c *Context) TrashMetadataPath(id string) string {
	return filepath.Join(c.TrashMetadata, identity.MetadataFilename(id))
}

// AssetPath returns the active-side path of an auxiliary asset, which
// is addressed by filename rather than id. The name is reduced to its
// base to keep assets inside the images directory.
func (c *Context) AssetPath(name string) string {
	return filepath.Join(c.ImagesDir, filepath.Base(name))
}

// TrashAssetPath returns the trash-side path of an auxiliary asset.
func (c *Context) TrashAssetPath(name string) string {
	return filepath.Join(c.TrashImages, filepath.Base(name))
}

func ensureDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s exists but is not a directory", path)
	}
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Write access was confirmed, leftover probe file is harmless.
	}
	return nil
}
