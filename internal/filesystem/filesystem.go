package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Move relocates a file, preferring an atomic rename. When source and
// destination sit on different filesystems (EXDEV), it falls back to
// copy-then-remove. The destination directory must already exist.
func Move(src, dst string) error {
	start := time.Now()
	err := moveFile(src, dst)
	observe().ObserveOperation("move", time.Since(start).Seconds(), err)
	return err
}

func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDeviceError(err) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// Copy duplicates a file verbatim, preserving no attributes beyond the
// default mode. Used when importing media from a source path without
// passing the bytes through memory as a single buffer.
func Copy(src, dst string) error {
	start := time.Now()
	err := copyFile(src, dst)
	observe().ObserveOperation("copy", time.Since(start).Seconds(), err)
	return err
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy bytes: %w", err)
	}
	return nil
}

// WriteFile writes data to path with 0644 permissions, recording the
// operation for metrics.
func WriteFile(path string, data []byte) error {
	start := time.Now()
	err := os.WriteFile(path, data, 0o644)
	observe().ObserveOperation("write", time.Since(start).Seconds(), err)
	return err
}

// RemoveAllChildren deletes everything inside dir but keeps dir itself,
// so the directory scaffold survives a purge.
func RemoveAllChildren(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var firstErr error
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	observe().ObserveOperation("purge", 0, firstErr)
	return firstErr
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// isCrossDeviceError checks for EXDEV, returned by rename(2) when the
// destination is on a different filesystem.
func isCrossDeviceError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EXDEV
	}
	return false
}
