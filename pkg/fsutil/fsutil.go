// Package fsutil provides the file system primitives of the merge driver:
// guarded reads, atomic writes, sidecar backups and scoped temporary
// directories.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo captures the state of a file when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// Size is the file size in bytes.
	Size int64
}

// Stat returns the FileInfo of a regular file without reading it.
func Stat(ctx context.Context, path string) (*FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("stat: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	return &FileInfo{Path: path, Mode: stat.Mode(), Size: stat.Size()}, nil
}

// ReadFile reads a file and returns its content along with metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	info, err := Stat(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	info.Size = int64(len(content))

	return content, info, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("access %s: %w", path, err)
	}
}
