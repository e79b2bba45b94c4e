package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WithTempDir creates a temporary directory, runs fn with its path and removes
// the directory afterwards, whether fn succeeds, fails or panics.
func WithTempDir(ctx context.Context, pattern string, fn func(dir string) error) (err error) {
	select {
	case <-ctx.Done():
		return fmt.Errorf("temp dir: %w", ctx.Err())
	default:
	}

	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			err = errors.Join(err, fmt.Errorf("remove temp dir: %w", rmErr))
		}
	}()

	return fn(dir)
}

// WriteTemp writes content to name inside dir and returns the full path.
func WriteTemp(dir, name string, content []byte) (string, error) {
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, content, DefaultFileMode); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return path, nil
}
