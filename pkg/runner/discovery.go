package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/semmerge/pkg/dialect"
)

// Discover finds files some dialect recognizes under opts.Paths. Files named
// explicitly are always included. It returns a sorted list of absolute paths.
func (r *Runner) Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		registry: r.Registry,
		workDir:  workDir,
		excludes: excludes,
		opts:     opts,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			add(absPath)
			continue
		}

		discovered, err := w.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := dialect.CompilePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude: %w", err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

type walker struct {
	registry *dialect.Registry
	workDir  string
	excludes []glob.Glob
	opts     Options
}

func (w *walker) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if w.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped.
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := w.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if w.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (w *walker) excluded(path string) bool {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(path)

	for _, g := range w.excludes {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// matches reports whether a dialect claims path by name alone.
func (w *walker) matches(path string) bool {
	if w.excluded(path) {
		return false
	}
	_, err := w.registry.Resolve(path, nil, dialect.ResolveOptions{Overrides: w.opts.Overrides})
	return err == nil
}
