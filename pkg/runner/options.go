// Package runner checks many files concurrently: each file is parsed with its
// dialect and cut into definitions, and every failure is collected.
package runner

import "github.com/yaklabco/semmerge/pkg/dialect"

// Options controls a multi-file check.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are glob patterns, relative to WorkingDir, used to skip
	// files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Dialect forces a dialect for every file. Directory walks still only
	// pick up files some dialect recognizes.
	Dialect string

	// Overrides map glob patterns to dialects.
	Overrides []dialect.Override
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
