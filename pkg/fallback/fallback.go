// Package fallback runs the line-based three-way merge that resolves whatever
// the semantic merge leaves behind.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// DefaultMarkerSize is the conflict marker width used when none is given.
const DefaultMarkerSize = 7

// Request names the three files of a line-based merge. The result is
// written to CurrentPath.
type Request struct {
	CurrentPath  string
	AncestorPath string
	OtherPath    string

	CurrentLabel  string
	AncestorLabel string
	OtherLabel    string

	// MarkerSize is the width of conflict markers; 0 means DefaultMarkerSize.
	MarkerSize int
}

// Tool merges three files line by line.
type Tool interface {
	// Merge rewrites req.CurrentPath with the merge result. It returns true
	// when no conflicts remain. An error means the tool could not run at all.
	Merge(ctx context.Context, req Request) (bool, error)
}

// GitMergeFile runs "git merge-file".
type GitMergeFile struct {
	// Binary is the git executable; empty means "git" on PATH.
	Binary string
}

// Args returns the git command-line arguments for req.
func (g GitMergeFile) Args(req Request) []string {
	size := req.MarkerSize
	if size <= 0 {
		size = DefaultMarkerSize
	}

	return []string{
		"merge-file",
		"-L", labelOr(req.CurrentLabel, req.CurrentPath),
		"-L", labelOr(req.AncestorLabel, req.AncestorPath),
		"-L", labelOr(req.OtherLabel, req.OtherPath),
		"--marker-size=" + strconv.Itoa(size),
		req.CurrentPath,
		req.AncestorPath,
		req.OtherPath,
	}
}

// Merge implements Tool. git merge-file exits with the number of conflicts,
// so any positive status is an unresolved merge rather than an error.
func (g GitMergeFile) Merge(ctx context.Context, req Request) (bool, error) {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, g.Args(req)...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return true, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return false, nil
	}
	return false, fmt.Errorf("run %s merge-file: %w: %s", binary, err, out)
}

func labelOr(label, path string) string {
	if label != "" {
		return label
	}
	return path
}

// Func adapts a function to the Tool interface.
type Func func(ctx context.Context, req Request) (bool, error)

// Merge implements Tool.
func (f Func) Merge(ctx context.Context, req Request) (bool, error) {
	return f(ctx, req)
}
