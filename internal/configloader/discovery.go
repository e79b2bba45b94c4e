package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
)

// ConfigPaths holds the configuration files found for one run. Missing
// layers are empty strings.
type ConfigPaths struct {
	// System is the machine-wide file, /etc/semmerge/config.yaml on Unix.
	System string

	// User is $XDG_CONFIG_HOME/semmerge/config.yaml.
	User string

	// Project is the nearest .semmerge.yml at or above the working directory.
	Project string

	// Explicit is the --config file.
	Explicit string
}

// ProjectConfigName is the file written by "semmerge init".
const ProjectConfigName = ".semmerge.yml"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{ProjectConfigName, ".semmerge.yaml", "semmerge.yml", "semmerge.yaml"}
	layerConfigFiles   = []string{"config.yaml", "config.yml"}

	// A linked worktree has a .git file rather than a directory.
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{Project: project}
	paths.System, _ = firstFile(systemConfigDir(), layerConfigFiles)
	if dir := userConfigDir(); dir != "" {
		paths.User, _ = firstFile(dir, layerConfigFiles)
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/semmerge"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "semmerge")
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "semmerge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "semmerge")
}

// FindProjectConfig returns the nearest project config file at or above
// startDir (the working directory when empty). The search ends at a
// repository root, the home directory or the filesystem root; "" means none.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()
	for candidate := range ancestors(dir) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path, ok := firstFile(candidate, projectConfigFiles); ok {
			return path, nil
		}
		if isVCSRoot(candidate) || candidate == home {
			break
		}
	}
	return "", nil
}

// ancestors yields dir and each of its parents up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) (string, bool) {
	return lo.Find(lo.Map(names, func(name string, _ int) string {
		return filepath.Join(dir, name)
	}), fileExists)
}

func isVCSRoot(dir string) bool {
	return lo.SomeBy(vcsRootMarkers, func(marker string) bool {
		_, err := os.Stat(filepath.Join(dir, marker))
		return err == nil
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
