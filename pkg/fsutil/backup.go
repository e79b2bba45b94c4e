package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the pre-merge file next to the original with
	// a .semmerge.orig suffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".semmerge.orig"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the backup defaults: disabled, sidecar mode.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{
		Enabled: false,
		Mode:    BackupModeSidecar,
	}
}

// BackupPath returns the backup path for the given file, or "" when mode
// disables backups. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its backup location unless a
// backup already exists. Returns true if a backup was written.
//
// An existing backup is never overwritten, so repeated merges of the same
// file keep the oldest content.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}

	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}
