// Package config defines core configuration types for semmerge.
// These types are pure data structures with no dependency on the loader.
package config

// Default values applied by NewConfig.
const (
	// DefaultSizeThreshold is the file size above which the semantic merge is
	// bypassed and the line-based tool handles the file directly.
	DefaultSizeThreshold int64 = 40 << 20

	// DefaultConflictMarkerSize matches git's default marker width.
	DefaultConflictMarkerSize = 7

	// DefaultGit is the fallback merge binary.
	DefaultGit = "git"

	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"
)

// BackupsConfig controls the backup of the current revision before it is
// overwritten by a merge.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// DialectOverride forces a dialect for paths matching a glob pattern.
type DialectOverride struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Dialect string `mapstructure:"dialect" yaml:"dialect"`
}

// Config is the root configuration structure for semmerge.
type Config struct {
	// SizeThreshold is the largest input, in bytes, that is merged semantically.
	SizeThreshold int64 `mapstructure:"size_threshold" yaml:"size_threshold"`

	// ConflictMarkerSize is the width of the conflict markers written by the
	// fallback tool.
	ConflictMarkerSize int `mapstructure:"conflict_marker_size" yaml:"conflict_marker_size"`

	// Git is the git executable used for the line-based fallback.
	Git string `mapstructure:"git" yaml:"git"`

	// Dialect forces one dialect for every file ("cmake" or "python").
	Dialect string `mapstructure:"dialect" yaml:"dialect,omitempty"`

	// Dialects maps glob patterns to dialects, checked in order.
	Dialects []DialectOverride `mapstructure:"dialects" yaml:"dialects,omitempty"`

	// Backups configures backups of the current revision.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format of the extract command.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers for check.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation regardless of Backups.Enabled.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SizeThreshold:      DefaultSizeThreshold,
		ConflictMarkerSize: DefaultConflictMarkerSize,
		Git:                DefaultGit,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		LogLevel: DefaultLogLevel,
		Format:   FormatText,
		Jobs:     0, // 0 means use GOMAXPROCS
	}
}

// BackupsEnabled reports whether backups should be written.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
