package configloader

import "github.com/yaklabco/semmerge/pkg/config"

// set overwrites *dst with v unless v is the zero value.
func set[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// merge layers override on top of base and returns a new Config. Zero values
// in override leave base untouched, so booleans can only be switched on and a
// nil Dialects list keeps the base list.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := base.Clone()
	set(&out.SizeThreshold, override.SizeThreshold)
	set(&out.ConflictMarkerSize, override.ConflictMarkerSize)
	set(&out.Git, override.Git)
	set(&out.Dialect, override.Dialect)
	set(&out.LogLevel, override.LogLevel)
	set(&out.Format, override.Format)
	set(&out.Jobs, override.Jobs)
	set(&out.NoBackups, override.NoBackups)
	set(&out.Backups.Enabled, override.Backups.Enabled)
	set(&out.Backups.Mode, override.Backups.Mode)

	if override.Dialects != nil {
		out.Dialects = append([]config.DialectOverride(nil), override.Dialects...)
	}
	return out
}

// MergeAll folds configs left to right; later layers win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
