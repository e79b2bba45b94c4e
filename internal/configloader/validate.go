package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/semmerge/internal/logging"
	"github.com/yaklabco/semmerge/pkg/config"
	"github.com/yaklabco/semmerge/pkg/dialect"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "dialects[0].pattern").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}


// Validate checks a configuration for errors and warnings. Dialect names are
// checked against registry.
func Validate(cfg *config.Config, registry *dialect.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	addErr := func(field string, value any, format string, args ...any) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if cfg.SizeThreshold <= 0 {
		addErr("size_threshold", cfg.SizeThreshold, "size_threshold must be positive")
	}
	if cfg.ConflictMarkerSize <= 0 {
		addErr("conflict_marker_size", cfg.ConflictMarkerSize, "conflict_marker_size must be positive")
	}
	if strings.TrimSpace(cfg.Git) == "" {
		addErr("git", cfg.Git, "git executable must not be empty")
	}
	if cfg.Jobs < 0 {
		addErr("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		addErr("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}
	if cfg.LogLevel != "" && !validLogLevel(cfg.LogLevel) {
		addErr("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		addErr("format", cfg.Format, "invalid format %q; must be one of: text, json", cfg.Format)
	}

	if registry != nil {
		if cfg.Dialect != "" {
			if _, err := registry.Lookup(cfg.Dialect); err != nil {
				addErr("dialect", cfg.Dialect, "%v", err)
			}
		}
		validateOverrides(cfg, registry, result)
	}

	if cfg.Backups.Enabled && cfg.Backups.Mode == "none" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "backups",
			Message: "backups are enabled but mode is none; no backups will be written",
		})
	}

	return result
}

func validateOverrides(cfg *config.Config, registry *dialect.Registry, result *ValidationResult) {
	seen := make(map[string]int)
	for i, override := range cfg.Dialects {
		field := fmt.Sprintf("dialects[%d]", i)

		if _, err := dialect.CompilePattern(override.Pattern); err != nil || override.Pattern == "" {
			msg := "pattern must not be empty"
			if err != nil {
				msg = err.Error()
			}
			result.Errors = append(result.Errors, ValidationError{
				Field: field + ".pattern", Value: override.Pattern, Message: msg,
			})
		}
		if _, err := registry.Lookup(override.Dialect); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field: field + ".dialect", Value: override.Dialect, Message: err.Error(),
			})
		}

		if first, ok := seen[override.Pattern]; ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   override.Pattern,
				Message: fmt.Sprintf("pattern %q shadowed by dialects[%d]", override.Pattern, first),
			})
		} else {
			seen[override.Pattern] = i
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *dialect.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}

func validLogLevel(level string) bool {
	_, ok := logging.ParseLevel(level)
	return ok
}
