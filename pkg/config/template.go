package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a commented configuration file holding the
// default values.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(NewConfig())
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(fmt.Sprintf(`

# Files larger than this many bytes skip the semantic merge.
size_threshold: %d

# Width of the conflict markers left for unresolved regions.
conflict_marker_size: %d

# git executable used for the line-based fallback merge.
git: %s

# Force a dialect for every file: cmake or python.
# dialect: python

# Glob overrides, checked in order before language detection.
# dialects:
#   - pattern: "**/*.cmake.in"
#     dialect: cmake
#   - pattern: "SConstruct"
#     dialect: python

# Keep a copy of the current revision before it is overwritten.
backups:
  enabled: false
  mode: sidecar

# Log level: debug, info, warn or error.
log_level: %s
`, DefaultSizeThreshold, DefaultConflictMarkerSize, DefaultGit, DefaultLogLevel))

	return buf.Bytes(), nil
}

// templateToJSON renders cfg as indented JSON keyed like the YAML form.
func templateToJSON(cfg *Config) ([]byte, error) {
	doc := map[string]any{
		"size_threshold":       cfg.SizeThreshold,
		"conflict_marker_size": cfg.ConflictMarkerSize,
		"git":                  cfg.Git,
		"backups": map[string]any{
			"enabled": cfg.Backups.Enabled,
			"mode":    cfg.Backups.Mode,
		},
		"log_level": cfg.LogLevel,
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# semmerge configuration
# See: https://github.com/yaklabco/semmerge`
}
