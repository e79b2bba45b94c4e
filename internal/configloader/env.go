package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/semmerge/pkg/config"
)

// envVarPrefix is the prefix for all semmerge environment variables.
const envVarPrefix = "SEMMERGE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSize
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SIZE_THRESHOLD":       {"size_threshold", envTypeSize, "Largest file, in bytes, merged semantically"},
	"CONFLICT_MARKER_SIZE": {"conflict_marker_size", envTypeInt, "Width of conflict markers"},
	"GIT":                  {"git", envTypeString, "git executable used for the fallback merge"},
	"DIALECT":              {"dialect", envTypeString, "Force a dialect: cmake or python"},
	"BACKUPS_ENABLED":      {"backups.enabled", envTypeBool, "Back up the current revision: true or false"},
	"BACKUPS_MODE":         {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"LOG_LEVEL":            {"log_level", envTypeString, "Log level: debug, info, warn or error"},
	"NO_BACKUPS":           {"no_backups", envTypeBool, "Disable backups: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with SEMMERGE_ (e.g., SEMMERGE_DIALECT).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value, ok := lookup(envVar)
		if !ok || value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, int64(i))
	case envTypeSize:
		size, err := ParseSize(value)
		if err != nil {
			return fmt.Errorf("invalid size for %s: %w", envVar, err)
		}
		return setIntField(cfg, mapping.field, size)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "git":
		cfg.Git = value
	case "dialect":
		cfg.Dialect = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int64) error {
	switch field {
	case "size_threshold":
		cfg.SizeThreshold = value
	case "conflict_marker_size":
		cfg.ConflictMarkerSize = int(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
