package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/semmerge/pkg/config"
)

// isolatedDir returns a temp directory that looks like a repository root so
// the upward search never leaves it.
func isolatedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(isolatedDir(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.SizeThreshold != config.DefaultSizeThreshold {
		t.Errorf("size_threshold = %d, want %d", cfg.SizeThreshold, config.DefaultSizeThreshold)
	}
	if cfg.ConflictMarkerSize != config.DefaultConflictMarkerSize {
		t.Errorf("conflict_marker_size = %d", cfg.ConflictMarkerSize)
	}
	if cfg.Git != "git" {
		t.Errorf("git = %q", cfg.Git)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	root := isolatedDir(t)
	writeFile(t, filepath.Join(root, ".semmerge.yml"), `
conflict_marker_size: 12
dialects:
  - pattern: "**/*.cmake.in"
    dialect: cmake
`)
	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.ConflictMarkerSize != 12 {
		t.Errorf("conflict_marker_size = %d, want 12", result.Config.ConflictMarkerSize)
	}
	if len(result.Config.Dialects) != 1 || result.Config.Dialects[0].Dialect != "cmake" {
		t.Errorf("dialects = %+v", result.Config.Dialects)
	}
	if result.Config.SizeThreshold != config.DefaultSizeThreshold {
		t.Errorf("unset keys must keep defaults, size_threshold = %d", result.Config.SizeThreshold)
	}
	if len(result.LoadedFrom) != 1 || filepath.Base(result.LoadedFrom[0]) != ".semmerge.yml" {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_StopsAtRepositoryRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".semmerge.yml"), "conflict_marker_size: 3\n")
	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(repo))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.ConflictMarkerSize != config.DefaultConflictMarkerSize {
		t.Errorf("config outside the repository was loaded")
	}
}

func TestLoad_ExplicitAndCLIPrecedence(t *testing.T) {
	t.Parallel()

	dir := isolatedDir(t)
	writeFile(t, filepath.Join(dir, ".semmerge.yml"), "dialect: cmake\ngit: /usr/bin/git\n")
	explicit := filepath.Join(dir, "other.yml")
	writeFile(t, explicit, "dialect: python\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{ConflictMarkerSize: 20, Jobs: 3}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Dialect != "python" {
		t.Errorf("explicit config should override project config, dialect = %q", cfg.Dialect)
	}
	if cfg.Git != "/usr/bin/git" {
		t.Errorf("git = %q", cfg.Git)
	}
	if cfg.ConflictMarkerSize != 20 || cfg.Jobs != 3 {
		t.Errorf("CLI overrides not applied: %+v", cfg)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"unknown dialect", "dialect: fortran\n", "dialect"},
		{"bad glob", "dialects:\n  - pattern: \"[\"\n    dialect: cmake\n", "dialects[0].pattern"},
		{"override dialect", "dialects:\n  - pattern: x\n    dialect: perl\n", "dialects[0].dialect"},
		{"negative size", "size_threshold: -1\n", "size_threshold"},
		{"backup mode", "backups:\n  mode: xdg\n", "backups.mode"},
		{"log level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := isolatedDir(t)
			writeFile(t, filepath.Join(dir, ".semmerge.yml"), tt.content)

			_, err := Load(context.Background(), isolatedOptions(dir))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := isolatedDir(t)
	writeFile(t, filepath.Join(dir, ".semmerge.yml"), "size_threshold: [\n")

	_, err := Load(context.Background(), isolatedOptions(dir))
	if err == nil || !strings.Contains(err.Error(), "load project config") {
		t.Fatalf("expected project config error, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(isolatedDir(t)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadFromLookup(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"SEMMERGE_SIZE_THRESHOLD":       "1MiB",
		"SEMMERGE_CONFLICT_MARKER_SIZE": "9",
		"SEMMERGE_DIALECT":              "python",
		"SEMMERGE_BACKUPS_ENABLED":      "true",
		"SEMMERGE_LOG_LEVEL":            "debug",
		"SEMMERGE_UNRELATED":            "x",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := config.NewConfig()
	if err := loadFromLookup(cfg, lookup); err != nil {
		t.Fatalf("loadFromLookup() error = %v", err)
	}

	if cfg.SizeThreshold != 1<<20 {
		t.Errorf("size_threshold = %d", cfg.SizeThreshold)
	}
	if cfg.ConflictMarkerSize != 9 || cfg.Dialect != "python" || !cfg.Backups.Enabled || cfg.LogLevel != "debug" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoadFromLookup_Invalid(t *testing.T) {
	t.Parallel()

	for key, value := range map[string]string{
		"SEMMERGE_BACKUPS_ENABLED":      "maybe",
		"SEMMERGE_CONFLICT_MARKER_SIZE": "wide",
		"SEMMERGE_SIZE_THRESHOLD":       "lots",
	} {
		lookup := func(k string) (string, bool) {
			if k == key {
				return value, true
			}
			return "", false
		}
		err := loadFromLookup(config.NewConfig(), lookup)
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Errorf("%s=%s: expected error naming the variable, got %v", key, value, err)
		}
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("got %d vars, want %d", len(vars), len(envMappings))
	}
	for i := 1; i < len(vars); i++ {
		if vars[i-1].Name >= vars[i].Name {
			t.Errorf("not sorted: %s before %s", vars[i-1].Name, vars[i].Name)
		}
	}
	if got := GetEnvVarName("dialect"); got != "SEMMERGE_DIALECT" {
		t.Errorf("GetEnvVarName(dialect) = %q", got)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Dialects = []config.DialectOverride{{Pattern: "a", Dialect: "cmake"}}

	result := MergeAll(base, &config.Config{Backups: config.BackupsConfig{Enabled: true}}, &config.Config{Git: "g"})
	if !result.Backups.Enabled || result.Backups.Mode != "sidecar" {
		t.Errorf("backups = %+v", result.Backups)
	}
	if result.Git != "g" {
		t.Errorf("git = %q", result.Git)
	}
	if len(result.Dialects) != 1 {
		t.Errorf("dialects lost: %+v", result.Dialects)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Backups = config.BackupsConfig{Enabled: true, Mode: "none"}
	cfg.Dialects = []config.DialectOverride{
		{Pattern: "*.txt", Dialect: "cmake"},
		{Pattern: "*.txt", Dialect: "python"},
	}

	result := ValidateWithFile(cfg, nil, "x.yml")
	if !result.Valid() {
		t.Fatalf("unexpected errors: %v", result.AllMessages())
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("nil registry skips dialect checks, warnings = %v", result.AllMessages())
	}
	if !strings.HasPrefix(result.Warnings[0].Error(), "x.yml: backups: ") {
		t.Errorf("warning = %q", result.Warnings[0].Error())
	}
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := map[string]int64{
		"41943040": 40 << 20,
		"40MiB":    40 << 20,
		"1 kB":     1000,
	}
	for in, want := range tests {
		got, err := ParseSize(in)
		if err != nil {
			t.Errorf("ParseSize(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseSize(%q) = %d, want %d", in, got, want)
		}
	}

	if _, err := ParseSize("forty"); err == nil {
		t.Error("expected error for non-numeric size")
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ProjectConfigName)

	got, err := WriteDefaultConfig(InitOptions{Path: path, NonInteractive: true})
	if err != nil {
		t.Fatalf("WriteDefaultConfig() error = %v", err)
	}
	if got != path {
		t.Errorf("path = %q", got)
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if cfg.ConflictMarkerSize != config.DefaultConflictMarkerSize {
		t.Errorf("conflict_marker_size = %d", cfg.ConflictMarkerSize)
	}

	_, err = WriteDefaultConfig(InitOptions{Path: path, NonInteractive: true})
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}

	if _, err := WriteDefaultConfig(InitOptions{Path: path, Force: true}); err != nil {
		t.Fatalf("--force should overwrite: %v", err)
	}
}

func TestWriteDefaultConfig_Prompt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectConfigName)
	writeFile(t, path, "# mine\n")

	var out strings.Builder
	_, err := WriteDefaultConfig(InitOptions{Path: path, In: strings.NewReader("n\n"), Out: &out})
	if !errors.Is(err, ErrConfigExists) {
		t.Fatalf("declined prompt should keep the file, got %v", err)
	}
	if !strings.Contains(out.String(), "Overwrite? [y/N]") {
		t.Errorf("prompt = %q", out.String())
	}

	_, err = WriteDefaultConfig(InitOptions{Path: path, In: strings.NewReader("yes\n"), Out: &out})
	if err != nil {
		t.Fatalf("confirmed prompt: %v", err)
	}
	content, _ := os.ReadFile(path)
	if strings.HasPrefix(string(content), "# mine") {
		t.Error("file was not overwritten")
	}
}
