package merge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/yaklabco/semmerge/internal/logging"
	"github.com/yaklabco/semmerge/pkg/config"
	"github.com/yaklabco/semmerge/pkg/dialect"
	"github.com/yaklabco/semmerge/pkg/fallback"
	"github.com/yaklabco/semmerge/pkg/fsutil"
	"github.com/yaklabco/semmerge/pkg/source"
)

// Mode says how a file was merged.
type Mode string

const (
	// ModeSemantic means the rewritten current and other revisions agreed.
	ModeSemantic Mode = "semantic"

	// ModeFallback means the rewritten revisions went to the line-based tool.
	ModeFallback Mode = "fallback"

	// ModeBypass means the original files went to the line-based tool.
	ModeBypass Mode = "bypass"
)

// Request describes one merge-driver invocation. The result is written to
// CurrentPath.
type Request struct {
	AncestorPath string
	CurrentPath  string
	OtherPath    string

	// Name is the path of the file in the repository. It selects the dialect
	// and names the file in diagnostics; empty means CurrentPath.
	Name string

	// Labels for conflict markers; empty means the corresponding path.
	AncestorLabel string
	CurrentLabel  string
	OtherLabel    string

	// MarkerSize overrides the configured conflict marker width.
	MarkerSize int

	// Dialect forces a dialect by name.
	Dialect string
}

func (r Request) name() string {
	if r.Name != "" {
		return r.Name
	}
	return r.CurrentPath
}

// Outcome reports what Run did.
type Outcome struct {
	// Clean is true when no conflicts remain in CurrentPath.
	Clean bool

	Mode Mode

	// Reason explains a bypass.
	Reason string

	// Dialect is the dialect used, empty on a bypass before resolution.
	Dialect string

	// Result is the semantic merge result; nil on a bypass.
	Result *Result

	// Backup is true when a backup of the current revision was written.
	Backup bool
}

// Driver runs file-level merges.
type Driver struct {
	Fallback fallback.Tool
	Dialects *dialect.Registry
	Config   *config.Config
}

// NewDriver returns a Driver with the built-in dialects, merging through
// git merge-file. A nil cfg means config.NewConfig().
func NewDriver(cfg *config.Config) *Driver {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Driver{
		Fallback: fallback.GitMergeFile{Binary: cfg.Git},
		Dialects: dialect.Default(),
		Config:   cfg,
	}
}

type revision struct {
	label   string
	path    string
	content []byte
	info    *fsutil.FileInfo
}

// Run merges the three files of req. Any input the semantic merge cannot
// handle is passed unchanged to the fallback tool. Errors are returned only
// when files cannot be read or written or the fallback tool cannot run.
func (d *Driver) Run(ctx context.Context, req Request) (*Outcome, error) {
	cfg := d.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	ctx = logging.WithFields(ctx, logging.FieldPath, req.name())
	logger := logging.FromContext(ctx)

	revs := []*revision{
		{label: "ancestor", path: req.AncestorPath},
		{label: "current", path: req.CurrentPath},
		{label: "other", path: req.OtherPath},
	}

	reason, err := d.guard(ctx, cfg, revs)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return d.bypass(ctx, logger, cfg, req, "", reason)
	}
	anc, cur, oth := revs[0], revs[1], revs[2]

	dia, err := d.Dialects.Resolve(req.name(), cur.content, dialect.ResolveOptions{
		Forced: lo.CoalesceOrEmpty(req.Dialect, cfg.Dialect),
		Overrides: lo.Map(cfg.Dialects, func(o config.DialectOverride, _ int) dialect.Override {
			return dialect.Override{Pattern: o.Pattern, Dialect: o.Dialect}
		}),
	})
	if err != nil {
		return d.bypass(ctx, logger, cfg, req, "", err.Error())
	}
	logger = logger.With(logging.FieldDialect, dia.Name)

	result, err := Merge(dia, Input{
		Filename: req.name(),
		Ancestor: string(anc.content),
		Current:  string(cur.content),
		Other:    string(oth.content),
	})
	if err != nil {
		var perr *source.Error
		if errors.As(err, &perr) {
			logger.Warn("parse failed, using line-based merge", logging.FieldDiagnostic, "\n"+perr.Diagnostic())
		}
		return d.bypass(ctx, logger, cfg, req, dia.Name, err.Error())
	}

	logger.Debug("aligned definitions",
		logging.FieldDefinitions, result.Definitions,
		logging.FieldFolded, result.Folded,
		logging.FieldConflicts, result.Conflicts)

	outcome := &Outcome{Mode: ModeSemantic, Dialect: dia.Name, Result: result}

	if outcome.Backup, err = d.backup(ctx, cfg, req.CurrentPath); err != nil {
		return nil, err
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, req.CurrentPath, []byte(result.Current), cur.info.Mode)
	if err != nil {
		return nil, fmt.Errorf("write merged result: %w", err)
	}
	logger.Debug("wrote current revision", logging.FieldWritten, written)

	if result.Clean {
		outcome.Clean = true
		logger.Info("merged", logging.FieldMode, outcome.Mode)
		return outcome, nil
	}

	outcome.Mode = ModeFallback
	err = fsutil.WithTempDir(ctx, "semmerge-*", func(dir string) error {
		ext := filepath.Ext(req.name())
		ancPath, err := fsutil.WriteTemp(dir, "ancestor"+ext, []byte(result.Ancestor))
		if err != nil {
			return err
		}
		othPath, err := fsutil.WriteTemp(dir, "other"+ext, []byte(result.Other))
		if err != nil {
			return err
		}

		outcome.Clean, err = d.Fallback.Merge(ctx, fallback.Request{
			CurrentPath:   req.CurrentPath,
			AncestorPath:  ancPath,
			OtherPath:     othPath,
			CurrentLabel:  lo.CoalesceOrEmpty(req.CurrentLabel, req.CurrentPath),
			AncestorLabel: lo.CoalesceOrEmpty(req.AncestorLabel, req.AncestorPath),
			OtherLabel:    lo.CoalesceOrEmpty(req.OtherLabel, req.OtherPath),
			MarkerSize:    markerSize(cfg, req),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fallback merge: %w", err)
	}

	logger.Info("merged", logging.FieldMode, outcome.Mode, logging.FieldClean, outcome.Clean)
	return outcome, nil
}

// guard reads the three revisions. It returns a non-empty reason when an
// input is too large or not UTF-8; oversized files are not read.
func (d *Driver) guard(ctx context.Context, cfg *config.Config, revs []*revision) (string, error) {
	for _, rev := range revs {
		info, err := fsutil.Stat(ctx, rev.path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", rev.label, err)
		}
		if cfg.SizeThreshold > 0 && info.Size > cfg.SizeThreshold {
			return fmt.Sprintf("%s is %s, over the %s limit", rev.label,
				humanize.IBytes(uint64(info.Size)), humanize.IBytes(uint64(cfg.SizeThreshold))), nil
		}
		rev.info = info
	}

	for _, rev := range revs {
		content, info, err := fsutil.ReadFile(ctx, rev.path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", rev.label, err)
		}
		if !utf8.Valid(content) {
			return rev.label + " is not valid UTF-8", nil
		}
		rev.content, rev.info = content, info
	}
	return "", nil
}

// bypass runs the fallback tool on the original files.
func (d *Driver) bypass(
	ctx context.Context,
	logger *log.Logger,
	cfg *config.Config,
	req Request,
	dialectName, reason string,
) (*Outcome, error) {
	logger.Warn("semantic merge skipped", logging.FieldReason, reason)

	outcome := &Outcome{Mode: ModeBypass, Reason: reason, Dialect: dialectName}

	var err error
	if outcome.Backup, err = d.backup(ctx, cfg, req.CurrentPath); err != nil {
		return nil, err
	}

	outcome.Clean, err = d.Fallback.Merge(ctx, fallback.Request{
		CurrentPath:   req.CurrentPath,
		AncestorPath:  req.AncestorPath,
		OtherPath:     req.OtherPath,
		CurrentLabel:  req.CurrentLabel,
		AncestorLabel: req.AncestorLabel,
		OtherLabel:    req.OtherLabel,
		MarkerSize:    markerSize(cfg, req),
	})
	if err != nil {
		return nil, fmt.Errorf("fallback merge: %w", err)
	}
	return outcome, nil
}

func (d *Driver) backup(ctx context.Context, cfg *config.Config, path string) (bool, error) {
	if !cfg.BackupsEnabled() {
		return false, nil
	}
	created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{
		Enabled: true,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	})
	if err != nil {
		return false, fmt.Errorf("backup current revision: %w", err)
	}
	return created, nil
}

func markerSize(cfg *config.Config, req Request) int {
	switch {
	case req.MarkerSize > 0:
		return req.MarkerSize
	case cfg.ConflictMarkerSize > 0:
		return cfg.ConflictMarkerSize
	default:
		return fallback.DefaultMarkerSize
	}
}
