package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/semmerge/internal/logging"
	"github.com/yaklabco/semmerge/pkg/definition"
	"github.com/yaklabco/semmerge/pkg/dialect"
	"github.com/yaklabco/semmerge/pkg/fsutil"
)

// Runner checks files against a dialect registry.
type Runner struct {
	Registry *dialect.Registry
}

// New creates a Runner; a nil registry means dialect.Default().
func New(registry *dialect.Registry) *Runner {
	if registry == nil {
		registry = dialect.Default()
	}
	return &Runner{Registry: registry}
}

// Run discovers files under opts.Paths and checks them concurrently.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := r.Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("checking files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			outcomes[i] = r.CheckFile(groupCtx, path, opts)
			done[i] = true
			return nil
		})
	}
	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	if waitErr != nil {
		return result, waitErr
	}

	return result, nil
}

// CheckFile reads, classifies and extracts one file, and verifies the
// definitions reassemble into the original text.
func (r *Runner) CheckFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	dia, err := r.Registry.Resolve(path, content, dialect.ResolveOptions{
		Forced:    opts.Dialect,
		Overrides: opts.Overrides,
	})
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Dialect = dia.Name

	text := string(content)
	defs, err := dia.Extract(path, text)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	if err := definition.Validate(defs, text); err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}

	outcome.Definitions = defs
	return outcome
}
