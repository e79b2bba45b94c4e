package cli

import (
	"errors"

	"github.com/yaklabco/semmerge/internal/configloader"
)

// Exit codes for semmerge. git treats any non-zero status of a merge driver
// as "conflicts remain".
const (
	// ExitSuccess indicates a clean merge or a successful check.
	ExitSuccess = 0

	// ExitConflicts indicates the merge left conflict markers in the file.
	ExitConflicts = 1

	// ExitCheckFailed indicates at least one file failed to parse.
	ExitCheckFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// Sentinel errors that map to exit codes.
var (
	// ErrConflicts is returned by merge when conflicts remain.
	ErrConflicts = errors.New("merge conflicts remain")

	// ErrCheckFailed is returned by check and extract when a file fails.
	ErrCheckFailed = errors.New("check failed")

	// ErrConfig marks configuration loading and validation failures.
	ErrConfig = errors.New("invalid configuration")

	// ErrInvalidUsage marks bad flag values.
	ErrInvalidUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrConflicts):
		return ExitConflicts
	case errors.Is(err, ErrCheckFailed):
		return ExitCheckFailed
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err is a status signal that needs no log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrConflicts) || errors.Is(err, ErrCheckFailed)
}
