package configloader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/semmerge/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// ErrConfigExists is returned when init would overwrite an existing file.
var ErrConfigExists = errors.New("config file already exists")

// InitOptions controls writing a default configuration file.
type InitOptions struct {
	// Path is the file to write; empty means .semmerge.yml in the working directory.
	Path string

	// Force overwrites an existing file without asking.
	Force bool

	// NonInteractive disables the overwrite prompt.
	NonInteractive bool

	// In and Out are used for the overwrite prompt; nil means stdin/stdout.
	In  io.Reader
	Out io.Writer
}

// WriteDefaultConfig writes the commented default template. An existing file
// is only replaced with Force, or after the user confirms on a terminal.
// Returns the path written.
func WriteDefaultConfig(opts InitOptions) (string, error) {
	path := opts.Path
	if path == "" {
		path = ProjectConfigName
	}

	if fileExists(path) && !opts.Force {
		if opts.NonInteractive || !isInteractive(opts.In) {
			return "", fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
		}
		ok, err := promptOverwrite(path, opts.In, opts.Out)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%s: %w", path, ErrConfigExists)
		}
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{})
	if err != nil {
		return "", fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

func promptOverwrite(path string, in io.Reader, out io.Writer) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	if _, err := fmt.Fprintf(out, "%s already exists. Overwrite? [y/N] ", path); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if in (or stdin when nil) is a terminal. A
// reader that is not a file is scripted input and may be prompted.
func isInteractive(in io.Reader) bool {
	if in == nil {
		in = os.Stdin
	}
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}
