// Package dialect maps files to the structural parser and definition
// extractor that understand them.
package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/semmerge/pkg/cmake"
	"github.com/yaklabco/semmerge/pkg/definition"
	"github.com/yaklabco/semmerge/pkg/python"
	"github.com/yaklabco/semmerge/pkg/syntax"
)

// Built-in dialect names.
const (
	CMake  = "cmake"
	Python = "python"
)

// Sentinel errors.
var (
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrDuplicate      = errors.New("dialect already registered")
)

// ExtractFunc splits a file into definitions.
type ExtractFunc func(filename, text string) ([]definition.Definition, error)

// Dialect describes one supported source language.
type Dialect struct {
	// Name is the identifier used in configuration and on the command line.
	Name string

	// Language is the linguist language name reported by go-enry.
	Language string

	// Extensions are file extensions including the dot, used when language
	// detection is inconclusive.
	Extensions []string

	Pipeline  syntax.Pipeline
	Extractor ExtractFunc
}

// Extract splits text into definitions.
func (d *Dialect) Extract(filename, text string) ([]definition.Definition, error) {
	return d.Extractor(filename, text)
}

// Registry holds the known dialects by name.
type Registry struct {
	dialects map[string]*Dialect
}

// NewRegistry creates a registry holding dialects.
func NewRegistry(dialects ...*Dialect) (*Registry, error) {
	reg := &Registry{dialects: make(map[string]*Dialect, len(dialects))}
	for _, d := range dialects {
		if err := reg.Register(d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Default returns a registry with the built-in CMake and Python dialects.
func Default() *Registry {
	reg, err := NewRegistry(
		&Dialect{
			Name:       CMake,
			Language:   "CMake",
			Extensions: []string{".cmake"},
			Pipeline:   cmake.Pipeline,
			Extractor:  cmake.Extract,
		},
		&Dialect{
			Name:       Python,
			Language:   "Python",
			Extensions: []string{".py", ".pyi"},
			Pipeline:   python.Pipeline,
			Extractor:  python.Extract,
		},
	)
	if err != nil {
		panic(err)
	}
	return reg
}

// Register adds a dialect.
func (r *Registry) Register(d *Dialect) error {
	key := strings.ToLower(d.Name)
	if _, exists := r.dialects[key]; exists {
		return fmt.Errorf("%s: %w", d.Name, ErrDuplicate)
	}
	r.dialects[key] = d
	return nil
}

// Lookup returns the dialect registered under name, case-insensitively.
func (r *Registry) Lookup(name string) (*Dialect, error) {
	if d, ok := r.dialects[strings.ToLower(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%q: %w (known: %s)", name, ErrUnknownDialect, strings.Join(r.Names(), ", "))
}

// Names returns the registered dialect names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dialects))
	for _, d := range r.dialects {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
