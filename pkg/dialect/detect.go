package dialect

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"
)

// maxDetectBytes bounds the content handed to the language classifier.
const maxDetectBytes = 16 << 10

// Override forces a dialect for files matching a glob pattern.
type Override struct {
	Pattern string `yaml:"pattern"`
	Dialect string `yaml:"dialect"`
}

// ResolveOptions controls dialect resolution.
type ResolveOptions struct {
	// Forced names the dialect to use unconditionally.
	Forced string

	// Overrides are tried in order before language detection.
	Overrides []Override
}

// CompilePattern compiles a dialect override glob. "*" does not cross "/";
// "**" does.
func CompilePattern(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return g, nil
}

// Resolve picks the dialect for filename. The forced dialect wins, then the
// first matching override, then the language go-enry detects from the file
// name and content, then the file extension.
func (r *Registry) Resolve(filename string, content []byte, opts ResolveOptions) (*Dialect, error) {
	if opts.Forced != "" {
		return r.Lookup(opts.Forced)
	}

	slashed := filepath.ToSlash(filename)
	for _, override := range opts.Overrides {
		g, err := CompilePattern(override.Pattern)
		if err != nil {
			return nil, err
		}
		if g.Match(slashed) || g.Match(path.Base(slashed)) {
			return r.Lookup(override.Dialect)
		}
	}

	if lang := Detect(filename, content); lang != "" {
		for _, d := range r.dialects {
			if strings.EqualFold(d.Language, lang) {
				return d, nil
			}
		}
	}

	ext := strings.ToLower(path.Ext(slashed))
	for _, d := range r.dialects {
		for _, candidate := range d.Extensions {
			if ext == candidate {
				return d, nil
			}
		}
	}

	return nil, fmt.Errorf("%s: %w", filename, ErrUnknownDialect)
}

// Detect returns the linguist language name of a file, or "" when go-enry
// cannot tell.
func Detect(filename string, content []byte) string {
	base := path.Base(filepath.ToSlash(filename))
	if len(content) > maxDetectBytes {
		content = content[:maxDetectBytes]
	}

	// Strategy 1: well-known file names such as CMakeLists.txt.
	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return lang
	}

	// Strategy 2: a shebang line overrides the extension.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	// Strategy 3: the full detection pipeline.
	return enry.GetLanguage(base, content)
}
