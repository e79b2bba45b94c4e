// Package python parses Python sources into indentation blocks and extracts
// top-level function and class definitions together with their decorators and
// leading comments.
package python

import (
	"strings"

	"github.com/yaklabco/semmerge/pkg/syntax"
)

const stringPrefix = `(?:[rRbBuUfF]{1,2})?`

var stringPatterns = []string{
	stringPrefix + `"""(?:\\(?:.|\n)|[^\\"]|"(?:[^"]|"[^"]))*"""`,
	stringPrefix + `'''(?:\\(?:.|\n)|[^\\']|'(?:[^']|'[^']))*'''`,
	stringPrefix + `"(?:\\(?:.|\n)|[^\\"])*"`,
	stringPrefix + `'(?:\\(?:.|\n)|[^\\'])*'`,
}

// Grammar tokenizes Python. Strings are listed before names so that prefixed
// literals such as rb"..." lex as one token.
var Grammar = syntax.MustGrammar("python",
	syntax.Rule{Kind: syntax.KindNewline, Pattern: `\n`},
	syntax.Rule{Kind: syntax.KindIndent, Pattern: `^[ \t]+`},
	syntax.Rule{Kind: syntax.KindComment, Pattern: `#.*`},
	syntax.Rule{Kind: syntax.KindString, Pattern: strings.Join(stringPatterns, "|")},
	syntax.Rule{Kind: syntax.KindName, Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
	syntax.Rule{Kind: syntax.KindNumber, Pattern: `[0-9][\p{L}\p{N}_.]*`},
	syntax.Rule{Kind: syntax.KindBackslash, Pattern: `\\`},
	syntax.Rule{Kind: syntax.KindSemicolon, Pattern: `;`},
	syntax.Rule{
		Kind:    syntax.KindOp,
		Pattern: `->|\*\*=?|//=?|<<=?|>>=?|[:!]=|[-+*/%@&|^<>=]=?|[\[\](){},:.~]`,
	},
)

// Pipeline is the structural configuration for Python: all three bracket
// kinds nest, and lines track trailing colons and backslash continuations.
var Pipeline = syntax.Pipeline{
	Grammar: Grammar,
	Pairs:   syntax.Pairs{"{": "}", "[": "]", "(": ")"},
	Lines:   syntax.LineOptions{Colon: true, Continuation: true},
}
