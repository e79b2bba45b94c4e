// Package cmake parses CMake build scripts into command invocations and
// extracts one definition per logical line.
package cmake

import "github.com/yaklabco/semmerge/pkg/syntax"

// Grammar tokenizes CMake. Bracket arguments are recognized as single
// delimiter tokens and their contents are lexed like ordinary arguments.
var Grammar = syntax.MustGrammar("cmake",
	syntax.Rule{Kind: syntax.KindBracket, Pattern: `#?\[=*\[`},
	syntax.Rule{Kind: syntax.KindComment, Pattern: `#.*`},
	syntax.Rule{Kind: syntax.KindQuoted, Pattern: `"(?:[^\\"]|\\.)*"`},
	syntax.Rule{
		Kind:    syntax.KindUnquoted,
		Pattern: `(?:[^#(), \t\r\n]|\\.)(?:[^#$(), \t\r\n]|\\.|\$(?:\([^)]*\))?)*`,
	},
	syntax.Rule{Kind: syntax.KindSpecial, Pattern: `[()]`},
	syntax.Rule{Kind: syntax.KindNewline, Pattern: `\n`},
	syntax.Rule{Kind: syntax.KindIndent, Pattern: `^[ \t]+`},
)

// Pipeline is the structural configuration for CMake: parentheses and
// square brackets nest, lines have no colon or continuation handling.
var Pipeline = syntax.Pipeline{
	Grammar: Grammar,
	Pairs:   syntax.Pairs{"(": ")", "[": "]"},
	Lines:   syntax.LineOptions{},
}
