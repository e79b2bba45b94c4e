package config

// OutputFormat specifies how extracted definitions are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseOutputFormat returns the format named by s, defaulting to text for an
// empty string.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	if s == "" {
		return FormatText, true
	}
	f := OutputFormat(s)
	return f, f.IsValid()
}
