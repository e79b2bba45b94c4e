package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch Format(formatStr) {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary:
		return Format(formatStr), nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, sarif, summary", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	_, err := ParseFormat(string(f))
	return err == nil && f != ""
}
