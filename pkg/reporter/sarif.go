package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/semmerge/pkg/runner"
	"github.com/yaklabco/semmerge/pkg/source"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// ruleFileError is reported for files that could not be read or classified.
const ruleFileError = "file"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []SARIFRule `json:"rules"`
}

// SARIFRule describes one class of parse failure.
type SARIFRule struct {
	ID               string        `json:"id"`
	ShortDescription SARIFMessage  `json:"shortDescription"`
	DefaultConfig    SARIFRuleConf `json:"defaultConfiguration"`
}

// SARIFRuleConf contains rule configuration.
type SARIFRuleConf struct {
	Level string `json:"level"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFMessage contains a plain-text message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation is a file and optional region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation identifies a file.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion is a 1-based line and column range.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFReporter formats results as SARIF 2.1.0 for code scanning tools.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:    "semmerge",
			Version: r.opts.Version,
			Rules:   sarifRules(),
		}},
		Results: make([]SARIFResult, 0),
	}

	var failed int
	if result != nil {
		for _, file := range result.Files {
			if file.Error == nil {
				continue
			}
			failed++
			run.Results = append(run.Results, r.convert(file))
		}
	}

	doc := SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return failed, nil
}

func (r *SARIFReporter) convert(file runner.FileOutcome) SARIFResult {
	location := SARIFPhysicalLocation{
		ArtifactLocation: SARIFArtifactLocation{URI: filepath.ToSlash(displayPath(file.Path, r.opts.WorkingDir))},
	}

	perr, ok := file.ParseError()
	if !ok {
		return SARIFResult{
			RuleID:    ruleFileError,
			Level:     "error",
			Message:   SARIFMessage{Text: file.Error.Error()},
			Locations: []SARIFLocation{{PhysicalLocation: location}},
		}
	}

	location.Region = &SARIFRegion{
		StartLine:   perr.Span.Start.Line,
		StartColumn: perr.Span.Start.Column + 1,
	}
	if !perr.Span.IsEmpty() {
		location.Region.EndLine = perr.Span.End.Line
		location.Region.EndColumn = perr.Span.End.Column + 1
	}

	return SARIFResult{
		RuleID:    string(perr.Kind),
		Level:     "error",
		Message:   SARIFMessage{Text: perr.Message},
		Locations: []SARIFLocation{{PhysicalLocation: location}},
	}
}

func sarifRules() []SARIFRule {
	rule := func(id, text string) SARIFRule {
		return SARIFRule{
			ID:               id,
			ShortDescription: SARIFMessage{Text: text},
			DefaultConfig:    SARIFRuleConf{Level: "error"},
		}
	}
	return []SARIFRule{
		rule(string(source.KindLex), "Input not matched by any token rule"),
		rule(string(source.KindBracket), "Unmatched or mismatched bracket"),
		rule(string(source.KindIndent), "Inconsistent or unexpected indentation"),
		rule(ruleFileError, "File could not be read or classified"),
	}
}
