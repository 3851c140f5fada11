package diagnostic

import (
	"fmt"
	"strings"

	"github.com/viant/typedmind/graph"
)

// Severity of a diagnostic
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Code classifies diagnostics by error taxonomy
type Code string

const (
	CodeParse          Code = "parse"
	CodeNamingConflict Code = "naming-conflict"
	CodeReference      Code = "reference"
	CodeStructural     Code = "structural"
	CodeType           Code = "type"
	CodeGrammar        Code = "grammar"
	CodeOrphan         Code = "orphan"
	CodeImport         Code = "import"
)

// Diagnostic is the structured failure record exchanged with editor and CLI collaborators
type Diagnostic struct {
	Position   graph.Position `yaml:"position" json:"position"`
	Message    string         `yaml:"message" json:"message"`
	Severity   Severity       `yaml:"severity" json:"severity"`
	Suggestion string         `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
	Code       Code           `yaml:"code,omitempty" json:"code,omitempty"`
	File       string         `yaml:"file,omitempty" json:"file,omitempty"`
}

// String returns diagnostic in file:line:column form
func (d *Diagnostic) String() string {
	builder := strings.Builder{}
	if d.File != "" {
		builder.WriteString(d.File)
		builder.WriteString(":")
	}
	builder.WriteString(fmt.Sprintf("%d:%d: %s: %s", d.Position.Line, d.Position.Column, d.Severity, d.Message))
	if d.Suggestion != "" {
		builder.WriteString(" (")
		builder.WriteString(d.Suggestion)
		builder.WriteString(")")
	}
	return builder.String()
}

// Errorf creates an error diagnostic
func Errorf(code Code, position graph.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Position: position, Severity: Error, Message: fmt.Sprintf(format, args...)}
}

// Warnf creates a warning diagnostic
func Warnf(code Code, position graph.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Position: position, Severity: Warning, Message: fmt.Sprintf(format, args...)}
}

// WithSuggestion sets suggestion and returns the diagnostic
func (d *Diagnostic) WithSuggestion(suggestion string) *Diagnostic {
	d.Suggestion = suggestion
	return d
}

// HasErrors reports whether any diagnostic has error severity
func HasErrors(diagnostics []*Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Filter returns diagnostics with the given severity
func Filter(diagnostics []*Diagnostic, severity Severity) []*Diagnostic {
	var result []*Diagnostic
	for _, d := range diagnostics {
		if d.Severity == severity {
			result = append(result, d)
		}
	}
	return result
}
