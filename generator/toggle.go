package generator

import (
	"fmt"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/parser"
)

// ConversionError is the failure value of a syntax conversion
type ConversionError struct {
	Message     string
	Diagnostics []*diagnostic.Diagnostic
}

func (e *ConversionError) Error() string {
	if len(e.Diagnostics) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Diagnostics[0])
}

// Toggle converts text to the other syntax with default settings
func Toggle(text string) (string, error) {
	return New().Toggle(text)
}

// Toggle converts a shortform document to longform and vice versa; a mixed document is converted
// away from the syntax holding the most lines. Documents with parse errors are not converted.
func (s *Generator) Toggle(text string) (string, error) {
	result, err := parser.Parse(text)
	if err != nil {
		return "", &ConversionError{Message: err.Error()}
	}
	if errs := diagnostic.Filter(result.ParseErrors, diagnostic.Error); len(errs) > 0 {
		return "", &ConversionError{Message: fmt.Sprintf("cannot convert document with %d parse error(s)", len(errs)), Diagnostics: errs}
	}
	detection := DetectFormat(text)
	target := Longform
	switch detection.Format {
	case Longform:
		target = Shortform
	case Mixed:
		if detection.Longform > detection.Shortform {
			target = Shortform
		}
	}
	if target == Longform {
		return s.ToLongform(result.Graph, result.Imports), nil
	}
	return s.ToShortform(result.Graph, result.Imports), nil
}
