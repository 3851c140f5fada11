package parser

import (
	"fmt"

	"github.com/viant/typedmind/diagnostic"
)

// SyntaxError is returned by strict parsing for the first malformed line
type SyntaxError struct {
	Line    int
	Column  int
	Message string
	Text    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
}

func newSyntaxError(d *diagnostic.Diagnostic, text string) *SyntaxError {
	return &SyntaxError{Line: d.Position.Line, Column: d.Position.Column, Message: d.Message, Text: text}
}
