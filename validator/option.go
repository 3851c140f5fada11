package validator

import (
	"github.com/viant/typedmind/graph"
	"github.com/viant/typedmind/parser"
)

// Options controls which validation passes run
type Options struct {
	SkipOrphans     bool
	SkipExportCheck bool
	NamingConflicts []*graph.NamingConflict
}

// Option mutates Options
type Option func(*Options)

// WithSkipOrphans disables orphan detection
func WithSkipOrphans(skip bool) Option {
	return func(o *Options) {
		o.SkipOrphans = skip
	}
}

// WithSkipExportCheck disables the export completeness pass
func WithSkipExportCheck(skip bool) Option {
	return func(o *Options) {
		o.SkipExportCheck = skip
	}
}

// WithNamingConflicts supplies redeclarations recorded while parsing
func WithNamingConflicts(conflicts []*graph.NamingConflict) Option {
	return func(o *Options) {
		o.NamingConflicts = append(o.NamingConflicts, conflicts...)
	}
}

// WithParseResult supplies the parse outcome the graph was built from
func WithParseResult(result *parser.Result) Option {
	return func(o *Options) {
		if result != nil {
			o.NamingConflicts = append(o.NamingConflicts, result.NamingConflicts...)
		}
	}
}
