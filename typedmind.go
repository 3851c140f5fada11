// Package typedmind parses, validates and converts TypedMind architecture documents.
//
// A document describes a program's architecture as a graph of typed entities (programs, files,
// functions, classes, DTOs, UI components, run parameters, dependencies...) in either the compact
// shortform syntax or the keyword block longform syntax. Both compile to the same graph.
package typedmind

import (
	"context"
	"fmt"

	"github.com/viant/typedmind/config"
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/generator"
	"github.com/viant/typedmind/graph"
	"github.com/viant/typedmind/internal/logger"
	"github.com/viant/typedmind/parser"
	"github.com/viant/typedmind/resolver"
	"github.com/viant/typedmind/validator"
)

// Parse parses a document
func Parse(text string, options ...parser.Option) (*parser.Result, error) {
	return parser.Parse(text, options...)
}

// Validate runs semantic validation over a parsed graph
func Validate(g *graph.Graph, options ...validator.Option) *validator.Result {
	return validator.Validate(g, options...)
}

// DetectFormat reports the dominant syntax of text
func DetectFormat(text string) *generator.Detection {
	return generator.DetectFormat(text)
}

// ToggleFormat converts shortform text to longform and vice versa; failures are *generator.ConversionError
func ToggleFormat(text string) (string, error) {
	return generator.Toggle(text)
}

// ResolveImports resolves imports relative to basePath
func ResolveImports(ctx context.Context, imports []*graph.Import, basePath string) *resolver.Result {
	return resolver.New().Resolve(ctx, imports, basePath)
}

// Report is the outcome of checking a document together with its imports
type Report struct {
	URL         string
	Document    *parser.Result
	Graph       *graph.Graph // document entities merged with imported ones
	Diagnostics []*diagnostic.Diagnostic
	Valid       bool
	Fingerprint uint64
}

// CheckFile parses the document at URL, resolves its imports, and validates the merged graph.
// Only I/O failures on the document itself are returned as error.
func CheckFile(ctx context.Context, URL string, cfg *config.Config) (*Report, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	service := resolver.New(resolver.WithParserOptions(cfg.ParserOptions()...))
	document, imported, err := service.ResolveDocument(ctx, URL)
	if err != nil {
		return nil, err
	}
	report := &Report{URL: URL, Document: document, Graph: graph.NewGraph()}
	report.Diagnostics = append(report.Diagnostics, document.Diagnostics()...)
	report.Diagnostics = append(report.Diagnostics, imported.Errors...)

	for _, entity := range document.Graph.Entities() {
		report.Graph.Add(graph.Clone(entity))
	}
	for _, name := range graph.Merge(report.Graph, imported.Graph) {
		local := report.Graph.Lookup(name)
		report.Diagnostics = append(report.Diagnostics, diagnostic.Errorf(diagnostic.CodeNamingConflict, local.Meta().Position,
			"'%s' is declared locally and imported from '%s'", name, imported.Graph.Lookup(name).Meta().Source))
	}
	parser.Distribute(report.Graph)

	options := append(cfg.ValidatorOptions(), validator.WithParseResult(document))
	validation := validator.Validate(report.Graph, options...)
	report.Diagnostics = append(report.Diagnostics, validation.Errors...)
	report.Valid = !diagnostic.HasErrors(report.Diagnostics)
	if report.Fingerprint, err = graph.Fingerprint(report.Graph); err != nil {
		return nil, fmt.Errorf("failed to fingerprint %v: %w", URL, err)
	}
	logger.Debug("checked document", logger.Fields{
		"url":         URL,
		"entities":    report.Graph.Len(),
		"diagnostics": len(report.Diagnostics),
		"cached":      service.Cached(),
	})
	return report, nil
}
