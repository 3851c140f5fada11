// Package generator serializes an entity graph to shortform or longform TypedMind text and
// converts documents between the two syntaxes.
package generator

import (
	"strings"

	"github.com/viant/typedmind/graph"
)

// DefaultIndent is the continuation and block body indentation width
const DefaultIndent = 2

// Generator writes entity graphs as DSL text; output is deterministic for a given graph
type Generator struct {
	indent string
}

// Option mutates a Generator
type Option func(*Generator)

// WithIndent sets the indentation width; values below one are ignored
func WithIndent(width int) Option {
	return func(g *Generator) {
		if width > 0 {
			g.indent = strings.Repeat(" ", width)
		}
	}
}

// New creates a generator
func New(options ...Option) *Generator {
	result := &Generator{indent: strings.Repeat(" ", DefaultIndent)}
	for _, option := range options {
		option(result)
	}
	return result
}

// ToShortform serializes g in shortform
func ToShortform(g *graph.Graph, imports []*graph.Import) string {
	return New().ToShortform(g, imports)
}

// ToLongform serializes g in longform
func ToLongform(g *graph.Graph, imports []*graph.Import) string {
	return New().ToLongform(g, imports)
}

type writer struct {
	builder strings.Builder
	indent  string
}

func (w *writer) line(depth int, parts ...string) {
	w.builder.WriteString(strings.Repeat(w.indent, depth))
	for _, part := range parts {
		w.builder.WriteString(part)
	}
	w.builder.WriteString("\n")
}

func (w *writer) imports(imports []*graph.Import) {
	for _, imp := range imports {
		text := "@import " + quote(imp.Path)
		if imp.Alias != "" {
			text += " as " + imp.Alias
		}
		w.line(0, text)
	}
	if len(imports) > 0 {
		w.line(0)
	}
}

func (w *writer) String() string {
	return w.builder.String()
}

func quote(text string) string {
	return `"` + text + `"`
}

func formatList(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}

// ownExports drops the self export every ClassFile carries implicitly
func ownExports(entity graph.Entity) []string {
	var result []string
	name := entity.Meta().Name
	for _, export := range graph.Exports(entity) {
		if entity.Kind() == graph.KindClassFile && export == name {
			continue
		}
		result = append(result, export)
	}
	return result
}

// declaredContainedBy returns parents the parent side does not already list
func declaredContainedBy(g *graph.Graph, component *graph.UIComponent) []string {
	var result []string
	for _, name := range component.ContainedBy {
		if parent, ok := g.Lookup(name).(*graph.UIComponent); ok && graph.Contains(parent.Contains, component.Name) {
			continue
		}
		result = append(result, name)
	}
	return result
}

// declaredAffectedBy returns affecting functions the function side does not already list
func declaredAffectedBy(g *graph.Graph, component *graph.UIComponent) []string {
	var result []string
	for _, name := range component.AffectedBy {
		if fn, ok := g.Lookup(name).(*graph.Function); ok && graph.Contains(fn.Affects, component.Name) {
			continue
		}
		result = append(result, name)
	}
	return result
}
