package generator

import (
	"strings"

	"github.com/viant/typedmind/graph"
)

// ToLongform serializes g as keyword blocks, entities ordered by kind priority then name
func (s *Generator) ToLongform(g *graph.Graph, imports []*graph.Import) string {
	w := &writer{indent: s.indent}
	w.imports(imports)
	for i, entity := range g.Sorted() {
		if i > 0 {
			w.line(0)
		}
		writeLongform(w, g, entity)
	}
	return w.String()
}

type block struct {
	w     *writer
	depth int
}

func (b *block) text(key, value string) {
	if value != "" {
		b.w.line(b.depth, key, ": ", quote(value))
	}
}

func (b *block) name(key, value string) {
	if value != "" {
		b.w.line(b.depth, key, ": ", value)
	}
}

func (b *block) list(key string, values []string) {
	if len(values) > 0 {
		b.w.line(b.depth, key, ": ", formatList(values))
	}
}

func (b *block) flag(key string, value bool) {
	if value {
		b.w.line(b.depth, key, ": true")
	}
}

func writeLongform(w *writer, g *graph.Graph, entity graph.Entity) {
	meta := entity.Meta()
	w.line(0, entity.Kind().Keyword(), " ", meta.Name, " {")
	b := &block{w: w, depth: 1}
	switch actual := entity.(type) {
	case *graph.Program:
		b.name("entry", actual.Entry)
		b.text("version", strings.TrimPrefix(actual.Version, "v"))
		b.text("purpose", actual.Purpose)
		b.list("exports", actual.Exports)
	case *graph.File:
		b.text("path", actual.Path)
		b.text("purpose", actual.Purpose)
		b.list("imports", actual.Imports)
		b.list("exports", actual.Exports)
	case *graph.Function:
		b.text("signature", actual.Signature)
		b.text("description", actual.Description)
		b.name("input", actual.Input)
		b.name("output", actual.Output)
		b.list("calls", actual.Calls)
		b.list("affects", actual.Affects)
		b.list("consumes", actual.Consumes)
		b.list("dependencies", actual.Dependencies)
	case *graph.Class:
		b.name("extends", actual.Extends)
		b.list("implements", actual.Implements)
		b.text("purpose", actual.Purpose)
		b.list("imports", actual.Imports)
		b.list("methods", actual.Methods)
	case *graph.ClassFile:
		b.text("path", actual.Path)
		b.name("extends", actual.Extends)
		b.list("implements", actual.Implements)
		b.text("purpose", actual.Purpose)
		b.list("imports", actual.Imports)
		b.list("exports", ownExports(actual))
		b.list("methods", actual.Methods)
	case *graph.Constants:
		b.text("path", actual.Path)
		b.name("schema", actual.Schema)
		b.text("purpose", actual.Purpose)
	case *graph.DTO:
		b.text("purpose", actual.Purpose)
		if len(actual.Fields) > 0 {
			w.line(1, "fields: {")
			field := &block{w: w, depth: 3}
			for _, f := range actual.Fields {
				w.line(2, f.Name, ": {")
				field.text("type", f.Type)
				field.text("description", f.Description)
				field.flag("optional", f.Optional)
				w.line(2, "}")
			}
			w.line(1, "}")
		}
	case *graph.Asset:
		b.text("description", actual.Description)
		b.name("containsProgram", actual.ContainsProgram)
	case *graph.UIComponent:
		b.text("purpose", actual.Purpose)
		b.flag("root", actual.Root)
		b.list("contains", actual.Contains)
		b.list("containedBy", declaredContainedBy(g, actual))
		b.list("affectedBy", declaredAffectedBy(g, actual))
	case *graph.RunParameter:
		b.name("paramType", actual.ParamType)
		b.text("description", actual.Description)
		b.flag("required", actual.Required)
		b.text("default", actual.DefaultValue)
	case *graph.Dependency:
		b.text("purpose", actual.Purpose)
		b.text("version", strings.TrimPrefix(actual.Version, "v"))
		b.list("exports", actual.Exports)
	}
	b.text("comment", meta.Comment)
	w.line(0, "}")
}
