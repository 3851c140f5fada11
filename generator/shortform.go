package generator

import (
	"strings"

	"github.com/viant/typedmind/graph"
)

// ToShortform serializes g in shortform, entities ordered by kind priority then name
func (s *Generator) ToShortform(g *graph.Graph, imports []*graph.Import) string {
	w := &writer{indent: s.indent}
	w.imports(imports)
	for _, entity := range g.Sorted() {
		writeShortform(w, g, entity)
	}
	return w.String()
}

func writeShortform(w *writer, g *graph.Graph, entity graph.Entity) {
	meta := entity.Meta()
	header := shortformHeader(entity)
	if meta.Comment != "" {
		header += " # " + meta.Comment
	}
	w.line(0, header)

	list := func(op string, names []string) {
		if len(names) > 0 {
			w.line(1, op, " ", formatList(names))
		}
	}
	single := func(op string, name string) {
		if name != "" {
			w.line(1, op, " ", name)
		}
	}
	text := func(value string) {
		if value != "" {
			w.line(1, quote(value))
		}
	}

	switch actual := entity.(type) {
	case *graph.Program:
		text(actual.Purpose)
		list("->", actual.Exports)
	case *graph.File:
		text(actual.Purpose)
		list("<-", actual.Imports)
		list("->", actual.Exports)
	case *graph.Function:
		text(actual.Description)
		single("<-", actual.Input)
		single("->", actual.Output)
		list("~>", actual.Calls)
		list("~", actual.Affects)
		list("$<", actual.Consumes)
		list("<-", actual.Dependencies)
	case *graph.Class:
		text(actual.Purpose)
		list("<-", actual.Imports)
		list("=>", actual.Methods)
	case *graph.ClassFile:
		text(actual.Purpose)
		list("<-", actual.Imports)
		list("->", ownExports(actual))
		list("=>", actual.Methods)
	case *graph.Constants:
		text(actual.Purpose)
	case *graph.DTO:
		for _, field := range actual.Fields {
			fieldLine := "- " + field.Name
			if field.Optional {
				fieldLine += "?"
			}
			fieldLine += ": " + field.Type
			if field.Description != "" {
				fieldLine += " " + quote(field.Description)
			}
			w.line(1, fieldLine)
		}
	case *graph.Asset:
		single(">>", actual.ContainsProgram)
	case *graph.UIComponent:
		list(">", actual.Contains)
		list("<", declaredContainedBy(g, actual))
		list("<~", declaredAffectedBy(g, actual))
	case *graph.Dependency:
		list("->", actual.Exports)
	}
}

func shortformHeader(entity graph.Entity) string {
	name := entity.Meta().Name
	switch actual := entity.(type) {
	case *graph.Program:
		return name + " -> " + actual.Entry + version(actual.Version)
	case *graph.File:
		return name + " @ " + actual.Path + ":"
	case *graph.Function:
		return name + " :: " + actual.Signature
	case *graph.Class:
		return strings.TrimRight(name+" <: "+inheritance(actual.Extends, actual.Implements), " ")
	case *graph.ClassFile:
		header := name + " #: " + actual.Path
		if parents := inheritance(actual.Extends, actual.Implements); parents != "" {
			header += " <: " + parents
		}
		return header
	case *graph.Constants:
		header := name + " ! " + actual.Path
		if actual.Schema != "" {
			header += " : " + actual.Schema
		}
		return header
	case *graph.DTO:
		header := name + " %"
		if actual.Purpose != "" {
			header += " " + quote(actual.Purpose)
		}
		return header
	case *graph.Asset:
		return name + " ~ " + quote(actual.Description)
	case *graph.UIComponent:
		op := " & "
		if actual.Root {
			op = " &! "
		}
		return name + op + quote(actual.Purpose)
	case *graph.RunParameter:
		header := name + " $" + actual.ParamType + " " + quote(actual.Description)
		if actual.DefaultValue != "" {
			header += " = " + quote(actual.DefaultValue)
		}
		if actual.Required {
			header += " (required)"
		}
		return header
	case *graph.Dependency:
		return name + " ^ " + quote(actual.Purpose) + version(actual.Version)
	}
	return name
}

func version(value string) string {
	if value == "" {
		return ""
	}
	return " v" + strings.TrimPrefix(value, "v")
}

// inheritance formats `Base, [I1, I2]`; implements alone is written as `[I1, I2]`
func inheritance(extends string, implements []string) string {
	switch {
	case extends == "" && len(implements) == 0:
		return ""
	case len(implements) == 0:
		return extends
	case extends == "":
		return formatList(implements)
	}
	return extends + ", " + formatList(implements)
}
