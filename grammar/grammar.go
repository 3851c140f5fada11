// Package grammar checks per-entity shape rules that hold regardless of the rest of the graph:
// required fields, valid names and run parameter kinds, and unique DTO fields and class methods.
package grammar

import (
	"regexp"
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

var (
	nameExpr           = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)
	dependencyNameExpr = regexp.MustCompile(`^@?[A-Za-z0-9_][\w@./-]*$`)
	methodExpr         = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// Validate checks each entity of g against its kind's grammar
func Validate(g *graph.Graph) []*diagnostic.Diagnostic {
	var result []*diagnostic.Diagnostic
	for _, entity := range g.Entities() {
		result = append(result, validateEntity(entity)...)
	}
	return result
}

func validateEntity(entity graph.Entity) []*diagnostic.Diagnostic {
	meta := entity.Meta()
	checker := &checker{entity: entity}
	if entity.Kind() == graph.KindDependency {
		checker.match(dependencyNameExpr, meta.Name, "name")
	} else {
		checker.match(nameExpr, meta.Name, "name")
	}

	switch actual := entity.(type) {
	case *graph.Program:
		checker.required("entry", actual.Entry)
	case *graph.File:
		checker.required("path", actual.Path)
	case *graph.Function:
		checker.required("signature", actual.Signature)
	case *graph.Class:
		checker.methods(actual.Methods)
	case *graph.ClassFile:
		checker.required("path", actual.Path)
		checker.methods(actual.Methods)
	case *graph.Constants:
		checker.required("path", actual.Path)
	case *graph.DTO:
		checker.fields(actual.Fields)
	case *graph.Asset:
		checker.required("description", actual.Description)
	case *graph.UIComponent:
		checker.required("purpose", actual.Purpose)
	case *graph.RunParameter:
		checker.required("description", actual.Description)
		if checker.required("paramType", actual.ParamType) && !graph.Contains(graph.ParamTypes, actual.ParamType) {
			checker.add(diagnostic.Errorf(diagnostic.CodeGrammar, meta.Position,
				"run parameter '%s' has invalid type '%s'", meta.Name, actual.ParamType).
				WithSuggestion("use one of: " + strings.Join(graph.ParamTypes, ", ")))
		}
	case *graph.Dependency:
		checker.required("purpose", actual.Purpose)
	}
	return checker.diagnostics
}

type checker struct {
	entity      graph.Entity
	diagnostics []*diagnostic.Diagnostic
}

func (c *checker) add(d *diagnostic.Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

func (c *checker) required(field, value string) bool {
	if strings.TrimSpace(value) != "" {
		return true
	}
	meta := c.entity.Meta()
	c.add(diagnostic.Errorf(diagnostic.CodeGrammar, meta.Position,
		"%s '%s' is missing required field '%s'", c.entity.Kind(), meta.Name, field))
	return false
}

func (c *checker) match(expr *regexp.Regexp, value, field string) {
	if expr.MatchString(value) {
		return
	}
	meta := c.entity.Meta()
	c.add(diagnostic.Errorf(diagnostic.CodeGrammar, meta.Position,
		"%s has invalid %s '%s'", c.entity.Kind(), field, value))
}

func (c *checker) methods(methods []string) {
	meta := c.entity.Meta()
	seen := map[string]bool{}
	for _, method := range methods {
		if seen[method] {
			c.add(diagnostic.Errorf(diagnostic.CodeGrammar, meta.Position,
				"%s '%s' declares method '%s' more than once", c.entity.Kind(), meta.Name, method))
			continue
		}
		seen[method] = true
		if !methodExpr.MatchString(method) {
			c.add(diagnostic.Errorf(diagnostic.CodeGrammar, meta.Position,
				"%s '%s' has invalid method name '%s'", c.entity.Kind(), meta.Name, method))
		}
	}
}

func (c *checker) fields(fields []*graph.DTOField) {
	meta := c.entity.Meta()
	seen := map[string]bool{}
	for _, field := range fields {
		if seen[field.Name] {
			c.add(diagnostic.Errorf(diagnostic.CodeGrammar, meta.Position,
				"DTO '%s' declares field '%s' more than once", meta.Name, field.Name))
			continue
		}
		seen[field.Name] = true
		if strings.TrimSpace(field.Type) == "" {
			c.add(diagnostic.Errorf(diagnostic.CodeGrammar, meta.Position,
				"DTO '%s' field '%s' has no type", meta.Name, field.Name))
		}
	}
}
