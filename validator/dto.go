package validator

import (
	"regexp"
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

var identifierExpr = regexp.MustCompile(`^[A-Za-z_][\w.]*$`)

// builtinTypes are field type names that never resolve to entities
var builtinTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "bool": true, "any": true, "unknown": true,
	"void": true, "null": true, "undefined": true, "never": true, "object": true, "bigint": true,
	"symbol": true, "true": true, "false": true, "int": true, "integer": true, "float": true,
	"double": true, "date": true, "Date": true, "Buffer": true, "Uint8Array": true, "JSON": true,
	"Array": true, "ReadonlyArray": true, "Record": true, "Map": true, "Set": true, "Promise": true,
	"Partial": true, "Required": true, "Readonly": true, "Pick": true, "Omit": true, "Optional": true,
	"Exclude": true, "Extract": true, "NonNullable": true,
}

// checkDTOFields rejects function typed fields and requires referenced types to be DTOs or classes
func (v *Validator) checkDTOFields() {
	for _, entity := range v.graph.ByKind(graph.KindDTO) {
		dto := entity.(*graph.DTO)
		for _, field := range dto.Fields {
			refs := TypeNames(field.Type)
			if IsFunctionType(field.Type) || graph.Contains(refs, "Function") {
				v.errorf(dto, diagnostic.CodeType, "DTO '%s' field '%s' cannot have a function type '%s'", dto.Name, field.Name, field.Type).
					WithSuggestion("DTOs describe data; move behaviour to a Function")
				continue
			}
			for _, name := range refs {
				if builtinTypes[name] {
					continue
				}
				target := v.graph.Lookup(name)
				switch {
				case target == nil:
					v.errorf(dto, diagnostic.CodeType, "DTO '%s' field '%s' references undefined type '%s'", dto.Name, field.Name, name).
						WithSuggestion(suggest(v.graph, name, []graph.Kind{graph.KindDTO, graph.KindClass, graph.KindClassFile}))
				case target.Kind() != graph.KindDTO && !graph.IsClassLike(target):
					v.errorf(dto, diagnostic.CodeType, "DTO '%s' field '%s' type '%s' must be a DTO or Class, found %s", dto.Name, field.Name, name, target.Kind())
				}
			}
		}
	}
}

// IsFunctionType reports arrow function type expressions
func IsFunctionType(expr string) bool {
	return strings.Contains(expr, "=>")
}

// TypeNames extracts the identifiers referenced by a field type expression, descending into
// arrays, unions, intersections, tuples, parentheses and generic arguments. Literals are skipped.
func TypeNames(expr string) []string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	for _, separator := range []byte{'|', '&'} {
		if parts := splitTopLevel(expr, separator); len(parts) > 1 {
			var result []string
			for _, part := range parts {
				result = graph.AppendUnique(result, TypeNames(part)...)
			}
			return result
		}
	}
	switch {
	case strings.HasSuffix(expr, "[]"):
		return TypeNames(strings.TrimSuffix(expr, "[]"))
	case strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")"):
		return TypeNames(expr[1 : len(expr)-1])
	case strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]"):
		var result []string
		for _, part := range splitTopLevel(expr[1:len(expr)-1], ',') {
			result = graph.AppendUnique(result, TypeNames(part)...)
		}
		return result
	case strings.HasSuffix(expr, ">"):
		open := strings.Index(expr, "<")
		if open <= 0 {
			return nil
		}
		result := TypeNames(expr[:open])
		for _, part := range splitTopLevel(expr[open+1:len(expr)-1], ',') {
			result = graph.AppendUnique(result, TypeNames(part)...)
		}
		return result
	case identifierExpr.MatchString(expr):
		return []string{expr}
	}
	return nil
}

// splitTopLevel splits expr on separator outside brackets and quotes
func splitTopLevel(expr string, separator byte) []string {
	var result []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '<' || c == '[' || c == '(' || c == '{':
			depth++
		case c == '>' || c == ']' || c == ')' || c == '}':
			if depth > 0 {
				depth--
			}
		case c == separator && depth == 0:
			result = append(result, expr[start:i])
			start = i + 1
		}
	}
	return append(result, expr[start:])
}
