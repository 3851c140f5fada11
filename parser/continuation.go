package parser

import (
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// applyContinuation extends the current entity with an indented relation line
func applyContinuation(entity graph.Entity, line *Line) *diagnostic.Diagnostic {
	values := continuationValues(line)
	applied := false
	switch line.Operator {
	case OpDepends, OpInput:
		applied = applyDepends(entity, line.Operator, values)
	case OpExports, OpOutput:
		applied = applyExports(entity, line.Operator, values)
	case OpCalls:
		if fn, ok := entity.(*graph.Function); ok {
			fn.Calls = graph.AppendUnique(fn.Calls, values...)
			applied = true
		}
	case OpAffects:
		if fn, ok := entity.(*graph.Function); ok {
			fn.Affects = graph.AppendUnique(fn.Affects, values...)
			applied = true
		}
	case OpConsumes:
		if fn, ok := entity.(*graph.Function); ok {
			fn.Consumes = graph.AppendUnique(fn.Consumes, values...)
			applied = true
		}
	case OpMethods:
		switch actual := entity.(type) {
		case *graph.Class:
			actual.Methods = graph.AppendUnique(actual.Methods, values...)
			applied = true
		case *graph.ClassFile:
			actual.Methods = graph.AppendUnique(actual.Methods, values...)
			applied = true
		}
	case OpContains, OpContainedBy, OpAffectedBy:
		if component, ok := entity.(*graph.UIComponent); ok {
			switch line.Operator {
			case OpContains:
				component.Contains = graph.AppendUnique(component.Contains, values...)
			case OpContainedBy:
				component.ContainedBy = graph.AppendUnique(component.ContainedBy, values...)
			default:
				component.AffectedBy = graph.AppendUnique(component.AffectedBy, values...)
			}
			applied = true
		}
	case OpContainsProgram:
		if asset, ok := entity.(*graph.Asset); ok {
			asset.ContainsProgram = values[0]
			applied = true
		}
	case OpDescription:
		applied = applyDescription(entity, line.Groups[1])
	case OpField:
		if dto, ok := entity.(*graph.DTO); ok {
			fieldType, description := fieldTypeAndDescription(line.Groups[3], line.Groups[4])
			dto.Fields = append(dto.Fields, &graph.DTOField{
				Name:        line.Groups[1],
				Type:        fieldType,
				Description: description,
				Optional:    line.Groups[2] == "?" || strings.TrimSpace(line.Groups[5]) != "",
			})
			applied = true
		}
	}
	if !applied {
		return diagnostic.Errorf(diagnostic.CodeParse, position(line),
			"operator '%s' is not valid for %s '%s'", operatorSymbol(line.Operator), entity.Kind(), entity.Meta().Name)
	}
	meta := entity.Meta()
	meta.Raw += "\n" + strings.TrimRight(line.Text, " ")
	return nil
}

// fieldTypeAndDescription keeps a trailing quoted string as the field description only when the type
// before it is complete; otherwise the string literal belongs to the type, as in `"a" | "b"`.
func fieldTypeAndDescription(fieldType, quoted string) (string, string) {
	fieldType = strings.TrimSpace(fieldType)
	if quoted == "" {
		return fieldType, ""
	}
	if isCompleteType(fieldType) {
		return fieldType, strings.Trim(quoted, `"`)
	}
	return fieldType + " " + quoted, ""
}

// isCompleteType reports a type expression with no dangling operator and balanced brackets and quotes
func isCompleteType(expr string) bool {
	if expr == "" || strings.HasSuffix(expr, "|") || strings.HasSuffix(expr, "&") || strings.HasSuffix(expr, ",") {
		return false
	}
	depth := 0
	var quote byte
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(', '[', '{', '<':
			depth++
		case '>':
			if i > 0 && expr[i-1] == '=' {
				continue
			}
			depth--
		case ')', ']', '}':
			depth--
		}
	}
	return depth == 0 && quote == 0
}

func continuationValues(line *Line) []string {
	switch line.Operator {
	case OpDepends, OpExports, OpCalls, OpAffects, OpConsumes, OpMethods, OpContains, OpContainedBy, OpAffectedBy:
		return splitList(line.Groups[1])
	case OpInput, OpOutput, OpContainsProgram:
		return []string{line.Groups[1]}
	}
	return nil
}

func applyDepends(entity graph.Entity, op Operator, values []string) bool {
	switch actual := entity.(type) {
	case *graph.Function:
		if op == OpInput {
			actual.Input = values[0]
			return true
		}
		actual.Dependencies = graph.AppendUnique(actual.Dependencies, values...)
	case *graph.File:
		actual.Imports = graph.AppendUnique(actual.Imports, values...)
	case *graph.Class:
		actual.Imports = graph.AppendUnique(actual.Imports, values...)
	case *graph.ClassFile:
		actual.Imports = graph.AppendUnique(actual.Imports, values...)
	default:
		return false
	}
	return true
}

func applyExports(entity graph.Entity, op Operator, values []string) bool {
	switch actual := entity.(type) {
	case *graph.Function:
		if op == OpOutput {
			actual.Output = values[0]
			return true
		}
		return false
	case *graph.Program:
		actual.Exports = graph.AppendUnique(actual.Exports, values...)
	case *graph.File:
		actual.Exports = graph.AppendUnique(actual.Exports, values...)
	case *graph.ClassFile:
		actual.Exports = graph.AppendUnique(actual.Exports, values...)
	case *graph.Dependency:
		actual.Exports = graph.AppendUnique(actual.Exports, values...)
	default:
		return false
	}
	return true
}

func applyDescription(entity graph.Entity, text string) bool {
	switch actual := entity.(type) {
	case *graph.Program:
		actual.Purpose = text
	case *graph.File:
		actual.Purpose = text
	case *graph.Function:
		actual.Description = text
	case *graph.Class:
		actual.Purpose = text
	case *graph.ClassFile:
		actual.Purpose = text
	case *graph.Constants:
		actual.Purpose = text
	case *graph.DTO:
		actual.Purpose = text
	case *graph.Asset:
		actual.Description = text
	case *graph.UIComponent:
		actual.Purpose = text
	case *graph.RunParameter:
		actual.Description = text
	case *graph.Dependency:
		actual.Purpose = text
	default:
		return false
	}
	return true
}

func operatorSymbol(op Operator) string {
	switch op {
	case OpDepends:
		return "<-"
	case OpExports:
		return "->"
	case OpDescription:
		return `"..."`
	}
	return string(op)
}
