package parser

import (
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// Properties is an ordered key/value map parsed from a longform block.
// Values are string, bool, []string or *Properties.
type Properties struct {
	Keys   []string
	values map[string]interface{}
}

// NewProperties creates an empty property map
func NewProperties() *Properties {
	return &Properties{values: map[string]interface{}{}}
}

// Set stores a value, keeping the first key position
func (p *Properties) Set(key string, value interface{}) {
	if _, ok := p.values[key]; !ok {
		p.Keys = append(p.Keys, key)
	}
	p.values[key] = value
}

// Get returns a raw value
func (p *Properties) Get(key string) (interface{}, bool) {
	value, ok := p.values[key]
	return value, ok
}

// String returns a string value; lists are joined with ", "
func (p *Properties) String(key string) string {
	switch actual := p.values[key].(type) {
	case string:
		return actual
	case bool:
		if actual {
			return "true"
		}
		return "false"
	case []string:
		return strings.Join(actual, ", ")
	}
	return ""
}

// Strings returns a list value; a scalar is returned as a single element list
func (p *Properties) Strings(key string) []string {
	switch actual := p.values[key].(type) {
	case []string:
		return actual
	case string:
		if actual == "" {
			return nil
		}
		return []string{actual}
	}
	return nil
}

// Bool returns a boolean value
func (p *Properties) Bool(key string) bool {
	switch actual := p.values[key].(type) {
	case bool:
		return actual
	case string:
		return actual == "true"
	}
	return false
}

// Object returns a nested object value
func (p *Properties) Object(key string) *Properties {
	if actual, ok := p.values[key].(*Properties); ok {
		return actual
	}
	return nil
}

// LongformParser parses one `keyword Name { ... }` block
type LongformParser struct {
	consumed    int
	diagnostics []*diagnostic.Diagnostic
	lines       []string
}

// NewLongformParser creates a block parser
func NewLongformParser() *LongformParser {
	return &LongformParser{}
}

// ConsumedLines returns the number of lines taken by the last parsed block, header and closing brace included
func (l *LongformParser) ConsumedLines() int {
	return l.consumed
}

// Diagnostics returns problems found in the last parsed block
func (l *LongformParser) Diagnostics() []*diagnostic.Diagnostic {
	return l.diagnostics
}

// Parse parses the block whose header is lines[start]; it returns nil when no entity can be built
func (l *LongformParser) Parse(lines []string, start int) graph.Entity {
	l.consumed = 0
	l.diagnostics = nil
	l.lines = lines
	if start < 0 || start >= len(lines) {
		return nil
	}
	header := Classify(lines[start], start+1)
	if header.Kind != LineLongformHeader {
		return nil
	}
	props, next, closed := l.parseObject(start + 1)
	l.consumed = next - start
	if !closed {
		l.diagnostics = append(l.diagnostics, diagnostic.Errorf(diagnostic.CodeParse, position(header),
			"unterminated block for '%s': missing closing brace", header.Groups[2]))
	}

	kind := header.Entity
	if header.Keyword == "" {
		var ok bool
		if kind, ok = graph.KindForKeyword(props.String("type")); !ok {
			l.diagnostics = append(l.diagnostics, diagnostic.Errorf(diagnostic.CodeParse, position(header),
				"block '%s' has no valid type: field", header.Groups[2]).
				WithSuggestion("add type: File (or Program, Function, Class, ClassFile, Constants, DTO, Asset, UIComponent, RunParameter, Dependency)"))
			return nil
		}
	}
	entity := buildEntity(kind, header.Groups[2], props, header.Keyword == "")
	meta := entity.Meta()
	meta.Position = position(header)
	meta.Raw = strings.Join(lines[start:start+l.consumed], "\n")
	meta.Comment = props.String("comment")
	if meta.Comment == "" {
		meta.Comment = header.Comment
	}
	return entity
}

// parseObject reads key: value lines until the matching closing brace; it returns the index after it.
// An unclosed object ends before the next top-level statement, which is left for the caller.
func (l *LongformParser) parseObject(index int) (*Properties, int, bool) {
	props := NewProperties()
	for index < len(l.lines) {
		raw := l.lines[index]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || isCommentLine(trimmed) {
			index++
			continue
		}
		if startsStatement(raw, index) {
			return props, index, false
		}
		text, _ := splitComment(trimmed)
		if text == "}" || text == "}," {
			return props, index + 1, true
		}
		colon := keySeparator(text)
		if colon == -1 {
			l.diagnostics = append(l.diagnostics, diagnostic.Errorf(diagnostic.CodeParse,
				graph.Position{Line: index + 1, Column: len(raw) - len(strings.TrimLeft(raw, " \t")) + 1},
				"expected 'key: value' in block, found %q", text))
			index++
			continue
		}
		key := strings.TrimSpace(text[:colon])
		value := strings.TrimSpace(text[colon+1:])
		switch {
		case value == "{":
			nested, next, closed := l.parseObject(index + 1)
			props.Set(key, nested)
			if !closed {
				return props, next, false
			}
			index = next
		case strings.HasPrefix(value, "[") && !strings.HasSuffix(value, "]"):
			body, next := l.collectArray(value, index+1)
			props.Set(key, splitList(body))
			index = next
		default:
			props.Set(key, parseValue(value))
			index++
		}
	}
	return props, index, false
}

// collectArray joins a multi-line array literal until its closing bracket
func (l *LongformParser) collectArray(first string, index int) (string, int) {
	builder := strings.Builder{}
	builder.WriteString(strings.TrimPrefix(first, "["))
	for index < len(l.lines) {
		if startsStatement(l.lines[index], index) {
			break
		}
		text, _ := splitComment(strings.TrimSpace(l.lines[index]))
		index++
		if strings.HasSuffix(text, "]") {
			builder.WriteString(" ")
			builder.WriteString(strings.TrimSuffix(text, "]"))
			return builder.String(), index
		}
		builder.WriteString(" ")
		builder.WriteString(text)
		if !strings.HasSuffix(text, ",") {
			builder.WriteString(",")
		}
	}
	return builder.String(), index
}

// startsStatement reports an unindented declaration, block header or import
func startsStatement(raw string, index int) bool {
	if raw == "" || raw[0] == ' ' || raw[0] == '\t' {
		return false
	}
	switch Classify(raw, index+1).Kind {
	case LineDeclaration, LineLongformHeader, LineImport:
		return true
	}
	return false
}

// keySeparator returns the colon index separating key from value, ignoring colons in quotes
func keySeparator(text string) int {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"', '[', '{':
			return -1
		case ':':
			if i == 0 {
				return -1
			}
			return i
		}
	}
	return -1
}

func parseValue(value string) interface{} {
	value = strings.TrimSuffix(value, ",")
	switch {
	case value == "true":
		return true
	case value == "false":
		return false
	case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
		return splitList(value[1 : len(value)-1])
	case len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`):
		return value[1 : len(value)-1]
	}
	return value
}

// buildEntity converts block properties to an entity; generic blocks carry the entity kind in type:
func buildEntity(kind graph.Kind, name string, props *Properties, generic bool) graph.Entity {
	entity := graph.New(kind, name, graph.Position{})
	switch actual := entity.(type) {
	case *graph.Program:
		actual.Entry = props.String("entry")
		actual.Version = strings.TrimPrefix(props.String("version"), "v")
		actual.Purpose = props.String("purpose")
		actual.Exports = graph.AppendUnique(actual.Exports, props.Strings("exports")...)
	case *graph.File:
		actual.Path = props.String("path")
		actual.Imports = graph.AppendUnique(nil, props.Strings("imports")...)
		actual.Exports = graph.AppendUnique(nil, props.Strings("exports")...)
		actual.Purpose = props.String("purpose")
	case *graph.Function:
		actual.Signature = props.String("signature")
		actual.Description = props.String("description")
		actual.Calls = graph.AppendUnique(nil, props.Strings("calls")...)
		actual.Input = props.String("input")
		actual.Output = props.String("output")
		actual.Affects = graph.AppendUnique(nil, props.Strings("affects")...)
		actual.Consumes = graph.AppendUnique(nil, props.Strings("consumes")...)
		actual.Dependencies = graph.AppendUnique(nil, props.Strings("dependencies")...)
	case *graph.Class:
		actual.Extends = props.String("extends")
		actual.Implements = graph.AppendUnique(nil, props.Strings("implements")...)
		actual.Methods = graph.AppendUnique(nil, props.Strings("methods")...)
		actual.Imports = graph.AppendUnique(nil, props.Strings("imports")...)
		actual.Purpose = props.String("purpose")
	case *graph.ClassFile:
		actual.Path = props.String("path")
		actual.Extends = props.String("extends")
		actual.Implements = graph.AppendUnique(nil, props.Strings("implements")...)
		actual.Methods = graph.AppendUnique(nil, props.Strings("methods")...)
		actual.Imports = graph.AppendUnique(nil, props.Strings("imports")...)
		actual.Exports = graph.AppendUnique(actual.Exports, props.Strings("exports")...)
		actual.Purpose = props.String("purpose")
	case *graph.Constants:
		actual.Path = props.String("path")
		actual.Schema = props.String("schema")
		actual.Purpose = props.String("purpose")
	case *graph.DTO:
		actual.Purpose = props.String("purpose")
		if fields := props.Object("fields"); fields != nil {
			for _, fieldName := range fields.Keys {
				field := &graph.DTOField{Name: fieldName}
				if spec := fields.Object(fieldName); spec != nil {
					field.Type = spec.String("type")
					field.Description = spec.String("description")
					field.Optional = spec.Bool("optional")
				} else {
					field.Type = fields.String(fieldName)
				}
				actual.Fields = append(actual.Fields, field)
			}
		}
	case *graph.Asset:
		actual.Description = props.String("description")
		actual.ContainsProgram = props.String("containsProgram")
	case *graph.UIComponent:
		actual.Purpose = props.String("purpose")
		actual.Root = props.Bool("root")
		actual.Contains = graph.AppendUnique(nil, props.Strings("contains")...)
		actual.ContainedBy = graph.AppendUnique(nil, props.Strings("containedBy")...)
		actual.AffectedBy = graph.AppendUnique(nil, props.Strings("affectedBy")...)
	case *graph.RunParameter:
		actual.ParamType = props.String("paramType")
		if actual.ParamType == "" && !generic {
			actual.ParamType = props.String("type")
		}
		actual.Description = props.String("description")
		actual.Required = props.Bool("required")
		actual.DefaultValue = props.String("default")
		actual.ConsumedBy = graph.AppendUnique(nil, props.Strings("consumedBy")...)
	case *graph.Dependency:
		actual.Purpose = props.String("purpose")
		actual.Version = strings.TrimPrefix(props.String("version"), "v")
		actual.ImportedBy = graph.AppendUnique(nil, props.Strings("importedBy")...)
		actual.Exports = graph.AppendUnique(nil, props.Strings("exports")...)
	}
	return entity
}
