package graph

import "strings"

// Merge copies src entities into dst. In case of duplicate names, the dst entity is preserved
// and the skipped names are returned.
func Merge(dst, src *Graph) []string {
	var skipped []string
	for _, entity := range src.Entities() {
		name := entity.Meta().Name
		if dst.Has(name) {
			skipped = append(skipped, name)
			continue
		}
		dst.Add(entity)
	}
	return skipped
}

// Prefixed returns a copy of g with every entity renamed to alias.Name; references between
// entities of g (including Owner.method calls) are rewritten too, references to unknown names are left as is.
func Prefixed(g *Graph, alias string) *Graph {
	result := NewGraph()
	if alias == "" {
		for _, entity := range g.Entities() {
			result.Add(Clone(entity))
		}
		return result
	}
	prefix := alias + "."
	rename := func(name string) string {
		if g.Has(name) {
			return prefix + name
		}
		if index := strings.LastIndex(name, "."); index > 0 && g.Has(name[:index]) {
			return prefix + name
		}
		return name
	}
	for _, entity := range g.Entities() {
		cloned := Clone(entity)
		RewriteReferences(cloned, rename)
		cloned.Meta().Name = prefix + cloned.Meta().Name
		result.Add(cloned)
	}
	return result
}

// Clone returns a deep copy of entity, dropping computed referencedBy
func Clone(entity Entity) Entity {
	var result Entity
	switch actual := entity.(type) {
	case *Program:
		c := *actual
		c.Exports = copyStrings(actual.Exports)
		result = &c
	case *File:
		c := *actual
		c.Imports = copyStrings(actual.Imports)
		c.Exports = copyStrings(actual.Exports)
		result = &c
	case *Function:
		c := *actual
		c.Calls = copyStrings(actual.Calls)
		c.Affects = copyStrings(actual.Affects)
		c.Consumes = copyStrings(actual.Consumes)
		c.Dependencies = copyStrings(actual.Dependencies)
		result = &c
	case *Class:
		c := *actual
		c.Implements = copyStrings(actual.Implements)
		c.Methods = copyStrings(actual.Methods)
		c.Imports = copyStrings(actual.Imports)
		result = &c
	case *ClassFile:
		c := *actual
		c.Implements = copyStrings(actual.Implements)
		c.Methods = copyStrings(actual.Methods)
		c.Imports = copyStrings(actual.Imports)
		c.Exports = copyStrings(actual.Exports)
		result = &c
	case *Constants:
		c := *actual
		result = &c
	case *DTO:
		c := *actual
		c.Fields = make([]*DTOField, 0, len(actual.Fields))
		for _, field := range actual.Fields {
			f := *field
			c.Fields = append(c.Fields, &f)
		}
		result = &c
	case *Asset:
		c := *actual
		result = &c
	case *UIComponent:
		c := *actual
		c.Contains = copyStrings(actual.Contains)
		c.ContainedBy = copyStrings(actual.ContainedBy)
		c.AffectedBy = copyStrings(actual.AffectedBy)
		result = &c
	case *RunParameter:
		c := *actual
		c.ConsumedBy = copyStrings(actual.ConsumedBy)
		result = &c
	case *Dependency:
		c := *actual
		c.ImportedBy = copyStrings(actual.ImportedBy)
		c.Exports = copyStrings(actual.Exports)
		result = &c
	default:
		return entity
	}
	result.Meta().ReferencedBy = nil
	return result
}

func copyStrings(values []string) []string {
	if values == nil {
		return nil
	}
	result := make([]string, len(values))
	copy(result, values)
	return result
}
