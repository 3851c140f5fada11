package graph

// Relation kinds
const (
	RelEntry           = "entry"
	RelImports         = "imports"
	RelExports         = "exports"
	RelCalls           = "calls"
	RelInput           = "input"
	RelOutput          = "output"
	RelAffects         = "affects"
	RelConsumes        = "consumes"
	RelExtends         = "extends"
	RelImplements      = "implements"
	RelSchema          = "schema"
	RelContainsProgram = "containsProgram"
	RelContains        = "contains"
	RelContainedBy     = "containedBy"
	RelAffectedBy      = "affectedBy"
	RelConsumedBy      = "consumedBy"
	RelImportedBy      = "importedBy"
)

// Relation is a named list of outgoing name references
type Relation struct {
	Kind    string
	Targets []string
}

func single(kind, target string) []Relation {
	if target == "" {
		return nil
	}
	return []Relation{{Kind: kind, Targets: []string{target}}}
}

func list(kind string, targets []string) []Relation {
	if len(targets) == 0 {
		return nil
	}
	return []Relation{{Kind: kind, Targets: targets}}
}

// Relations enumerates every outgoing reference field of an entity
func Relations(entity Entity) []Relation {
	var result []Relation
	switch actual := entity.(type) {
	case *Program:
		result = append(result, single(RelEntry, actual.Entry)...)
		result = append(result, list(RelExports, actual.Exports)...)
	case *File:
		result = append(result, list(RelImports, actual.Imports)...)
		result = append(result, list(RelExports, actual.Exports)...)
	case *Function:
		result = append(result, list(RelCalls, actual.Calls)...)
		result = append(result, single(RelInput, actual.Input)...)
		result = append(result, single(RelOutput, actual.Output)...)
		result = append(result, list(RelAffects, actual.Affects)...)
		result = append(result, list(RelConsumes, actual.Consumes)...)
	case *Class:
		result = append(result, single(RelExtends, actual.Extends)...)
		result = append(result, list(RelImplements, actual.Implements)...)
		result = append(result, list(RelImports, actual.Imports)...)
	case *ClassFile:
		result = append(result, single(RelExtends, actual.Extends)...)
		result = append(result, list(RelImplements, actual.Implements)...)
		result = append(result, list(RelImports, actual.Imports)...)
		result = append(result, list(RelExports, withoutName(actual.Exports, actual.Name))...)
	case *Constants:
		result = append(result, single(RelSchema, actual.Schema)...)
	case *Asset:
		result = append(result, single(RelContainsProgram, actual.ContainsProgram)...)
	case *UIComponent:
		result = append(result, list(RelContains, actual.Contains)...)
		result = append(result, list(RelContainedBy, actual.ContainedBy)...)
		result = append(result, list(RelAffectedBy, actual.AffectedBy)...)
	case *RunParameter:
		result = append(result, list(RelConsumedBy, actual.ConsumedBy)...)
	case *Dependency:
		result = append(result, list(RelImportedBy, actual.ImportedBy)...)
	}
	return result
}

func withoutName(names []string, name string) []string {
	var result []string
	for _, candidate := range names {
		if candidate != name {
			result = append(result, candidate)
		}
	}
	return result
}

// RewriteReferences applies fn to every name reference held by entity, including leftover dependencies
func RewriteReferences(entity Entity, fn func(string) string) {
	rewrite := func(names []string) []string {
		if len(names) == 0 {
			return names
		}
		result := make([]string, len(names))
		for i, name := range names {
			result[i] = fn(name)
		}
		return result
	}
	rewriteOne := func(name string) string {
		if name == "" {
			return name
		}
		return fn(name)
	}
	switch actual := entity.(type) {
	case *Program:
		actual.Entry = rewriteOne(actual.Entry)
		actual.Exports = rewrite(actual.Exports)
	case *File:
		actual.Imports = rewrite(actual.Imports)
		actual.Exports = rewrite(actual.Exports)
	case *Function:
		actual.Calls = rewrite(actual.Calls)
		actual.Input = rewriteOne(actual.Input)
		actual.Output = rewriteOne(actual.Output)
		actual.Affects = rewrite(actual.Affects)
		actual.Consumes = rewrite(actual.Consumes)
		actual.Dependencies = rewrite(actual.Dependencies)
	case *Class:
		actual.Extends = rewriteOne(actual.Extends)
		actual.Implements = rewrite(actual.Implements)
		actual.Imports = rewrite(actual.Imports)
	case *ClassFile:
		actual.Extends = rewriteOne(actual.Extends)
		actual.Implements = rewrite(actual.Implements)
		actual.Imports = rewrite(actual.Imports)
		actual.Exports = rewrite(actual.Exports)
	case *Constants:
		actual.Schema = rewriteOne(actual.Schema)
	case *Asset:
		actual.ContainsProgram = rewriteOne(actual.ContainsProgram)
	case *UIComponent:
		actual.Contains = rewrite(actual.Contains)
		actual.ContainedBy = rewrite(actual.ContainedBy)
		actual.AffectedBy = rewrite(actual.AffectedBy)
	case *RunParameter:
		actual.ConsumedBy = rewrite(actual.ConsumedBy)
	case *Dependency:
		actual.ImportedBy = rewrite(actual.ImportedBy)
	}
}
