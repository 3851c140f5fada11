package validator

import (
	"github.com/agext/levenshtein"
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// similarityThreshold is the minimum normalized similarity for a "did you mean" suggestion
const similarityThreshold = 0.6

// checkImports requires every import to name an entity, a non-empty wildcard prefix or a dependency export
func (v *Validator) checkImports() {
	dependencyExports := map[string]bool{}
	for _, entity := range v.graph.ByKind(graph.KindDependency) {
		for _, name := range entity.(*graph.Dependency).Exports {
			dependencyExports[name] = true
		}
	}
	for _, entity := range v.graph.ByKind(graph.KindFile, graph.KindClass, graph.KindClassFile) {
		meta := entity.Meta()
		for _, name := range graph.Imports(entity) {
			if prefix, ok := wildcardPrefix(name); ok {
				if len(v.graph.MatchPrefix(prefix)) == 0 {
					v.errorf(entity, diagnostic.CodeImport, "%s '%s' wildcard import '%s' does not match any entity", entity.Kind(), meta.Name, name)
				}
				continue
			}
			target := v.graph.Lookup(name)
			switch {
			case target != nil:
				if !Allowed(entity.Kind(), graph.RelImports, target.Kind()) {
					v.errorf(entity, diagnostic.CodeReference, "%s '%s' cannot import %s '%s'", entity.Kind(), meta.Name, target.Kind(), name)
				}
			case dependencyExports[name]:
			default:
				v.errorf(entity, diagnostic.CodeImport, "%s '%s' imports undefined entity '%s'", entity.Kind(), meta.Name, name).
					WithSuggestion(suggest(v.graph, name, nil))
			}
		}
	}
}

// suggest returns a "did you mean" hint for the most similar entity name of the given kinds (any kind when empty)
func suggest(g *graph.Graph, name string, kinds []graph.Kind) string {
	best := ""
	bestScore := 0.0
	for _, entity := range g.Entities() {
		if len(kinds) > 0 && !hasKind(kinds, entity.Kind()) {
			continue
		}
		candidate := entity.Meta().Name
		if candidate == name {
			continue
		}
		score := levenshtein.Similarity(name, candidate, nil)
		if score >= similarityThreshold && score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if best == "" {
		return ""
	}
	return "did you mean '" + best + "'?"
}
