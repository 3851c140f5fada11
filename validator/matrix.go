package validator

import (
	"strings"

	"github.com/viant/typedmind/graph"
)

type rule struct {
	sources []graph.Kind
	targets []graph.Kind
}

var (
	fileLike  = []graph.Kind{graph.KindFile, graph.KindClassFile}
	classLike = []graph.Kind{graph.KindClass, graph.KindClassFile}
	importers = []graph.Kind{graph.KindFile, graph.KindClass, graph.KindClassFile}
	callable  = []graph.Kind{graph.KindFunction, graph.KindClass, graph.KindClassFile}
)

// referenceMatrix lists, per relation, which kinds may hold it and which kinds it may point at
var referenceMatrix = map[string]rule{
	graph.RelEntry:   {sources: []graph.Kind{graph.KindProgram}, targets: fileLike},
	graph.RelImports: {sources: importers, targets: []graph.Kind{graph.KindFunction, graph.KindClass, graph.KindClassFile, graph.KindConstants, graph.KindDTO, graph.KindAsset, graph.KindUIComponent, graph.KindRunParameter, graph.KindFile, graph.KindDependency}},
	graph.RelExports: {
		sources: []graph.Kind{graph.KindProgram, graph.KindFile, graph.KindClassFile, graph.KindDependency},
		targets: []graph.Kind{graph.KindFile, graph.KindFunction, graph.KindClass, graph.KindClassFile, graph.KindConstants, graph.KindDTO, graph.KindAsset, graph.KindUIComponent, graph.KindRunParameter, graph.KindDependency},
	},
	graph.RelCalls:           {sources: []graph.Kind{graph.KindFunction}, targets: callable},
	graph.RelInput:           {sources: []graph.Kind{graph.KindFunction}, targets: []graph.Kind{graph.KindDTO}},
	graph.RelOutput:          {sources: []graph.Kind{graph.KindFunction}, targets: []graph.Kind{graph.KindDTO}},
	graph.RelAffects:         {sources: []graph.Kind{graph.KindFunction}, targets: []graph.Kind{graph.KindUIComponent}},
	graph.RelConsumes:        {sources: []graph.Kind{graph.KindFunction}, targets: []graph.Kind{graph.KindRunParameter, graph.KindAsset, graph.KindDependency, graph.KindConstants}},
	graph.RelExtends:         {sources: classLike, targets: classLike},
	graph.RelImplements:      {sources: classLike, targets: classLike},
	graph.RelSchema:          {sources: []graph.Kind{graph.KindConstants}, targets: []graph.Kind{graph.KindClass, graph.KindDTO}},
	graph.RelContainsProgram: {sources: []graph.Kind{graph.KindAsset}, targets: []graph.Kind{graph.KindProgram}},
	graph.RelContains:        {sources: []graph.Kind{graph.KindUIComponent}, targets: []graph.Kind{graph.KindUIComponent}},
	graph.RelContainedBy:     {sources: []graph.Kind{graph.KindUIComponent}, targets: []graph.Kind{graph.KindUIComponent}},
	graph.RelAffectedBy:      {sources: []graph.Kind{graph.KindUIComponent}, targets: []graph.Kind{graph.KindFunction}},
	graph.RelConsumedBy:      {sources: []graph.Kind{graph.KindRunParameter}, targets: []graph.Kind{graph.KindFunction}},
	graph.RelImportedBy:      {sources: []graph.Kind{graph.KindDependency}, targets: importers},
}

// derivedRelations are back-links maintained from the forward side; they do not count as references
var derivedRelations = map[string]bool{
	graph.RelContainedBy: true,
	graph.RelAffectedBy:  true,
	graph.RelConsumedBy:  true,
	graph.RelImportedBy:  true,
}

// Allowed reports whether source kind may reference target kind through relation
func Allowed(source graph.Kind, relation string, target graph.Kind) bool {
	r, ok := referenceMatrix[relation]
	if !ok {
		return false
	}
	return hasKind(r.sources, source) && hasKind(r.targets, target)
}

// AllowedTargets returns the kinds relation may point at
func AllowedTargets(relation string) []graph.Kind {
	return referenceMatrix[relation].targets
}

func hasKind(kinds []graph.Kind, kind graph.Kind) bool {
	for _, candidate := range kinds {
		if candidate == kind {
			return true
		}
	}
	return false
}

func joinKinds(kinds []graph.Kind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}
