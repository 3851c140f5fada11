package parser

import "github.com/viant/typedmind/graph"

// Distribute classifies every Function's generic `<-` dependency list by the referenced entity kind:
// a single DTO becomes input, functions and classes are calls, UI components are affects, run
// parameters, assets and constants are consumes. Names that cannot be classified (unknown names,
// ambiguous DTOs, dependencies) stay in Dependencies for the validator to flag.
// Distribute only looks at what is left, so it can be re-run after imported entities are merged.
func Distribute(g *graph.Graph) {
	for _, entity := range g.ByKind(graph.KindFunction) {
		fn := entity.(*graph.Function)
		if len(fn.Dependencies) == 0 {
			continue
		}
		var dtos []string
		for _, name := range fn.Dependencies {
			if g.KindOf(name) == graph.KindDTO {
				dtos = append(dtos, name)
			}
		}
		assignInput := fn.Input == "" && len(dtos) == 1

		var leftover []string
		for _, name := range fn.Dependencies {
			switch target := g.Lookup(name).(type) {
			case *graph.DTO:
				if assignInput {
					fn.Input = name
					continue
				}
				leftover = append(leftover, name)
			case *graph.Function, *graph.Class, *graph.ClassFile:
				fn.Calls = graph.AppendUnique(fn.Calls, name)
			case *graph.UIComponent:
				fn.Affects = graph.AppendUnique(fn.Affects, name)
				target.AffectedBy = graph.AppendUnique(target.AffectedBy, fn.Name)
			case *graph.RunParameter:
				fn.Consumes = graph.AppendUnique(fn.Consumes, name)
				target.ConsumedBy = graph.AppendUnique(target.ConsumedBy, fn.Name)
			case *graph.Asset, *graph.Constants:
				fn.Consumes = graph.AppendUnique(fn.Consumes, name)
			default:
				leftover = append(leftover, name)
			}
		}
		fn.Dependencies = leftover
	}
}
