package graph

// Link populates the derived side of bidirectional relations:
// affects -> affectedBy, consumes -> consumedBy, imports -> importedBy and contains -> containedBy.
// Link is idempotent. Derivation only runs from the forward side, so a declared back-link the forward
// side does not confirm stays unmatched for the validator to report.
func Link(g *Graph) {
	for _, entity := range g.Entities() {
		switch actual := entity.(type) {
		case *Function:
			for _, target := range actual.Affects {
				if component, ok := g.Lookup(target).(*UIComponent); ok {
					component.AffectedBy = AppendUnique(component.AffectedBy, actual.Name)
				}
			}
			for _, target := range actual.Consumes {
				if param, ok := g.Lookup(target).(*RunParameter); ok {
					param.ConsumedBy = AppendUnique(param.ConsumedBy, actual.Name)
				}
			}
		case *UIComponent:
			for _, target := range actual.Contains {
				if child, ok := g.Lookup(target).(*UIComponent); ok {
					child.ContainedBy = AppendUnique(child.ContainedBy, actual.Name)
				}
			}
		}
		for _, target := range Imports(entity) {
			if dependency, ok := g.Lookup(target).(*Dependency); ok {
				dependency.ImportedBy = AppendUnique(dependency.ImportedBy, entity.Meta().Name)
			}
		}
	}
}
