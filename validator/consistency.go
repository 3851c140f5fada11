package validator

import (
	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// checkFunctionTypes requires function input and output to name DTOs
func (v *Validator) checkFunctionTypes() {
	for _, entity := range v.graph.ByKind(graph.KindFunction) {
		fn := entity.(*graph.Function)
		v.checkDTOReference(fn, graph.RelInput, fn.Input)
		v.checkDTOReference(fn, graph.RelOutput, fn.Output)
	}
}

func (v *Validator) checkDTOReference(fn *graph.Function, relation, name string) {
	if name == "" {
		return
	}
	target := v.graph.Lookup(name)
	switch {
	case target == nil:
		v.errorf(fn, diagnostic.CodeType, "Function '%s' %s '%s' is not a defined DTO", fn.Name, relation, name).
			WithSuggestion(suggest(v.graph, name, []graph.Kind{graph.KindDTO}))
	case target.Kind() != graph.KindDTO:
		v.errorf(fn, diagnostic.CodeType, "Function '%s' %s '%s' must be a DTO, found %s", fn.Name, relation, name, target.Kind())
	}
}

// checkUIConsistency verifies both directions of contains/containedBy and affects/affectedBy, and
// that every non-root component has exactly one parent
func (v *Validator) checkUIConsistency() {
	for _, entity := range v.graph.ByKind(graph.KindUIComponent) {
		component := entity.(*graph.UIComponent)
		for _, name := range component.Contains {
			child, ok := v.graph.Lookup(name).(*graph.UIComponent)
			switch {
			case v.graph.Lookup(name) == nil:
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' contains undefined component '%s'", component.Name, name).
					WithSuggestion(suggest(v.graph, name, []graph.Kind{graph.KindUIComponent}))
			case !ok:
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' contains %s '%s'; only UIComponents can be contained",
					component.Name, v.graph.KindOf(name), name)
			case !graph.Contains(child.ContainedBy, component.Name):
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' contains '%s' but '%s' is not containedBy '%s'",
					component.Name, name, name, component.Name)
			}
		}
		for _, name := range component.ContainedBy {
			parent, ok := v.graph.Lookup(name).(*graph.UIComponent)
			switch {
			case v.graph.Lookup(name) == nil:
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' is containedBy undefined component '%s'", component.Name, name)
			case !ok:
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' is containedBy %s '%s'; only UIComponents can contain components",
					component.Name, v.graph.KindOf(name), name)
			case !graph.Contains(parent.Contains, component.Name):
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' is containedBy '%s' but '%s' does not contain it",
					component.Name, name, name)
			}
		}
		for _, name := range component.AffectedBy {
			fn, ok := v.graph.Lookup(name).(*graph.Function)
			switch {
			case v.graph.Lookup(name) == nil:
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' is affectedBy undefined Function '%s'", component.Name, name).
					WithSuggestion(suggest(v.graph, name, []graph.Kind{graph.KindFunction}))
			case !ok:
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' is affectedBy %s '%s'; only Functions can affect components",
					component.Name, v.graph.KindOf(name), name)
			case !graph.Contains(fn.Affects, component.Name):
				v.errorf(component, diagnostic.CodeReference, "UIComponent '%s' is affectedBy '%s' but '%s' does not affect it",
					component.Name, name, name).WithSuggestion("add to " + name + ": ~ [" + component.Name + "]")
			}
		}
		parents := len(component.ContainedBy)
		switch {
		case component.Root && parents > 0:
			v.warnf(component, diagnostic.CodeStructural, "root UIComponent '%s' is contained by %d component(s)", component.Name, parents)
		case !component.Root && parents != 1:
			v.errorf(component, diagnostic.CodeStructural, "non-root UIComponent '%s' must be contained by exactly one component, found %d", component.Name, parents).
				WithSuggestion("mark it as root with &! or add it to a parent: > [" + component.Name + "]")
		}
	}
}

// checkAssets requires containsProgram to name a Program
func (v *Validator) checkAssets() {
	for _, entity := range v.graph.ByKind(graph.KindAsset) {
		asset := entity.(*graph.Asset)
		if asset.ContainsProgram == "" {
			continue
		}
		target := v.graph.Lookup(asset.ContainsProgram)
		switch {
		case target == nil:
			v.errorf(asset, diagnostic.CodeReference, "Asset '%s' contains undefined Program '%s'", asset.Name, asset.ContainsProgram).
				WithSuggestion(suggest(v.graph, asset.ContainsProgram, []graph.Kind{graph.KindProgram}))
		case target.Kind() != graph.KindProgram:
			v.errorf(asset, diagnostic.CodeReference, "Asset '%s' containsProgram '%s' must be a Program, found %s", asset.Name, asset.ContainsProgram, target.Kind())
		}
	}
}

// checkConsumption restricts consumes targets and verifies consumedBy against them
func (v *Validator) checkConsumption() {
	for _, entity := range v.graph.ByKind(graph.KindFunction) {
		fn := entity.(*graph.Function)
		for _, name := range fn.Consumes {
			target := v.graph.Lookup(name)
			switch {
			case target == nil:
				v.errorf(fn, diagnostic.CodeReference, "Function '%s' consumes undefined entity '%s'", fn.Name, name).
					WithSuggestion(suggest(v.graph, name, AllowedTargets(graph.RelConsumes)))
			case !Allowed(graph.KindFunction, graph.RelConsumes, target.Kind()):
				v.errorf(fn, diagnostic.CodeReference, "Function '%s' cannot consume %s '%s' (allowed: %s)",
					fn.Name, target.Kind(), name, joinKinds(AllowedTargets(graph.RelConsumes)))
			}
		}
	}
	for _, entity := range v.graph.ByKind(graph.KindRunParameter) {
		param := entity.(*graph.RunParameter)
		for _, name := range param.ConsumedBy {
			fn, ok := v.graph.Lookup(name).(*graph.Function)
			switch {
			case v.graph.Lookup(name) == nil:
				v.errorf(param, diagnostic.CodeReference, "RunParameter '%s' is consumedBy undefined Function '%s'", param.Name, name)
			case !ok:
				v.errorf(param, diagnostic.CodeReference, "RunParameter '%s' is consumedBy %s '%s'; only Functions consume parameters",
					param.Name, v.graph.KindOf(name), name)
			case !graph.Contains(fn.Consumes, param.Name):
				v.errorf(param, diagnostic.CodeReference, "RunParameter '%s' is consumedBy '%s' but '%s' does not consume it", param.Name, name, name)
			}
		}
	}
}

// checkDependencyImports verifies importedBy lists against the importers
func (v *Validator) checkDependencyImports() {
	for _, entity := range v.graph.ByKind(graph.KindDependency) {
		dependency := entity.(*graph.Dependency)
		for _, name := range dependency.ImportedBy {
			importer := v.graph.Lookup(name)
			switch {
			case importer == nil:
				v.errorf(dependency, diagnostic.CodeReference, "Dependency '%s' is importedBy undefined entity '%s'", dependency.Name, name)
			case !graph.Contains(graph.Imports(importer), dependency.Name):
				v.errorf(dependency, diagnostic.CodeReference, "Dependency '%s' is importedBy %s '%s' but '%s' does not import it",
					dependency.Name, importer.Kind(), name, name)
			}
		}
	}
}

// checkLeftoverDependencies flags generic dependencies auto-distribution could not classify
func (v *Validator) checkLeftoverDependencies() {
	for _, entity := range v.graph.ByKind(graph.KindFunction) {
		fn := entity.(*graph.Function)
		for _, name := range fn.Dependencies {
			target := v.graph.Lookup(name)
			switch {
			case target == nil:
				v.warnf(fn, diagnostic.CodeReference, "Function '%s' depends on undefined entity '%s'", fn.Name, name).
					WithSuggestion(suggest(v.graph, name, nil))
			case target.Kind() == graph.KindDTO:
				v.warnf(fn, diagnostic.CodeReference, "Function '%s' has ambiguous DTO dependency '%s'", fn.Name, name).
					WithSuggestion("declare the input explicitly: <- " + name)
			case target.Kind() == graph.KindDependency:
				v.warnf(fn, diagnostic.CodeReference, "Function '%s' depends on Dependency '%s' directly", fn.Name, name).
					WithSuggestion("import the dependency in a File, or consume it with $< [" + name + "]")
			default:
				v.warnf(fn, diagnostic.CodeReference, "Function '%s' has unclassified dependency %s '%s'", fn.Name, target.Kind(), name)
			}
		}
	}
}
