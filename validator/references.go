package validator

import (
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// checkedByReferencePass are the relations whose missing or illegal targets are reported while
// populating referencedBy; other relations are reported by their dedicated pass.
var checkedByReferencePass = map[string]bool{
	graph.RelCalls:      true,
	graph.RelAffects:    true,
	graph.RelExtends:    true,
	graph.RelImplements: true,
	graph.RelSchema:     true,
}

// populateReferences resets and rebuilds referencedBy for every entity
func (v *Validator) populateReferences() {
	for _, entity := range v.graph.Entities() {
		entity.Meta().ReferencedBy = nil
	}
	for _, entity := range v.graph.Entities() {
		meta := entity.Meta()
		for _, relation := range graph.Relations(entity) {
			checked := checkedByReferencePass[relation.Kind]
			for _, name := range relation.Targets {
				if relation.Kind == graph.RelCalls && strings.Contains(name, ".") && !v.graph.Has(name) {
					v.referenceMethodOwner(entity, name)
					continue
				}
				target := v.graph.Lookup(name)
				if target == nil {
					if checked {
						v.errorf(entity, diagnostic.CodeReference, "%s '%s' %s undefined entity '%s'", entity.Kind(), meta.Name, relation.Kind, name).
							WithSuggestion(suggest(v.graph, name, AllowedTargets(relation.Kind)))
					}
					continue
				}
				if checked && !Allowed(entity.Kind(), relation.Kind, target.Kind()) {
					v.errorf(entity, diagnostic.CodeReference, "%s '%s' cannot use %s to reference %s '%s' (allowed: %s)",
						entity.Kind(), meta.Name, relation.Kind, target.Kind(), name, joinKinds(AllowedTargets(relation.Kind)))
				}
				if derivedRelations[relation.Kind] || target == entity {
					continue
				}
				addReference(target, entity, relation.Kind)
			}
		}
	}
}

// referenceMethodOwner records an Obj.method call as a reference to Obj
func (v *Validator) referenceMethodOwner(from graph.Entity, call string) {
	owner := v.graph.Lookup(call[:strings.LastIndex(call, ".")])
	if owner != nil && owner != from {
		addReference(owner, from, graph.RelCalls)
	}
}

func addReference(target, from graph.Entity, relation string) {
	meta := target.Meta()
	for _, ref := range meta.ReferencedBy {
		if ref.From == from.Meta().Name && ref.Type == relation {
			return
		}
	}
	meta.ReferencedBy = append(meta.ReferencedBy, &graph.Reference{From: from.Meta().Name, Type: relation, FromType: from.Kind()})
}

// checkOrphans warns about entities nothing refers to. Programs and dependencies are roots; a
// File is alive when referenced or when any of its exports is imported.
func (v *Validator) checkOrphans() {
	imported := map[string]bool{}
	var prefixes []string
	for _, entity := range v.graph.Entities() {
		for _, name := range graph.Imports(entity) {
			if prefix, ok := wildcardPrefix(name); ok {
				prefixes = append(prefixes, prefix)
				continue
			}
			imported[name] = true
		}
	}
	isImported := func(name string) bool {
		if imported[name] {
			return true
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	}

	for _, entity := range v.graph.Entities() {
		kind := entity.Kind()
		if kind == graph.KindProgram || kind == graph.KindDependency {
			continue
		}
		meta := entity.Meta()
		if len(meta.ReferencedBy) > 0 || isImported(meta.Name) {
			continue
		}
		if graph.IsFileLike(entity) {
			alive := false
			for _, name := range graph.Exports(entity) {
				if isImported(name) {
					alive = true
					break
				}
			}
			if alive {
				continue
			}
			v.warnf(entity, diagnostic.CodeOrphan, "orphaned %s '%s': none of its exports are imported and nothing references it", kind, meta.Name)
			continue
		}
		v.warnf(entity, diagnostic.CodeOrphan, "orphaned %s '%s' is not referenced by any entity", kind, meta.Name)
	}
}

func wildcardPrefix(name string) (string, bool) {
	if strings.HasSuffix(name, "*") {
		return strings.TrimSuffix(name, "*"), true
	}
	return "", false
}
