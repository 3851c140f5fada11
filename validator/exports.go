package validator

import (
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// checkExportCompleteness requires classes to be exported and functions to be exported or declared as methods
func (v *Validator) checkExportCompleteness() {
	exported := map[string]bool{}
	methods := map[string]bool{}
	for _, entity := range v.graph.Entities() {
		for _, name := range graph.Exports(entity) {
			exported[name] = true
		}
		for _, method := range graph.Methods(entity) {
			methods[method] = true
		}
	}
	for _, entity := range v.graph.ByKind(graph.KindClass) {
		name := entity.Meta().Name
		if exported[name] {
			continue
		}
		v.errorf(entity, diagnostic.CodeStructural, "Class '%s' is not exported by any File", name).
			WithSuggestion("add it to a File's exports: -> [" + name + "]")
	}
	for _, entity := range v.graph.ByKind(graph.KindFunction) {
		name := entity.Meta().Name
		if exported[name] || methods[name] || v.isQualifiedMethod(name) {
			continue
		}
		v.errorf(entity, diagnostic.CodeStructural, "Function '%s' is not exported by any File and is not a class method", name).
			WithSuggestion("export it: -> [" + name + "], or list it under a class: => [" + name + "]")
	}
}

// isQualifiedMethod reports a Class.method name whose class is declared
func (v *Validator) isQualifiedMethod(name string) bool {
	index := strings.LastIndex(name, ".")
	if index <= 0 {
		return false
	}
	return graph.IsClassLike(v.graph.Lookup(name[:index]))
}

// checkDuplicateExports rejects a name exported by more than one File or ClassFile
func (v *Validator) checkDuplicateExports() {
	exporters := map[string]graph.Entity{}
	for _, entity := range v.graph.ByKind(graph.KindFile, graph.KindClassFile) {
		for _, name := range graph.Exports(entity) {
			owner, ok := exporters[name]
			if !ok {
				exporters[name] = entity
				continue
			}
			v.errorf(entity, diagnostic.CodeStructural, "'%s' is exported by both %s '%s' and %s '%s'",
				name, owner.Kind(), owner.Meta().Name, entity.Kind(), entity.Meta().Name)
		}
	}
}

// checkUndefinedExports requires exported names to be declared entities of an exportable kind
func (v *Validator) checkUndefinedExports() {
	for _, entity := range v.graph.ByKind(graph.KindProgram, graph.KindFile, graph.KindClassFile) {
		meta := entity.Meta()
		for _, name := range graph.Exports(entity) {
			if name == meta.Name {
				continue
			}
			target := v.graph.Lookup(name)
			if target == nil {
				v.errorf(entity, diagnostic.CodeReference, "%s '%s' exports undefined entity '%s'", entity.Kind(), meta.Name, name).
					WithSuggestion(suggest(v.graph, name, nil))
				continue
			}
			if !Allowed(entity.Kind(), graph.RelExports, target.Kind()) {
				v.errorf(entity, diagnostic.CodeReference, "%s '%s' cannot export %s '%s'", entity.Kind(), meta.Name, target.Kind(), name)
			}
		}
	}
}

// checkMethodCalls resolves Object.method calls against the object's declared methods
func (v *Validator) checkMethodCalls() {
	for _, entity := range v.graph.ByKind(graph.KindFunction) {
		fn := entity.(*graph.Function)
		for _, call := range fn.Calls {
			index := strings.LastIndex(call, ".")
			if index <= 0 || v.graph.Has(call) {
				continue
			}
			objectName, method := call[:index], call[index+1:]
			object := v.graph.Lookup(objectName)
			switch {
			case object == nil:
				v.errorf(fn, diagnostic.CodeReference, "Function '%s' calls '%s' but '%s' is not defined", fn.Name, call, objectName).
					WithSuggestion(suggest(v.graph, objectName, classLike))
			case object.Kind() == graph.KindDependency:
			case !graph.IsClassLike(object):
				v.errorf(fn, diagnostic.CodeReference, "Function '%s' calls '%s' but %s '%s' has no methods", fn.Name, call, object.Kind(), objectName)
			case !graph.Contains(graph.Methods(object), method):
				d := v.errorf(fn, diagnostic.CodeReference, "Function '%s' calls '%s' but %s '%s' has no method '%s'", fn.Name, call, object.Kind(), objectName, method)
				if methods := graph.Methods(object); len(methods) > 0 {
					d.WithSuggestion("available methods: " + strings.Join(methods, ", "))
				}
			}
		}
	}
}
