// Package validator checks a parsed entity graph as a whole: reference legality, naming conflicts,
// orphans, imports, cycles, entry points, paths, exports, method calls, bidirectional consistency
// and DTO field types.
package validator

import (
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// Result is the outcome of a validation run
type Result struct {
	Valid  bool                     `yaml:"valid" json:"valid"`
	Errors []*diagnostic.Diagnostic `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// Validator runs semantic passes over an entity graph.
// A Validator is not safe for concurrent use.
type Validator struct {
	options     *Options
	graph       *graph.Graph
	diagnostics []*diagnostic.Diagnostic
}

// New creates a validator
func New(options ...Option) *Validator {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}
	return &Validator{options: opts}
}

// Validate validates g with the given options
func Validate(g *graph.Graph, options ...Option) *Result {
	return New(options...).Validate(g)
}

// Validate runs every pass over g; passes never abort each other. Back-links and referencedBy
// are recomputed on every call.
func (v *Validator) Validate(g *graph.Graph) *Result {
	v.graph = g
	v.diagnostics = nil
	graph.Link(g)

	v.populateReferences()
	v.checkNamingConflicts()
	if !v.options.SkipOrphans {
		v.checkOrphans()
	}
	v.checkImports()
	v.checkImportCycles()
	v.checkContainmentCycles()
	v.checkInheritanceCycles()
	v.checkEntryPoints()
	v.checkUniquePaths()
	if !v.options.SkipExportCheck {
		v.checkExportCompleteness()
	}
	v.checkDuplicateExports()
	v.checkMethodCalls()
	v.checkUndefinedExports()
	v.checkFunctionTypes()
	v.checkUIConsistency()
	v.checkAssets()
	v.checkConsumption()
	v.checkDependencyImports()
	v.checkLeftoverDependencies()
	v.checkDTOFields()

	return &Result{Valid: !diagnostic.HasErrors(v.diagnostics), Errors: v.diagnostics}
}

func (v *Validator) errorf(entity graph.Entity, code diagnostic.Code, format string, args ...interface{}) *diagnostic.Diagnostic {
	return v.add(entity, diagnostic.Errorf(code, entity.Meta().Position, format, args...))
}

func (v *Validator) warnf(entity graph.Entity, code diagnostic.Code, format string, args ...interface{}) *diagnostic.Diagnostic {
	return v.add(entity, diagnostic.Warnf(code, entity.Meta().Position, format, args...))
}

func (v *Validator) add(entity graph.Entity, d *diagnostic.Diagnostic) *diagnostic.Diagnostic {
	if entity != nil {
		d.File = entity.Meta().Source
	}
	v.diagnostics = append(v.diagnostics, d)
	return d
}

// checkNamingConflicts reports names declared more than once
func (v *Validator) checkNamingConflicts() {
	for _, conflict := range v.options.NamingConflicts {
		if len(conflict.Declarations) < 2 {
			continue
		}
		last := conflict.Declarations[len(conflict.Declarations)-1]
		d := diagnostic.Errorf(diagnostic.CodeNamingConflict, last.Position,
			"naming conflict: '%s' is declared %d times (%s)", conflict.Name, len(conflict.Declarations), joinKinds(conflict.Kinds()))
		if conflict.IsFileClassCollision() {
			d.Message = "naming conflict: '" + conflict.Name + "' is declared as both File and Class"
			d.WithSuggestion("merge them into a ClassFile: " + conflict.Name + " #: path <: Base")
		}
		v.add(v.graph.Lookup(conflict.Name), d)
	}
}

// checkEntryPoints requires every Program entry to name a File or ClassFile
func (v *Validator) checkEntryPoints() {
	for _, entity := range v.graph.ByKind(graph.KindProgram) {
		program := entity.(*graph.Program)
		if program.Entry == "" {
			continue
		}
		target := v.graph.Lookup(program.Entry)
		switch {
		case target == nil:
			v.errorf(program, diagnostic.CodeStructural, "Program '%s' entry point '%s' is not a defined File", program.Name, program.Entry).
				WithSuggestion("declare it: " + program.Entry + " @ path:")
		case !graph.IsFileLike(target):
			v.errorf(program, diagnostic.CodeStructural, "Program '%s' entry point '%s' must be a File, found %s", program.Name, program.Entry, target.Kind())
		}
	}
}

// checkUniquePaths rejects File and ClassFile entities sharing a path
func (v *Validator) checkUniquePaths() {
	owners := map[string]graph.Entity{}
	for _, entity := range v.graph.ByKind(graph.KindFile, graph.KindClassFile) {
		path := graph.PathOf(entity)
		if path == "" || strings.Contains(path, "#") {
			continue
		}
		owner, ok := owners[path]
		if !ok {
			owners[path] = entity
			continue
		}
		v.errorf(entity, diagnostic.CodeStructural, "duplicate path '%s': used by %s '%s' and %s '%s'",
			path, owner.Kind(), owner.Meta().Name, entity.Kind(), entity.Meta().Name)
	}
}
