package validator

import (
	"sort"
	"strings"

	"github.com/viant/typedmind/diagnostic"
	"github.com/viant/typedmind/graph"
)

// cycleFinder runs a depth first search keeping a recursion stack; every cycle is reported once,
// keyed by its sorted member names.
type cycleFinder struct {
	edges    func(name string) []string
	visited  map[string]bool
	onStack  map[string]bool
	stack    []string
	reported map[string]bool
	found    [][]string
}

func newCycleFinder(edges func(name string) []string) *cycleFinder {
	return &cycleFinder{
		edges:    edges,
		visited:  map[string]bool{},
		onStack:  map[string]bool{},
		reported: map[string]bool{},
	}
}

// find returns the distinct cycles reachable from roots, each as its node path
func (c *cycleFinder) find(roots []string) [][]string {
	for _, root := range roots {
		if !c.visited[root] {
			c.visit(root)
		}
	}
	return c.found
}

func (c *cycleFinder) visit(name string) {
	c.visited[name] = true
	c.onStack[name] = true
	c.stack = append(c.stack, name)
	for _, next := range c.edges(name) {
		if c.onStack[next] {
			c.record(next)
			continue
		}
		if !c.visited[next] {
			c.visit(next)
		}
	}
	c.stack = c.stack[:len(c.stack)-1]
	c.onStack[name] = false
}

func (c *cycleFinder) record(start string) {
	index := len(c.stack) - 1
	for index >= 0 && c.stack[index] != start {
		index--
	}
	if index < 0 {
		return
	}
	cycle := append([]string{}, c.stack[index:]...)
	signature := cycleSignature(cycle)
	if c.reported[signature] {
		return
	}
	c.reported[signature] = true
	c.found = append(c.found, cycle)
}

func cycleSignature(cycle []string) string {
	seen := map[string]bool{}
	var names []string
	for _, name := range cycle {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

func cyclePath(cycle []string) string {
	return strings.Join(append(append([]string{}, cycle...), cycle[0]), " -> ")
}

func names(entities []graph.Entity) []string {
	result := make([]string, len(entities))
	for i, entity := range entities {
		result[i] = entity.Meta().Name
	}
	return result
}

// checkImportCycles finds File/ClassFile import cycles, following imports of exported names to the exporting file
func (v *Validator) checkImportCycles() {
	files := v.graph.ByKind(graph.KindFile, graph.KindClassFile)
	owners := map[string]string{}
	for _, file := range files {
		for _, name := range graph.Exports(file) {
			if _, ok := owners[name]; !ok {
				owners[name] = file.Meta().Name
			}
		}
	}
	finder := newCycleFinder(func(name string) []string {
		var result []string
		for _, imported := range graph.Imports(v.graph.Lookup(name)) {
			target := imported
			if !graph.IsFileLike(v.graph.Lookup(imported)) {
				owner, ok := owners[imported]
				if !ok || owner == name {
					continue
				}
				target = owner
			}
			result = graph.AppendUnique(result, target)
		}
		return result
	})
	for _, cycle := range finder.find(names(files)) {
		v.errorf(v.graph.Lookup(cycle[0]), diagnostic.CodeStructural, "circular import detected: %s", cyclePath(cycle))
	}
}

// checkContainmentCycles finds UIComponent contains cycles
func (v *Validator) checkContainmentCycles() {
	components := v.graph.ByKind(graph.KindUIComponent)
	for _, entity := range components {
		component := entity.(*graph.UIComponent)
		if graph.Contains(component.Contains, component.Name) {
			v.errorf(component, diagnostic.CodeStructural, "UIComponent '%s' contains itself", component.Name)
		}
	}
	finder := newCycleFinder(func(name string) []string {
		component, ok := v.graph.Lookup(name).(*graph.UIComponent)
		if !ok {
			return nil
		}
		var result []string
		for _, child := range component.Contains {
			if child != name && v.graph.KindOf(child) == graph.KindUIComponent {
				result = append(result, child)
			}
		}
		return result
	})
	for _, cycle := range finder.find(names(components)) {
		v.errorf(v.graph.Lookup(cycle[0]), diagnostic.CodeStructural, "circular containment detected: %s", cyclePath(cycle))
	}
}

// checkInheritanceCycles finds Class/ClassFile extends cycles
func (v *Validator) checkInheritanceCycles() {
	classes := v.graph.ByKind(graph.KindClass, graph.KindClassFile)
	for _, class := range classes {
		if graph.Extends(class) == class.Meta().Name {
			v.errorf(class, diagnostic.CodeStructural, "%s '%s' extends itself", class.Kind(), class.Meta().Name)
		}
	}
	finder := newCycleFinder(func(name string) []string {
		parent := graph.Extends(v.graph.Lookup(name))
		if parent == "" || parent == name || !graph.IsClassLike(v.graph.Lookup(parent)) {
			return nil
		}
		return []string{parent}
	})
	for _, cycle := range finder.find(names(classes)) {
		v.errorf(v.graph.Lookup(cycle[0]), diagnostic.CodeStructural, "circular inheritance detected: %s", cyclePath(cycle))
	}
}
