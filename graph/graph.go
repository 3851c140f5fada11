package graph

import (
	"sort"
	"strings"
)

// Import represents an @import statement of another DSL document
type Import struct {
	Path     string   `yaml:"path"`
	Alias    string   `yaml:"alias,omitempty"`
	Position Position `yaml:"position"`
	Raw      string   `yaml:"raw,omitempty"`
}

// Graph is the name-indexed entity table shared by parser, validator, resolver and generator
type Graph struct {
	entities  map[string]Entity
	order     []string        // declaration order
	kindIndex map[Kind][]string // lazily built, reset on mutation
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{entities: make(map[string]Entity)}
}

// Add stores entity under its name, replacing any previous entry; it returns the replaced entity if any
func (g *Graph) Add(entity Entity) Entity {
	name := entity.Meta().Name
	prev, ok := g.entities[name]
	if !ok {
		g.order = append(g.order, name)
	}
	g.entities[name] = entity
	g.kindIndex = nil
	return prev
}

// Remove deletes an entity by name
func (g *Graph) Remove(name string) bool {
	if _, ok := g.entities[name]; !ok {
		return false
	}
	delete(g.entities, name)
	for i, candidate := range g.order {
		if candidate == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.kindIndex = nil
	return true
}

// Lookup returns an entity by name or nil
func (g *Graph) Lookup(name string) Entity {
	if g == nil {
		return nil
	}
	return g.entities[name]
}

// Has reports whether name is declared
func (g *Graph) Has(name string) bool {
	_, ok := g.entities[name]
	return ok
}

// KindOf returns the kind of named entity or empty string
func (g *Graph) KindOf(name string) Kind {
	if entity := g.Lookup(name); entity != nil {
		return entity.Kind()
	}
	return ""
}

// Len returns number of entities
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entities)
}

// Names returns entity names in declaration order
func (g *Graph) Names() []string {
	result := make([]string, len(g.order))
	copy(result, g.order)
	return result
}

// Entities returns entities in declaration order
func (g *Graph) Entities() []Entity {
	if g == nil {
		return nil
	}
	result := make([]Entity, 0, len(g.order))
	for _, name := range g.order {
		result = append(result, g.entities[name])
	}
	return result
}

// Sorted returns entities ordered by kind priority, then name
func (g *Graph) Sorted() []Entity {
	result := g.Entities()
	sort.SliceStable(result, func(i, j int) bool {
		pi, pj := result[i].Kind().Priority(), result[j].Kind().Priority()
		if pi != pj {
			return pi < pj
		}
		return result[i].Meta().Name < result[j].Meta().Name
	})
	return result
}

// ByKind returns entities of the given kinds in declaration order
func (g *Graph) ByKind(kinds ...Kind) []Entity {
	if g == nil {
		return nil
	}
	if g.kindIndex == nil {
		g.indexKinds()
	}
	var result []Entity
	if len(kinds) == 1 {
		for _, name := range g.kindIndex[kinds[0]] {
			result = append(result, g.entities[name])
		}
		return result
	}
	for _, name := range g.order {
		entity := g.entities[name]
		for _, kind := range kinds {
			if entity.Kind() == kind {
				result = append(result, entity)
				break
			}
		}
	}
	return result
}

func (g *Graph) indexKinds() {
	g.kindIndex = make(map[Kind][]string)
	for _, name := range g.order {
		entity := g.entities[name]
		if entity == nil {
			continue
		}
		g.kindIndex[entity.Kind()] = append(g.kindIndex[entity.Kind()], name)
	}
}

// MatchPrefix returns entity names starting with prefix, in declaration order
func (g *Graph) MatchPrefix(prefix string) []string {
	var result []string
	for _, name := range g.order {
		if strings.HasPrefix(name, prefix) {
			result = append(result, name)
		}
	}
	return result
}
