package graph

import (
	"fmt"
	"sort"

	"github.com/minio/highwayhash"
	"gopkg.in/yaml.v3"
)

var key = []byte("TypedMind-graph-fingerprint-key!")

// Hash returns a 64 bit highway hash of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

type canonicalEntity struct {
	Kind   Kind   `yaml:"kind"`
	Entity Entity `yaml:"entity"`
}

// Canonical encodes the semantic content of the graph: positions, raw text, sources and
// referencedBy are ignored and derived back-link lists are sorted.
func Canonical(g *Graph) ([]byte, error) {
	entities := g.Entities()
	sort.Slice(entities, func(i, j int) bool {
		return entities[i].Meta().Name < entities[j].Meta().Name
	})
	items := make([]canonicalEntity, 0, len(entities))
	for _, entity := range entities {
		cloned := Clone(entity)
		meta := cloned.Meta()
		meta.Position = Position{}
		meta.Raw = ""
		meta.Source = ""
		switch actual := cloned.(type) {
		case *UIComponent:
			sort.Strings(actual.ContainedBy)
			sort.Strings(actual.AffectedBy)
			sort.Strings(actual.Contains)
		case *RunParameter:
			sort.Strings(actual.ConsumedBy)
		case *Dependency:
			sort.Strings(actual.ImportedBy)
		}
		items = append(items, canonicalEntity{Kind: cloned.Kind(), Entity: cloned})
	}
	data, err := yaml.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return data, nil
}

// Fingerprint returns a hash of the canonical graph encoding
func Fingerprint(g *Graph) (uint64, error) {
	data, err := Canonical(g)
	if err != nil {
		return 0, err
	}
	return Hash(data)
}

// Equivalent reports whether two graphs hold the same entities up to field equality
func Equivalent(a, b *Graph) (bool, error) {
	fa, err := Fingerprint(a)
	if err != nil {
		return false, err
	}
	fb, err := Fingerprint(b)
	if err != nil {
		return false, err
	}
	return fa == fb, nil
}
