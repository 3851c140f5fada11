package graph

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// IRNode represents an entity in the exported intermediate representation
type IRNode struct {
	ID         string                 `yaml:"id"`
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// IREdge represents a relation in the exported intermediate representation
type IREdge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Type   string `yaml:"type"`
}

// IRGraph holds the nodes and edges for the intermediate representation
type IRGraph struct {
	Nodes []IRNode `yaml:"nodes"`
	Edges []IREdge `yaml:"edges"`
}

// Exporter exports an IRGraph to a storage backend
type Exporter interface {
	Export(graph *IRGraph) error
}

// BuildIR constructs an IRGraph; edges to undeclared names are kept so consumers can see dangling references
func BuildIR(g *Graph) *IRGraph {
	result := &IRGraph{}
	for _, entity := range g.Sorted() {
		meta := entity.Meta()
		node := IRNode{
			ID:   meta.Name,
			Type: string(entity.Kind()),
			Properties: map[string]interface{}{
				"line": meta.Position.Line,
			},
		}
		if path := PathOf(entity); path != "" {
			node.Properties["path"] = path
		}
		if meta.Comment != "" {
			node.Properties["comment"] = meta.Comment
		}
		if meta.Source != "" {
			node.Properties["source"] = meta.Source
		}
		result.Nodes = append(result.Nodes, node)
		for _, relation := range Relations(entity) {
			for _, target := range relation.Targets {
				result.Edges = append(result.Edges, IREdge{Source: meta.Name, Target: target, Type: relation.Kind})
			}
		}
	}
	return result
}

// YAMLExporter writes the IRGraph as YAML
type YAMLExporter struct {
	Writer io.Writer
}

// Export encodes graph to the exporter writer
func (e *YAMLExporter) Export(graph *IRGraph) error {
	encoder := yaml.NewEncoder(e.Writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}
	return encoder.Close()
}
