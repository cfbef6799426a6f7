package graph

import (
	"fmt"

	"github.com/dd0wney/cluso-graph-analyzer/pkg/validation"
)

// Element is one entry of the element list the canvas collaborator keeps:
// a node ({id, label}) or an edge ({id, source, target, weight, sign,
// directed}) stored under Data.
type Element struct {
	Group string         `json:"group,omitempty"`
	Data  map[string]any `json:"data"`
}

// IsEdge reports whether the element describes an edge.
func (el Element) IsEdge() bool {
	if el.Group == "edges" {
		return true
	}
	if el.Group == "nodes" {
		return false
	}
	_, hasSource := el.Data["source"]
	_, hasTarget := el.Data["target"]
	return hasSource || hasTarget
}

// FromElements builds a snapshot from an element list. Nodes are added
// first, in list order, so edges may appear anywhere in the list.
func FromElements(elements []Element) (*Snapshot, error) {
	b := NewBuilder()

	for _, el := range elements {
		if el.IsEdge() {
			continue
		}
		id := stringField(el.Data, "id")
		label := stringField(el.Data, "label")
		if label == "" {
			label = id
		}
		if err := b.AddNode(id, label); err != nil {
			return nil, err
		}
	}

	for _, el := range elements {
		if !el.IsEdge() {
			continue
		}
		edge := validation.EdgeElement{
			ID:       stringField(el.Data, "id"),
			Source:   stringField(el.Data, "source"),
			Target:   stringField(el.Data, "target"),
			Weight:   el.Data["weight"],
			Sign:     el.Data["sign"],
			Directed: parseBool(el.Data["directed"]),
		}
		if err := b.AddEdge(edge); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}

// stringField reads an identifier-like field; numeric IDs are rendered with
// fmt so {"id": 3} and {"id": "3"} name the same node.
func stringField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
