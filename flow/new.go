package flow

import (
	"fmt"
	"strings"
)

// NodeSpec is the raw description of a node, as produced by a generator.
type NodeSpec struct {
	ID    string `json:"id" yaml:"id"`
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label" yaml:"label"`
	Actor string `json:"actor,omitempty" yaml:"actor,omitempty"`
}

// EdgeSpec is the raw description of an edge.
type EdgeSpec struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// New constructs a TaskFlow from raw node and edge specifications. It returns
// a *MalformedGraphError describing the first defect found; nodes are checked
// before edges, each in input order. Degree and type-cardinality rules are not
// checked here.
func New(title string, nodes []NodeSpec, edges []EdgeSpec) (*TaskFlow, error) {
	if len(nodes) == 0 {
		return nil, &MalformedGraphError{
			Defect:  EmptyFlow,
			Index:   -1,
			Message: "flow has no nodes",
		}
	}

	f := &TaskFlow{
		title: title,
		nodes: make([]Node, 0, len(nodes)),
		edges: make([]Edge, 0, len(edges)),
	}

	seen := make(map[string]bool, len(nodes))
	for i, ns := range nodes {
		n, err := buildNode(i, ns)
		if err != nil {
			return nil, err
		}
		if seen[n.ID] {
			return nil, &MalformedGraphError{
				Defect:  DuplicateNodeID,
				Index:   i,
				NodeID:  n.ID,
				Message: fmt.Sprintf("node id %q is declared more than once", n.ID),
			}
		}
		seen[n.ID] = true
		f.nodes = append(f.nodes, n)
	}

	for i, es := range edges {
		ref := &EdgeRef{From: es.Source, To: es.Target}
		if !seen[es.Source] {
			return nil, &MalformedGraphError{
				Defect:  UnknownSource,
				Index:   i,
				Edge:    ref,
				Message: fmt.Sprintf("edge %d source %q does not reference a node", i, es.Source),
			}
		}
		if !seen[es.Target] {
			return nil, &MalformedGraphError{
				Defect:  UnknownTarget,
				Index:   i,
				Edge:    ref,
				Message: fmt.Sprintf("edge %d target %q does not reference a node", i, es.Target),
			}
		}
		f.edges = append(f.edges, Edge{Source: es.Source, Target: es.Target, Label: es.Label})
	}

	return f, nil
}

func buildNode(i int, ns NodeSpec) (Node, error) {
	if ns.ID == "" {
		return Node{}, &MalformedGraphError{
			Defect:  EmptyNodeID,
			Index:   i,
			Message: fmt.Sprintf("node %d has an empty id", i),
		}
	}
	if strings.TrimSpace(ns.Label) == "" {
		return Node{}, &MalformedGraphError{
			Defect:  EmptyLabel,
			Index:   i,
			NodeID:  ns.ID,
			Message: fmt.Sprintf("node %q has an empty label", ns.ID),
		}
	}
	typ, err := ParseNodeType(ns.Type)
	if err != nil {
		return Node{}, &MalformedGraphError{
			Defect:  UnknownNodeType,
			Index:   i,
			NodeID:  ns.ID,
			Message: fmt.Sprintf("node %q: %v", ns.ID, err),
		}
	}
	actor, err := ParseActor(ns.Actor)
	if err != nil {
		return Node{}, &MalformedGraphError{
			Defect:  UnknownActor,
			Index:   i,
			NodeID:  ns.ID,
			Message: fmt.Sprintf("node %q: %v", ns.ID, err),
		}
	}
	return Node{ID: ns.ID, Type: typ, Label: ns.Label, Actor: actor}, nil
}
