package flowspec

import (
	"fmt"

	"github.com/martinemde/taskflow/flow"
)

// Spec is a decoded graph specification.
type Spec struct {
	Title string          `json:"title,omitempty" yaml:"title,omitempty"`
	Nodes []flow.NodeSpec `json:"nodes" yaml:"nodes"`
	Edges []flow.EdgeSpec `json:"edges" yaml:"edges"`
}

// Flow constructs the TaskFlow described by the spec.
func (s Spec) Flow() (*flow.TaskFlow, error) {
	return flow.New(s.Title, s.Nodes, s.Edges)
}

// wireSpec is the shared JSON and YAML document shape.
type wireSpec struct {
	Title string          `json:"title" yaml:"title"`
	Nodes []flow.NodeSpec `json:"nodes" yaml:"nodes"`
	Edges []wireEdge      `json:"edges" yaml:"edges"`
}

// wireEdge accepts both naming schemes for edge endpoints and labels.
type wireEdge struct {
	Source    string `json:"source" yaml:"source"`
	From      string `json:"from" yaml:"from"`
	Target    string `json:"target" yaml:"target"`
	To        string `json:"to" yaml:"to"`
	Label     string `json:"label" yaml:"label"`
	Condition string `json:"condition" yaml:"condition"`
}

func pick(field, a, b string) (string, error) {
	if a != "" && b != "" && a != b {
		return "", fmt.Errorf("conflicting %s values %q and %q", field, a, b)
	}
	if a != "" {
		return a, nil
	}
	return b, nil
}

func (w wireEdge) spec() (flow.EdgeSpec, error) {
	src, err := pick("source/from", w.Source, w.From)
	if err != nil {
		return flow.EdgeSpec{}, err
	}
	tgt, err := pick("target/to", w.Target, w.To)
	if err != nil {
		return flow.EdgeSpec{}, err
	}
	label, err := pick("label/condition", w.Label, w.Condition)
	if err != nil {
		return flow.EdgeSpec{}, err
	}
	return flow.EdgeSpec{Source: src, Target: tgt, Label: label}, nil
}

func (w wireSpec) spec(format Format) (Spec, error) {
	s := Spec{Title: w.Title, Nodes: w.Nodes, Edges: make([]flow.EdgeSpec, 0, len(w.Edges))}
	for i, we := range w.Edges {
		es, err := we.spec()
		if err != nil {
			return Spec{}, &DecodeError{Format: format, Msg: fmt.Sprintf("edge %d: %v", i, err)}
		}
		s.Edges = append(s.Edges, es)
	}
	return s, nil
}
