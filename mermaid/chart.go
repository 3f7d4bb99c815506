package mermaid

import (
	"fmt"

	"github.com/martinemde/taskflow/flow"
)

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// Shape is the delimiter pair around a node label.
type Shape int

const (
	ShapeNone    Shape = iota // bare reference, no delimiters
	ShapeRect                 // [label]
	ShapeRound                // (label)
	ShapeStadium              // ([label])
	ShapeRhombus              // {label}
	ShapeCircle               // ((label))
)

var shapeDelims = map[Shape][2]string{
	ShapeRect:    {"[", "]"},
	ShapeRound:   {"(", ")"},
	ShapeStadium: {"([", "])"},
	ShapeRhombus: {"{", "}"},
	ShapeCircle:  {"((", "))"},
}

// Open returns the opening delimiter.
func (s Shape) Open() string { return shapeDelims[s][0] }

// Close returns the closing delimiter.
func (s Shape) Close() string { return shapeDelims[s][1] }

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeRect:
		return "rect"
	case ShapeRound:
		return "round"
	case ShapeStadium:
		return "stadium"
	case ShapeRhombus:
		return "rhombus"
	case ShapeCircle:
		return "circle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// nodeType maps a shape back to the node type that emits it. Bare and round
// nodes read as process steps.
func (s Shape) nodeType() flow.NodeType {
	switch s {
	case ShapeStadium:
		return flow.Start
	case ShapeRhombus:
		return flow.Decision
	case ShapeCircle:
		return flow.End
	default:
		return flow.Process
	}
}

// Node is a node as declared in flowchart text.
type Node struct {
	ID    string
	Shape Shape
	Label string
	Pos   Position
}

// Edge is a single directed link. Chained links are expanded.
type Edge struct {
	From  string
	To    string
	Label string
	Pos   Position
}

// Chart is a parsed flowchart.
type Chart struct {
	Title     string
	Direction string
	Nodes     []*Node // declaration order
	Edges     []*Edge
}

// NodeByID returns the node with the given id, or nil.
func (c *Chart) NodeByID(id string) *Node {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Spec converts the chart into raw node and edge specifications, inferring
// each node's type from its shape.
func (c *Chart) Spec() ([]flow.NodeSpec, []flow.EdgeSpec) {
	nodes := make([]flow.NodeSpec, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		nodes = append(nodes, flow.NodeSpec{
			ID:    n.ID,
			Type:  n.Shape.nodeType().String(),
			Label: n.Label,
		})
	}
	edges := make([]flow.EdgeSpec, 0, len(c.Edges))
	for _, e := range c.Edges {
		edges = append(edges, flow.EdgeSpec{Source: e.From, Target: e.To, Label: e.Label})
	}
	return nodes, edges
}

// Flow builds a TaskFlow from the chart.
func (c *Chart) Flow() (*flow.TaskFlow, error) {
	nodes, edges := c.Spec()
	return flow.New(c.Title, nodes, edges)
}
