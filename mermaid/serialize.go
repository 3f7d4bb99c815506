package mermaid

import (
	"fmt"
	"io"
	"strings"

	"github.com/martinemde/taskflow/flow"
	"gopkg.in/yaml.v3"
)

// Direction is the fixed layout declaration of every emitted chart.
const Direction = "TD"

const indent = "    "

// shapeFor maps each node type to its delimiters.
func shapeFor(t flow.NodeType) Shape {
	switch t {
	case flow.Start:
		return ShapeStadium
	case flow.Process:
		return ShapeRect
	case flow.Decision:
		return ShapeRhombus
	case flow.End:
		return ShapeCircle
	default:
		panic(fmt.Sprintf("mermaid: no shape for %s", t))
	}
}

// reservedIDs cannot be used as node ids without breaking the flowchart parser.
var reservedIDs = map[string]bool{
	"end":       true,
	"graph":     true,
	"flowchart": true,
	"subgraph":  true,
	"direction": true,
	"style":     true,
	"classdef":  true,
	"class":     true,
	"linkstyle": true,
	"click":     true,
	"call":      true,
	"href":      true,
	"default":   true,
}

// safeID reports whether id can be emitted verbatim.
func safeID(id string) bool {
	if id == "" || reservedIDs[strings.ToLower(id)] {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		if i == 0 && !isIdentStart(ch) {
			return false
		}
		if !isIdentPart(ch) {
			return false
		}
	}
	return true
}

// NodeIDs returns the diagram id for every node of f, in node order. Ids that
// are not safe flowchart identifiers are replaced by n<position>, with
// underscores appended until the alias collides with nothing else in the flow.
func NodeIDs(f *flow.TaskFlow) []string {
	nodes := f.Nodes()
	used := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if safeID(n.ID) {
			used[n.ID] = true
		}
	}
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		if safeID(n.ID) {
			ids[i] = n.ID
			continue
		}
		alias := fmt.Sprintf("n%d", i+1)
		for used[alias] {
			alias += "_"
		}
		used[alias] = true
		ids[i] = alias
	}
	return ids
}

// Serialize renders a validated flow as flowchart text. It fails with a
// *flow.IllegalStateError when v does not carry a flow; the flow is not
// validated again.
func Serialize(v *flow.Validated) (string, error) {
	var b strings.Builder
	if _, err := WriteTo(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteTo streams the same text as Serialize to w.
func WriteTo(w io.Writer, v *flow.Validated) (int64, error) {
	f := v.Flow()
	if f == nil {
		return 0, &flow.IllegalStateError{Op: "serialize", Msg: "flow has not passed validation"}
	}

	cw := &countingWriter{w: w}
	if title := f.Title(); title != "" {
		meta, err := yaml.Marshal(frontmatter{Title: title})
		if err != nil {
			return cw.n, fmt.Errorf("encoding title: %w", err)
		}
		cw.printf("---\n%s---\n", meta)
	}
	cw.printf("flowchart %s\n", Direction)

	nodes := f.Nodes()
	ids := NodeIDs(f)
	idOf := make(map[string]string, len(nodes))
	for i, n := range nodes {
		idOf[n.ID] = ids[i]
		shape := shapeFor(n.Type)
		cw.printf("%s%s%s\"%s\"%s\n", indent, ids[i], shape.Open(), Escape(n.Label), shape.Close())
	}

	for _, e := range f.Edges() {
		if e.Label == "" {
			cw.printf("%s%s --> %s\n", indent, idOf[e.Source], idOf[e.Target])
			continue
		}
		cw.printf("%s%s -->|\"%s\"| %s\n", indent, idOf[e.Source], Escape(e.Label), idOf[e.Target])
	}
	return cw.n, cw.err
}

type frontmatter struct {
	Title string `yaml:"title"`
}

// countingWriter keeps the first write error and the byte count.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	n, err := fmt.Fprintf(c.w, format, args...)
	c.n += int64(n)
	c.err = err
}
