package mermaid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/martinemde/taskflow/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Chart {
	t.Helper()
	c, err := Parse([]byte(src))
	require.NoError(t, err)
	return c
}

func TestParseSerializedOutput(t *testing.T) {
	c := mustParse(t, `---
title: Checkout
---
flowchart TD
    s(["Start"])
    d{"Paid?"}
    e(("Done"))
    s --> d
    d -->|"yes"| e
    d -->|"no"| s
`)
	assert.Equal(t, "Checkout", c.Title)
	assert.Equal(t, "TD", c.Direction)
	require.Len(t, c.Nodes, 3)
	assert.Equal(t, ShapeStadium, c.Nodes[0].Shape)
	assert.Equal(t, ShapeRhombus, c.Nodes[1].Shape)
	assert.Equal(t, ShapeCircle, c.Nodes[2].Shape)
	assert.Equal(t, "Paid?", c.NodeByID("d").Label)

	require.Len(t, c.Edges, 3)
	assert.Equal(t, "yes", c.Edges[1].Label)
	assert.Equal(t, 9, c.Edges[1].Pos.Line)
	assert.Empty(t, c.Edges[0].Label)
}

func TestParseHandWritten(t *testing.T) {
	c := mustParse(t, `%% a comment
graph LR
  A[Open app] --> B{Logged in?}
  B -->|yes| C(Home) --> D((Exit))
  B -->|no| E([Login]);  E-->C
  style A fill:#f9f
  classDef hot fill:#f00
  user-profile --> D
`)
	assert.Equal(t, "LR", c.Direction)
	assert.Empty(t, c.Title)

	ids := make([]string, 0, len(c.Nodes))
	for _, n := range c.Nodes {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "user-profile"}, ids)
	assert.Equal(t, "Open app", c.NodeByID("A").Label)
	assert.Equal(t, ShapeRound, c.NodeByID("C").Shape)
	assert.Equal(t, ShapeNone, c.NodeByID("user-profile").Shape)
	assert.Equal(t, "user-profile", c.NodeByID("user-profile").Label)

	type link struct{ From, To, Label string }
	var got []link
	for _, e := range c.Edges {
		got = append(got, link{e.From, e.To, e.Label})
	}
	want := []link{
		{"A", "B", ""},
		{"B", "C", "yes"},
		{"C", "D", ""},
		{"B", "E", "no"},
		{"E", "C", ""},
		{"user-profile", "D", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDefaultsDirection(t *testing.T) {
	c := mustParse(t, "graph\nA --> B\n")
	assert.Equal(t, "TB", c.Direction)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"missing header", "A --> B\n", "expected 'flowchart' or 'graph'"},
		{"unterminated label", "flowchart TD\n  A[oops\n", "unterminated label"},
		{"unterminated quote", "flowchart TD\n  A[\"oops]\n", "unterminated label"},
		{"dotted link", "flowchart TD\n  A -.-> B\n", "unsupported link"},
		{"subgraph", "flowchart TD\n  subgraph one\n", "subgraph statements are not supported"},
		{"trailing garbage", "flowchart TD\n  A --> B C\n", "expected newline or ';'"},
		{"unterminated frontmatter", "---\ntitle: x\nflowchart TD\n", "unterminated frontmatter"},
		{"bad character", "flowchart TD\n  A --> B & C\n", "unexpected character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse([]byte("flowchart TD\n  A[ok] --> B[bad\n"))
	var le *LexError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Pos.Line)
	assert.Equal(t, 15, le.Pos.Column)
}

func TestRoundTripLabels(t *testing.T) {
	nodes := []flow.NodeSpec{
		{ID: "s", Type: "start", Label: `Open "Settings" page`},
		{ID: "p", Type: "process", Label: "Edit [profile] | {prefs}"},
		{ID: "d", Type: "decision", Label: "Save?\n(confirm)"},
		{ID: "e1", Type: "end", Label: "Saved #1 <ok>"},
		{ID: "e2", Type: "end", Label: "Discarded"},
	}
	edges := []flow.EdgeSpec{
		{Source: "s", Target: "p"},
		{Source: "p", Target: "d"},
		{Source: "d", Target: "e1", Label: `"yes" | sure`},
		{Source: "d", Target: "e2", Label: "no (cancel)"},
	}
	v := mustValidated(t, "Settings: edit & save", nodes, edges)
	text, err := Serialize(v)
	require.NoError(t, err)

	c := mustParse(t, text)
	assert.Equal(t, "Settings: edit & save", c.Title)

	gotNodes, gotEdges := c.Spec()
	if diff := cmp.Diff(nodes, gotNodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(edges, gotEdges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	// The reconstructed flow serializes to the same text.
	back, err := c.Flow()
	require.NoError(t, err)
	again, err := flow.Validate(back).Validated()
	require.NoError(t, err)
	text2, err := Serialize(again)
	require.NoError(t, err)
	assert.Equal(t, text, text2)
}

func TestRoundTripMultilineTitle(t *testing.T) {
	title := "Part one\n---\nPart two"
	v := mustValidated(t, title, []flow.NodeSpec{
		{ID: "s", Type: "start", Label: "Start"},
		{ID: "e", Type: "end", Label: "Done"},
	}, []flow.EdgeSpec{{Source: "s", Target: "e"}})
	text, err := Serialize(v)
	require.NoError(t, err)

	c := mustParse(t, text)
	assert.Equal(t, title, c.Title)
	assert.Len(t, c.Nodes, 2)
}

func TestParseFenceMustStartAtColumnOne(t *testing.T) {
	c := mustParse(t, "---\ntitle: A\n---  \nflowchart TD\n  a --> b\n")
	assert.Equal(t, "A", c.Title)

	_, err := Parse([]byte("---\ntitle: A\n  ---\nflowchart TD\n"))
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
}
