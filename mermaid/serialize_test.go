package mermaid

import (
	"bytes"
	"errors"
	"testing"

	"github.com/martinemde/taskflow/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValidated(t *testing.T, title string, nodes []flow.NodeSpec, edges []flow.EdgeSpec) *flow.Validated {
	t.Helper()
	f, err := flow.New(title, nodes, edges)
	require.NoError(t, err)
	v, err := flow.Validate(f).Validated()
	require.NoError(t, err)
	return v
}

func linear(t *testing.T) *flow.Validated {
	t.Helper()
	return mustValidated(t, "", []flow.NodeSpec{
		{ID: "s", Type: "start", Label: "Start"},
		{ID: "p1", Type: "process", Label: "Fill form"},
		{ID: "e", Type: "end", Label: "Done"},
	}, []flow.EdgeSpec{
		{Source: "s", Target: "p1"},
		{Source: "p1", Target: "e"},
	})
}

func TestSerializeLinear(t *testing.T) {
	got, err := Serialize(linear(t))
	require.NoError(t, err)

	want := `flowchart TD
    s(["Start"])
    p1["Fill form"]
    e(("Done"))
    s --> p1
    p1 --> e
`
	assert.Equal(t, want, got)
}

func TestSerializeShapesAndEdgeLabels(t *testing.T) {
	v := mustValidated(t, "Login", []flow.NodeSpec{
		{ID: "start", Type: "start", Label: "Open login page"},
		{ID: "check", Type: "decision", Label: "Credentials valid?"},
		{ID: "ok", Type: "end", Label: "Dashboard"},
		{ID: "fail", Type: "end", Label: "Show error"},
	}, []flow.EdgeSpec{
		{Source: "start", Target: "check"},
		{Source: "check", Target: "ok", Label: "yes"},
		{Source: "check", Target: "fail", Label: "no"},
	})
	got, err := Serialize(v)
	require.NoError(t, err)

	want := `---
title: Login
---
flowchart TD
    start(["Open login page"])
    check{"Credentials valid?"}
    ok(("Dashboard"))
    fail(("Show error"))
    start --> check
    check -->|"yes"| ok
    check -->|"no"| fail
`
	assert.Equal(t, want, got)
}

func TestSerializeEscapesLabels(t *testing.T) {
	v := mustValidated(t, "", []flow.NodeSpec{
		{ID: "s", Type: "start", Label: `Say "hi" [now]`},
		{ID: "d", Type: "decision", Label: "a|b {c} (d)"},
		{ID: "e", Type: "end", Label: "line1\nline2 #1"},
		{ID: "f", Type: "end", Label: "x < y > z"},
	}, []flow.EdgeSpec{
		{Source: "s", Target: "d"},
		{Source: "d", Target: "e", Label: `"quoted" | piped`},
		{Source: "d", Target: "f", Label: "other"},
	})
	got, err := Serialize(v)
	require.NoError(t, err)

	assert.Contains(t, got, `s(["Say #quot;hi#quot; #91;now#93;"])`)
	assert.Contains(t, got, `d{"a#124;b #123;c#125; #40;d#41;"}`)
	assert.Contains(t, got, `e(("line1<br>line2 #35;1"))`)
	assert.Contains(t, got, `f(("x #lt; y #gt; z"))`)
	assert.Contains(t, got, `d -->|"#quot;quoted#quot; #124; piped"| e`)
}

func TestSerializeAliasesUnsafeIDs(t *testing.T) {
	v := mustValidated(t, "", []flow.NodeSpec{
		{ID: "begin here", Type: "start", Label: "Start"},
		{ID: "n2", Type: "process", Label: "Taken id"},
		{ID: "end", Type: "process", Label: "Keyword id"},
		{ID: "done", Type: "end", Label: "Done"},
	}, []flow.EdgeSpec{
		{Source: "begin here", Target: "n2"},
		{Source: "n2", Target: "end"},
		{Source: "end", Target: "done"},
	})

	assert.Equal(t, []string{"n1", "n2", "n3", "done"}, NodeIDs(v.Flow()))

	got, err := Serialize(v)
	require.NoError(t, err)
	assert.Contains(t, got, "    n1 --> n2\n")
	assert.Contains(t, got, "    n2 --> n3\n")
	assert.Contains(t, got, "    n3 --> done\n")
}

func TestNodeIDsAvoidCollisions(t *testing.T) {
	f, err := flow.New("", []flow.NodeSpec{
		{ID: "1st", Type: "start", Label: "Start"},
		{ID: "n1", Type: "end", Label: "Done"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1_", "n1"}, NodeIDs(f))
}

func TestSerializeIsIdempotent(t *testing.T) {
	v := linear(t)
	first, err := Serialize(v)
	require.NoError(t, err)
	for range 10 {
		again, err := Serialize(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSerializePreservesInsertionOrder(t *testing.T) {
	nodes := []flow.NodeSpec{
		{ID: "s", Type: "start", Label: "Start"},
		{ID: "a", Type: "process", Label: "A"},
		{ID: "b", Type: "process", Label: "B"},
		{ID: "e", Type: "end", Label: "Done"},
	}
	edges := []flow.EdgeSpec{
		{Source: "s", Target: "a"},
		{Source: "a", Target: "b"},
		{Source: "b", Target: "e"},
	}
	reordered := []flow.NodeSpec{nodes[0], nodes[2], nodes[1], nodes[3]}

	x, err := Serialize(mustValidated(t, "", nodes, edges))
	require.NoError(t, err)
	y, err := Serialize(mustValidated(t, "", nodes, edges))
	require.NoError(t, err)
	z, err := Serialize(mustValidated(t, "", reordered, edges))
	require.NoError(t, err)

	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)
	assert.Less(t, bytes.Index([]byte(z), []byte(`b["B"]`)), bytes.Index([]byte(z), []byte(`a["A"]`)))
}

func TestSerializeRequiresValidation(t *testing.T) {
	_, err := Serialize(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, flow.ErrIllegalState))

	_, err = Serialize(&flow.Validated{})
	assert.True(t, errors.Is(err, flow.ErrIllegalState))
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestWriteTo(t *testing.T) {
	v := linear(t)
	var buf bytes.Buffer
	n, err := WriteTo(&buf, v)
	require.NoError(t, err)

	text, err := Serialize(v)
	require.NoError(t, err)
	assert.Equal(t, text, buf.String())
	assert.Equal(t, int64(len(text)), n)

	_, err = WriteTo(&failWriter{n: 2}, v)
	assert.EqualError(t, err, "disk full")
}
