package taskflow

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/martinemde/taskflow/flow"
	"github.com/martinemde/taskflow/flowspec"
	"github.com/martinemde/taskflow/mermaid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutSpec() flowspec.Spec {
	return flowspec.Spec{
		Title: "Checkout",
		Nodes: []flow.NodeSpec{
			{ID: "s", Type: "start", Label: "Open cart", Actor: "user"},
			{ID: "pay", Type: "process", Label: "Enter payment", Actor: "user"},
			{ID: "d", Type: "decision", Label: "Card accepted?", Actor: "system"},
			{ID: "done", Type: "end", Label: "Receipt"},
		},
		Edges: []flow.EdgeSpec{
			{Source: "s", Target: "pay"},
			{Source: "pay", Target: "d"},
			{Source: "d", Target: "done", Label: "yes"},
			{Source: "d", Target: "pay", Label: "no"},
		},
	}
}

func TestBuildSpecValid(t *testing.T) {
	report, err := BuildSpec(checkoutSpec())
	require.NoError(t, err)

	assert.True(t, report.OK)
	assert.Empty(t, report.Violations)
	assert.Equal(t, "Checkout", report.Title)

	want := `---
title: Checkout
---
flowchart TD
    s(["Open cart"])
    pay["Enter payment"]
    d{"Card accepted?"}
    done(("Receipt"))
    s --> pay
    pay --> d
    d -->|"yes"| done
    d -->|"no"| pay
`
	assert.Equal(t, want, report.Diagram)

	chart, err := mermaid.Parse([]byte(report.Diagram))
	require.NoError(t, err)
	assert.Equal(t, "Checkout", chart.Title)
	assert.Len(t, chart.Nodes, 4)
}

func TestBuildWithViolationsHasNoDiagram(t *testing.T) {
	s := checkoutSpec()
	s.Edges = s.Edges[:3] // drop the retry branch: decision has one way out

	report, err := BuildSpec(s)
	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Empty(t, report.Diagram)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, flow.InvalidDecisionDegree, report.Violations[0].Code)
	assert.Equal(t, "d", report.Violations[0].NodeID)
}

func TestBuildSpecMalformed(t *testing.T) {
	s := checkoutSpec()
	s.Edges = append(s.Edges, flow.EdgeSpec{Source: "d", Target: "ghost"})

	_, err := BuildSpec(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, flow.ErrMalformedGraph))

	var mg *flow.MalformedGraphError
	require.ErrorAs(t, err, &mg)
	assert.Equal(t, flow.UnknownTarget, mg.Defect)
	assert.Equal(t, 4, mg.Index)
}

func TestBuildWarningsDoNotBlock(t *testing.T) {
	s := checkoutSpec()
	s.Edges[3].Label = ""

	report, err := BuildSpec(s)
	require.NoError(t, err)
	assert.True(t, report.OK)
	assert.NotEmpty(t, report.Diagram)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, flow.UnlabeledBranch, report.Warnings[0].Code)
}

type forbidLoops struct{}

func (forbidLoops) Name() string { return "forbid_loops" }

func (forbidLoops) Apply(f *flow.TaskFlow) []flow.Violation {
	var out []flow.Violation
	for _, e := range f.Edges() {
		if e.Source == "d" && e.Target == "pay" {
			ref := e.Ref()
			out = append(out, flow.Violation{Code: flow.SelfLoop, Severity: flow.Error, Message: "retry loop", Edge: &ref})
		}
	}
	return out
}

func TestBuildExtraRules(t *testing.T) {
	report, err := BuildSpec(checkoutSpec(), forbidLoops{})
	require.NoError(t, err)
	assert.False(t, report.OK)
	assert.Empty(t, report.Diagram)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "retry loop", report.Violations[0].Message)
}

func TestReportJSON(t *testing.T) {
	s := checkoutSpec()
	s.Nodes = s.Nodes[1:] // no start node
	s.Edges = s.Edges[1:]

	report, err := BuildSpec(s)
	require.NoError(t, err)

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["ok"])
	assert.NotContains(t, decoded, "diagram")

	violations := decoded["violations"].([]any)
	require.NotEmpty(t, violations)
	first := violations[0].(map[string]any)
	assert.Equal(t, "missing_start", first["code"])
	assert.Equal(t, "error", first["severity"])
}

func TestBuildNilFlow(t *testing.T) {
	_, err := Build(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, flow.ErrIllegalState))
}
