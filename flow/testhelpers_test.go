package flow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, nodes []NodeSpec, edges []EdgeSpec) *TaskFlow {
	t.Helper()
	f, err := New("", nodes, edges)
	require.NoError(t, err)
	return f
}

// linearFlow is the minimal valid flow: start -> process -> end.
func linearFlow(t *testing.T) *TaskFlow {
	t.Helper()
	return mustNew(t, []NodeSpec{
		{ID: "s", Type: "start", Label: "Start"},
		{ID: "p1", Type: "process", Label: "Fill form"},
		{ID: "e", Type: "end", Label: "Done"},
	}, []EdgeSpec{
		{Source: "s", Target: "p1"},
		{Source: "p1", Target: "e"},
	})
}

// branchingFlow has a decision with two labeled branches that rejoin at the end.
func branchingFlow(t *testing.T) *TaskFlow {
	t.Helper()
	return mustNew(t, []NodeSpec{
		{ID: "s", Type: "start", Label: "Open login page"},
		{ID: "form", Type: "process", Label: "Enter credentials"},
		{ID: "d", Type: "decision", Label: "Credentials valid?"},
		{ID: "ok", Type: "process", Label: "Show dashboard"},
		{ID: "retry", Type: "process", Label: "Show error"},
		{ID: "done", Type: "end", Label: "Done"},
	}, []EdgeSpec{
		{Source: "s", Target: "form"},
		{Source: "form", Target: "d"},
		{Source: "d", Target: "ok", Label: "yes"},
		{Source: "d", Target: "retry", Label: "no"},
		{Source: "ok", Target: "done"},
		{Source: "retry", Target: "done"},
	})
}

func violationsByCode(vs []Violation, code RuleCode) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.Code == code {
			out = append(out, v)
		}
	}
	return out
}

func hasCode(vs []Violation, code RuleCode) bool {
	return len(violationsByCode(vs, code)) > 0
}

func codes(vs []Violation) []RuleCode {
	out := make([]RuleCode, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Code)
	}
	return out
}
