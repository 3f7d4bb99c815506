package flow

import (
	"fmt"
	"strings"
)

// uniqueStart returns the id of the only start node, if there is exactly one.
func uniqueStart(f *TaskFlow) (string, bool) {
	starts := f.NodesOfType(Start)
	if len(starts) != 1 {
		return "", false
	}
	return starts[0].ID, true
}

// start_count: exactly one start node.
type startCountRule struct{}

func (startCountRule) Name() string { return "start_count" }

func (startCountRule) Apply(f *TaskFlow) []Violation {
	starts := f.NodesOfType(Start)
	switch len(starts) {
	case 0:
		return []Violation{{
			Code:     MissingStart,
			Severity: Error,
			Message:  "flow must have exactly one start node, found none",
			Fix:      "add a node with type start",
		}}
	case 1:
		return nil
	}
	var out []Violation
	for _, n := range starts[1:] {
		out = append(out, Violation{
			Code:     MultipleStart,
			Severity: Error,
			Message:  fmt.Sprintf("extra start node %q; %q is already the start", n.ID, starts[0].ID),
			NodeID:   n.ID,
			Fix:      "keep a single start node and change the others to process nodes",
		})
	}
	return out
}

// start_degree: the start node has one outgoing and no incoming edges.
type startDegreeRule struct{}

func (startDegreeRule) Name() string { return "start_degree" }

func (startDegreeRule) Apply(f *TaskFlow) []Violation {
	var out []Violation
	for _, n := range f.NodesOfType(Start) {
		in, outDeg := f.InDegree(n.ID), f.OutDegree(n.ID)
		if in == 0 && outDeg == 1 {
			continue
		}
		out = append(out, Violation{
			Code:     InvalidStartDegree,
			Severity: Error,
			Message:  fmt.Sprintf("start node %q must have in-degree 0 and out-degree 1, has %d and %d", n.ID, in, outDeg),
			NodeID:   n.ID,
			Fix:      "give the start node exactly one outgoing edge and no incoming edges",
		})
	}
	return out
}

// process_degree: every process node is entered and left.
type processDegreeRule struct{}

func (processDegreeRule) Name() string { return "process_degree" }

func (processDegreeRule) Apply(f *TaskFlow) []Violation {
	var out []Violation
	for _, n := range f.NodesOfType(Process) {
		in, outDeg := f.InDegree(n.ID), f.OutDegree(n.ID)
		if in >= 1 && outDeg >= 1 {
			continue
		}
		out = append(out, Violation{
			Code:     InvalidProcessDegree,
			Severity: Error,
			Message:  fmt.Sprintf("process node %q needs at least one incoming and one outgoing edge, has %d in and %d out", n.ID, in, outDeg),
			NodeID:   n.ID,
			Fix:      "connect the node to a predecessor and a successor",
		})
	}
	return out
}

// decision_degree: every decision node is entered and branches at least twice.
type decisionDegreeRule struct{}

func (decisionDegreeRule) Name() string { return "decision_degree" }

func (decisionDegreeRule) Apply(f *TaskFlow) []Violation {
	var out []Violation
	for _, n := range f.NodesOfType(Decision) {
		in, outDeg := f.InDegree(n.ID), f.OutDegree(n.ID)
		if in >= 1 && outDeg >= 2 {
			continue
		}
		out = append(out, Violation{
			Code:     InvalidDecisionDegree,
			Severity: Error,
			Message:  fmt.Sprintf("decision node %q needs at least one incoming and two outgoing edges, has %d in and %d out", n.ID, in, outDeg),
			NodeID:   n.ID,
			Fix:      "add an incoming edge and at least two labeled branches",
		})
	}
	return out
}

// end_degree: every end node is entered and never left; at least one exists.
type endDegreeRule struct{}

func (endDegreeRule) Name() string { return "end_degree" }

func (endDegreeRule) Apply(f *TaskFlow) []Violation {
	ends := f.NodesOfType(End)
	var out []Violation
	for _, n := range ends {
		in, outDeg := f.InDegree(n.ID), f.OutDegree(n.ID)
		if in >= 1 && outDeg == 0 {
			continue
		}
		out = append(out, Violation{
			Code:     InvalidEndDegree,
			Severity: Error,
			Message:  fmt.Sprintf("end node %q must have at least one incoming and no outgoing edges, has %d in and %d out", n.ID, in, outDeg),
			NodeID:   n.ID,
			Fix:      "remove edges leaving the end node and make sure something leads to it",
		})
	}
	if len(ends) == 0 {
		out = append(out, Violation{
			Code:     MissingEnd,
			Severity: Error,
			Message:  "flow must have at least one end node, found none",
			Fix:      "add a node with type end",
		})
	}
	return out
}

// self_loop: no edge points back at its own source.
type selfLoopRule struct{}

func (selfLoopRule) Name() string { return "self_loop" }

func (selfLoopRule) Apply(f *TaskFlow) []Violation {
	var out []Violation
	for _, e := range f.edges {
		if e.Source != e.Target {
			continue
		}
		ref := e.Ref()
		out = append(out, Violation{
			Code:     SelfLoop,
			Severity: Error,
			Message:  fmt.Sprintf("edge %s loops back to its own source", ref),
			NodeID:   e.Source,
			Edge:     &ref,
			Fix:      "route the loop through another node or remove it",
		})
	}
	return out
}

// reachability: every node is reachable from the start node.
type reachabilityRule struct{}

func (reachabilityRule) Name() string { return "reachability" }

func (reachabilityRule) Apply(f *TaskFlow) []Violation {
	startID, ok := uniqueStart(f)
	if !ok {
		// start_count reports this; reachability is undefined.
		return nil
	}
	visited := f.ReachableFrom(startID)

	var out []Violation
	for _, n := range f.nodes {
		if visited[n.ID] {
			continue
		}
		out = append(out, Violation{
			Code:     UnreachableNode,
			Severity: Error,
			Message:  fmt.Sprintf("node %q is not reachable from start node %q", n.ID, startID),
			NodeID:   n.ID,
			Fix:      fmt.Sprintf("add an edge path from %q to %q or remove the node", startID, n.ID),
		})
	}
	return out
}

// termination: some end node is reachable from the start node.
type terminationRule struct{}

func (terminationRule) Name() string { return "termination" }

func (terminationRule) Apply(f *TaskFlow) []Violation {
	startID, ok := uniqueStart(f)
	if !ok {
		return nil
	}
	visited := f.ReachableFrom(startID)
	for _, n := range f.nodes {
		if n.Type == End && visited[n.ID] {
			return nil
		}
	}
	return []Violation{{
		Code:     NoTerminatingPath,
		Severity: Error,
		Message:  fmt.Sprintf("no end node is reachable from start node %q", startID),
		NodeID:   startID,
		Fix:      "connect the flow to an end node",
	}}
}

// branch_label: decision branches should say which way they go.
type branchLabelRule struct{}

func (branchLabelRule) Name() string { return "branch_label" }

func (branchLabelRule) Apply(f *TaskFlow) []Violation {
	var out []Violation
	for _, e := range f.edges {
		n, _ := f.NodeByID(e.Source)
		if n.Type != Decision || strings.TrimSpace(e.Label) != "" {
			continue
		}
		ref := e.Ref()
		out = append(out, Violation{
			Code:     UnlabeledBranch,
			Severity: Warning,
			Message:  fmt.Sprintf("decision branch %s has no condition label", ref),
			NodeID:   e.Source,
			Edge:     &ref,
			Fix:      "label the edge with the condition that selects it",
		})
	}
	return out
}

// duplicate_branch: a decision node should not branch to the same target twice.
type duplicateBranchRule struct{}

func (duplicateBranchRule) Name() string { return "duplicate_branch" }

func (duplicateBranchRule) Apply(f *TaskFlow) []Violation {
	seen := make(map[EdgeRef]bool)
	var out []Violation
	for _, e := range f.edges {
		n, _ := f.NodeByID(e.Source)
		if n.Type != Decision {
			continue
		}
		ref := e.Ref()
		if !seen[ref] {
			seen[ref] = true
			continue
		}
		out = append(out, Violation{
			Code:     DuplicateBranch,
			Severity: Warning,
			Message:  fmt.Sprintf("decision node %q branches to %q more than once", e.Source, e.Target),
			NodeID:   e.Source,
			Edge:     &ref,
			Fix:      "merge the branches into one edge with a combined label",
		})
	}
	return out
}
