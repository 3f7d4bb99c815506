package flow

import "fmt"

// NodeType is the closed set of node kinds in a task flow.
type NodeType uint8

const (
	Start NodeType = iota + 1
	Process
	Decision
	End
)

// NodeTypes lists every node type in declaration order.
var NodeTypes = []NodeType{Start, Process, Decision, End}

func (t NodeType) String() string {
	switch t {
	case Start:
		return "start"
	case Process:
		return "process"
	case Decision:
		return "decision"
	case End:
		return "end"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// ParseNodeType converts the textual form of a node type.
func ParseNodeType(s string) (NodeType, error) {
	for _, t := range NodeTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", s)
}

func (t NodeType) MarshalText() ([]byte, error) {
	switch t {
	case Start, Process, Decision, End:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("invalid node type %d", uint8(t))
	}
}

func (t *NodeType) UnmarshalText(b []byte) error {
	parsed, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Actor names who performs the step at a node.
type Actor uint8

const (
	ActorUnspecified Actor = iota
	ActorUser
	ActorSystem
)

func (a Actor) String() string {
	switch a {
	case ActorUnspecified:
		return ""
	case ActorUser:
		return "user"
	case ActorSystem:
		return "system"
	default:
		return fmt.Sprintf("Actor(%d)", uint8(a))
	}
}

// ParseActor accepts "", "user" or "system", lower or title case.
func ParseActor(s string) (Actor, error) {
	switch s {
	case "":
		return ActorUnspecified, nil
	case "user", "User":
		return ActorUser, nil
	case "system", "System":
		return ActorSystem, nil
	default:
		return 0, fmt.Errorf("unknown actor %q", s)
	}
}

func (a Actor) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Actor) UnmarshalText(b []byte) error {
	parsed, err := ParseActor(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Node is a single step in a flow.
type Node struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
	Actor Actor    `json:"actor,omitempty"`
}

// Edge is a directed connection between two nodes. Label is optional.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Ref returns the edge's endpoints.
func (e Edge) Ref() EdgeRef { return EdgeRef{From: e.Source, To: e.Target} }

// EdgeRef identifies an edge by its endpoints.
type EdgeRef struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r EdgeRef) String() string { return r.From + " -> " + r.To }

// TaskFlow is an immutable, ordered task-flow graph. Build one with New.
type TaskFlow struct {
	title string
	nodes []Node
	edges []Edge
}

// Title returns the flow's display title, which may be empty.
func (f *TaskFlow) Title() string { return f.title }

// Nodes returns the nodes in insertion order. The slice is a copy.
func (f *TaskFlow) Nodes() []Node {
	out := make([]Node, len(f.nodes))
	copy(out, f.nodes)
	return out
}

// Edges returns the edges in insertion order. The slice is a copy.
func (f *TaskFlow) Edges() []Edge {
	out := make([]Edge, len(f.edges))
	copy(out, f.edges)
	return out
}

// Actors returns each actor assigned to a node, in order of first
// appearance. Unspecified actors are not listed.
func (f *TaskFlow) Actors() []Actor {
	var out []Actor
	seen := make(map[Actor]bool)
	for _, n := range f.nodes {
		if n.Actor == ActorUnspecified || seen[n.Actor] {
			continue
		}
		seen[n.Actor] = true
		out = append(out, n.Actor)
	}
	return out
}

// NodeByID returns the node with the given id.
func (f *TaskFlow) NodeByID(id string) (Node, bool) {
	for _, n := range f.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodesOfType returns the nodes of type t in insertion order.
func (f *TaskFlow) NodesOfType(t NodeType) []Node {
	var out []Node
	for _, n := range f.nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// EdgesFrom returns all edges originating from the given node id.
func (f *TaskFlow) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range f.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTo returns all edges targeting the given node id.
func (f *TaskFlow) EdgesTo(id string) []Edge {
	var out []Edge
	for _, e := range f.edges {
		if e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// InDegree counts edges whose target is id.
func (f *TaskFlow) InDegree(id string) int {
	n := 0
	for _, e := range f.edges {
		if e.Target == id {
			n++
		}
	}
	return n
}

// OutDegree counts edges whose source is id.
func (f *TaskFlow) OutDegree(id string) int {
	n := 0
	for _, e := range f.edges {
		if e.Source == id {
			n++
		}
	}
	return n
}

// Successors builds the adjacency map from node id to target ids, in edge
// insertion order. It is recomputed on every call.
func (f *TaskFlow) Successors() map[string][]string {
	adj := make(map[string][]string, len(f.nodes))
	for _, e := range f.edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

// ReachableFrom returns the set of node ids reachable from id by following
// edges forward, including id itself.
func (f *TaskFlow) ReachableFrom(id string) map[string]bool {
	adj := f.Successors()
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}
