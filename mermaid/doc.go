// Package mermaid writes certified task flows as Mermaid flowchart text and
// reads that text back.
//
// Serialize is deterministic: nodes are emitted in insertion order with a
// shape chosen by node type, edges follow in insertion order, and labels are
// quoted and entity-escaped so the flowchart parser reproduces them exactly.
//
//	v, err := flow.Validate(f).Validated()
//	if err != nil {
//	    return err
//	}
//	text, err := mermaid.Serialize(v)
//
// Parse accepts the subset of the flowchart grammar that Serialize emits, plus
// the common hand-written variants (bare labels, chained edges, style lines),
// and is used to lint existing diagrams and to check label round-tripping.
package mermaid
