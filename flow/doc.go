// Package flow implements the task-flow graph model and its structural validator.
//
// A TaskFlow is a directed graph of typed nodes (start, process, decision, end)
// joined by optionally labeled edges. Construction enforces only referential
// and syntactic constraints: unique ids, non-empty labels, known node types,
// and edges that reference declared nodes. Everything else is the validator's
// job.
//
// Validation runs a fixed, ordered list of rules over the flow and collects
// every violation in one pass:
//
//	f, err := flow.New("Login", nodes, edges)
//	if err != nil {
//	    return err // *MalformedGraphError
//	}
//	res := flow.Validate(f)
//	for _, v := range res.Violations {
//	    fmt.Println(v)
//	}
//
// A flow that passes yields a *Validated certificate, which is the only input
// the diagram serializer accepts.
package flow
