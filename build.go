package taskflow

import (
	"github.com/martinemde/taskflow/flow"
	"github.com/martinemde/taskflow/flowspec"
	"github.com/martinemde/taskflow/mermaid"
)

// Report is the combined outcome of validating and serializing a flow.
type Report struct {
	Title      string           `json:"title,omitempty"`
	OK         bool             `json:"ok"`
	Violations []flow.Violation `json:"violations"`
	Warnings   []flow.Violation `json:"warnings,omitempty"`
	// Diagram is the flowchart text, set only when OK.
	Diagram string `json:"diagram,omitempty"`
}

// Build validates f and, when it passes, serializes it. A flow with
// violations is reported, not returned as an error. A nil flow fails with a
// *flow.IllegalStateError.
func Build(f *flow.TaskFlow, extraRules ...flow.Rule) (Report, error) {
	if f == nil {
		return Report{}, &flow.IllegalStateError{Op: "build", Msg: "flow is nil"}
	}
	res := flow.Validate(f, extraRules...)
	report := Report{
		Title:      f.Title(),
		OK:         res.OK,
		Violations: res.Violations,
		Warnings:   res.Warnings,
	}
	if !res.OK {
		return report, nil
	}

	v, err := res.Validated()
	if err != nil {
		return report, err
	}
	diagram, err := mermaid.Serialize(v)
	if err != nil {
		return report, err
	}
	report.Diagram = diagram
	return report, nil
}

// BuildSpec constructs the flow described by s and builds it. Construction
// failures are returned unchanged and wrap flow.ErrMalformedGraph.
func BuildSpec(s flowspec.Spec, extraRules ...flow.Rule) (Report, error) {
	f, err := s.Flow()
	if err != nil {
		return Report{}, err
	}
	return Build(f, extraRules...)
}
