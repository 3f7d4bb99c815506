package flow

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a violation.
type Severity int

const (
	// Error means the flow is not structurally valid.
	Error Severity = iota
	// Warning means the flow is valid but likely not what the author meant.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(strings.ToLower(s.String())), nil }

// RuleCode identifies a structural rule.
type RuleCode int

const (
	MissingStart RuleCode = iota + 1
	MultipleStart
	InvalidStartDegree
	InvalidProcessDegree
	InvalidDecisionDegree
	InvalidEndDegree
	MissingEnd
	SelfLoop
	UnreachableNode
	NoTerminatingPath
	UnlabeledBranch
	DuplicateBranch
)

func (c RuleCode) String() string {
	switch c {
	case MissingStart:
		return "missing_start"
	case MultipleStart:
		return "multiple_start"
	case InvalidStartDegree:
		return "invalid_start_degree"
	case InvalidProcessDegree:
		return "invalid_process_degree"
	case InvalidDecisionDegree:
		return "invalid_decision_degree"
	case InvalidEndDegree:
		return "invalid_end_degree"
	case MissingEnd:
		return "missing_end"
	case SelfLoop:
		return "self_loop"
	case UnreachableNode:
		return "unreachable_node"
	case NoTerminatingPath:
		return "no_terminating_path"
	case UnlabeledBranch:
		return "unlabeled_branch"
	case DuplicateBranch:
		return "duplicate_branch"
	default:
		return fmt.Sprintf("RuleCode(%d)", int(c))
	}
}

func (c RuleCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Violation is a single failed rule, carrying enough identity to target a repair.
type Violation struct {
	Code     RuleCode `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	NodeID   string   `json:"node_id,omitempty"`
	Edge     *EdgeRef `json:"edge,omitempty"`
	Fix      string   `json:"fix,omitempty"`
}

func (v Violation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", v.Severity, v.Code, v.Message)
	if v.NodeID != "" {
		fmt.Fprintf(&b, " (node: %s)", v.NodeID)
	}
	if v.Edge != nil {
		fmt.Fprintf(&b, " (edge: %s)", v.Edge)
	}
	if v.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", v.Fix)
	}
	return b.String()
}

// Rule is a single structural check. Apply must be pure and report
// violations in node or edge insertion order.
type Rule interface {
	Name() string
	Apply(f *TaskFlow) []Violation
}

// Result is the verdict of Validate.
type Result struct {
	OK         bool        `json:"ok"`
	Violations []Violation `json:"violations"`
	Warnings   []Violation `json:"warnings,omitempty"`

	flow *TaskFlow
	ok   bool // verdict as computed by Validate
}

// Validated is a flow that passed every error-severity rule.
type Validated struct {
	flow *TaskFlow
}

// Flow returns the certified flow, or nil for a zero Validated.
func (v *Validated) Flow() *TaskFlow {
	if v == nil {
		return nil
	}
	return v.flow
}

// Validated returns the certificate for an OK result. It fails with an
// *IllegalStateError when the result carries violations.
func (r Result) Validated() (*Validated, error) {
	if r.flow == nil {
		return nil, &IllegalStateError{Op: "validated", Msg: "result was not produced by Validate"}
	}
	if !r.ok {
		return nil, &IllegalStateError{
			Op:  "validated",
			Msg: fmt.Sprintf("flow has %d violation(s)", len(r.Violations)),
		}
	}
	return &Validated{flow: r.flow}, nil
}

// Validate runs all built-in rules, then any extra rules, against the flow.
// Every rule runs; violations are sorted into errors and warnings by severity
// while keeping rule order.
//
// A nil flow yields a result that is not OK and cannot be certified.
func Validate(f *TaskFlow, extraRules ...Rule) Result {
	if f == nil {
		return Result{Violations: []Violation{}}
	}
	rules := builtInRules()
	rules = append(rules, extraRules...)

	res := Result{Violations: []Violation{}, flow: f}
	for _, rule := range rules {
		for _, v := range rule.Apply(f) {
			if v.Severity == Error {
				res.Violations = append(res.Violations, v)
			} else {
				res.Warnings = append(res.Warnings, v)
			}
		}
	}
	res.ok = len(res.Violations) == 0
	res.OK = res.ok
	return res
}

// ValidateOrError runs Validate and returns a *ValidationError when the flow
// has violations. The full result is returned either way.
func ValidateOrError(f *TaskFlow, extraRules ...Rule) (Result, error) {
	if f == nil {
		return Validate(nil), &IllegalStateError{Op: "validate", Msg: "flow is nil"}
	}
	res := Validate(f, extraRules...)
	if !res.OK {
		return res, &ValidationError{Violations: res.Violations}
	}
	return res, nil
}

// builtInRules returns the structural rules in their fixed evaluation order.
func builtInRules() []Rule {
	return []Rule{
		startCountRule{},
		startDegreeRule{},
		processDegreeRule{},
		decisionDegreeRule{},
		endDegreeRule{},
		selfLoopRule{},
		reachabilityRule{},
		terminationRule{},
		branchLabelRule{},
		duplicateBranchRule{},
	}
}
