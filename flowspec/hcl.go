package flowspec

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/martinemde/taskflow/flow"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclRoot is the top-level schema of an HCL specification file.
type hclRoot struct {
	Title string     `hcl:"title,optional"`
	Nodes []*hclNode `hcl:"node,block"`
	Edges []*hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	ID    string `hcl:"id,label"`
	Type  string `hcl:"type"`
	Label string `hcl:"label"`
	Actor string `hcl:"actor,optional"`
}

type hclEdge struct {
	From  string `hcl:"from"`
	To    string `hcl:"to"`
	Label string `hcl:"label,optional"`
}

// hclFunctions are callable from label expressions.
var hclFunctions = map[string]function.Function{
	"upper":     stdlib.UpperFunc,
	"lower":     stdlib.LowerFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
}

// evalContext exposes vars as var.<name> string values.
func evalContext(vars map[string]string) *hcl.EvalContext {
	obj := cty.EmptyObjectVal
	if len(vars) > 0 {
		attrs := make(map[string]cty.Value, len(vars))
		for k, v := range vars {
			attrs[k] = cty.StringVal(v)
		}
		obj = cty.ObjectVal(attrs)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": obj},
		Functions: hclFunctions,
	}
}

// DecodeHCL decodes an HCL specification. filename is used in diagnostics.
// String attributes may reference var.<name> from vars and call upper, lower,
// trimspace, format and join.
func DecodeHCL(src []byte, filename string, vars map[string]string) (Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Spec{}, &DecodeError{Format: FormatHCL, Err: diags}
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(vars), &root); diags.HasErrors() {
		return Spec{}, &DecodeError{Format: FormatHCL, Err: diags}
	}

	s := Spec{
		Title: root.Title,
		Nodes: make([]flow.NodeSpec, 0, len(root.Nodes)),
		Edges: make([]flow.EdgeSpec, 0, len(root.Edges)),
	}
	for _, n := range root.Nodes {
		s.Nodes = append(s.Nodes, flow.NodeSpec{ID: n.ID, Type: n.Type, Label: n.Label, Actor: n.Actor})
	}
	for _, e := range root.Edges {
		s.Edges = append(s.Edges, flow.EdgeSpec{Source: e.From, Target: e.To, Label: e.Label})
	}
	return s, nil
}
