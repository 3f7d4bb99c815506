// Package taskflow turns a task-flow graph into a certified Mermaid
// flowchart in one call.
//
// The work is split across three packages: flow builds and validates the
// graph, mermaid serializes a validated flow, and flowspec decodes graph
// specifications from JSON, YAML or HCL. Build and BuildSpec chain them:
//
//	spec, err := flowspec.Load(ctx, "login.hcl", flowspec.Options{})
//	if err != nil {
//		return err
//	}
//	report, err := taskflow.BuildSpec(spec)
//	if err != nil {
//		return err // malformed input
//	}
//	if !report.OK {
//		for _, v := range report.Violations {
//			fmt.Println(v)
//		}
//	}
package taskflow
