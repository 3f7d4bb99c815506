// Package flowspec decodes task-flow graph specifications from JSON, YAML and
// HCL into the raw node and edge lists accepted by flow.New.
//
// All three formats describe the same thing: a title, a list of nodes with
// id, type, label and optional actor, and a list of edges. JSON and YAML
// edges accept either source/target/label or the from/to/condition keys
// emitted by generators. HCL files use node and edge blocks:
//
//	title = "Login"
//
//	node "s" {
//	  type  = "start"
//	  label = "Open ${var.product}"
//	}
//
//	edge {
//	  from = "s"
//	  to   = "p1"
//	}
package flowspec
