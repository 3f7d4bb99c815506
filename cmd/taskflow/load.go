package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/martinemde/taskflow/flow"
	"github.com/martinemde/taskflow/flowspec"
	"github.com/spf13/viper"
)

// loadSpec reads a spec file using the format and variables from config.
func loadSpec(ctx context.Context, v *viper.Viper, path string) (flowspec.Spec, error) {
	opts := flowspec.Options{Vars: v.GetStringMapString("var")}
	if name := v.GetString("format"); name != "" {
		format, err := flowspec.ParseFormat(name)
		if err != nil {
			return flowspec.Spec{}, err
		}
		opts.Format = format
	}
	spec, err := flowspec.Load(ctx, path, opts)
	if err != nil {
		return flowspec.Spec{}, fmt.Errorf("loading spec: %w", err)
	}
	return spec, nil
}

// printResult writes a human-readable verdict for a flow.
func printResult(w io.Writer, title string, f *flow.TaskFlow, violations, warnings []flow.Violation) {
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "Flow: %s (%d nodes, %d edges)\n", title, len(f.Nodes()), len(f.Edges()))
	if len(violations) == 0 {
		fmt.Fprintf(w, "Valid: yes\n")
	} else {
		fmt.Fprintf(w, "Valid: no (%d violation(s))\n", len(violations))
	}
	for _, v := range violations {
		fmt.Fprintf(w, "  - %s\n", v)
	}
	for _, v := range warnings {
		fmt.Fprintf(w, "  - %s\n", v)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func invalid(violations []flow.Violation) error {
	return fmt.Errorf("%w: %d violation(s)", errInvalidFlow, len(violations))
}
