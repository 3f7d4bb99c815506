package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/martinemde/taskflow"
	"github.com/martinemde/taskflow/export"
	"github.com/martinemde/taskflow/internal/ctxlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <spec>",
		Short: "Validate a flow spec and emit its Mermaid diagram",
		Long: "Validate a flow spec and, when it passes, print the Mermaid flowchart or write it to --out. " +
			"An --out directory receives a file named after the flow title. " +
			"With --watch the spec is rebuilt every time it changes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			asJSON, _ := cmd.Flags().GetBool("json")
			b := &builder{v: v, cmd: cmd, out: out, json: asJSON}

			watch, _ := cmd.Flags().GetBool("watch")
			if !watch {
				return b.build(cmd.Context(), args[0])
			}
			return watchSpec(cmd.Context(), args[0], func(ctx context.Context) {
				if err := b.build(ctx, args[0]); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "[build] %v\n", err)
				}
			})
		},
	}
	cmd.Flags().StringP("out", "o", "", "Write the diagram to this file or directory instead of stdout")
	cmd.Flags().Bool("json", false, "Print the full report as JSON")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild whenever the spec file changes")
	return cmd
}

// builder runs one build of a spec with the command's output settings.
type builder struct {
	v    *viper.Viper
	cmd  *cobra.Command
	out  string
	json bool
}

func (b *builder) build(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	stdout, stderr := b.cmd.OutOrStdout(), b.cmd.ErrOrStderr()

	spec, err := loadSpec(ctx, b.v, path)
	if err != nil {
		return err
	}
	report, err := taskflow.BuildSpec(spec)
	if err != nil {
		return fmt.Errorf("building flow: %w", err)
	}
	logger.Info("Flow built.", "ok", report.OK, "violations", len(report.Violations))

	if b.json {
		if err := writeJSON(stdout, report); err != nil {
			return err
		}
	}
	if !report.OK {
		if !b.json {
			for _, viol := range report.Violations {
				fmt.Fprintf(stderr, "  - %s\n", viol)
			}
		}
		return invalid(report.Violations)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(stderr, "  - %s\n", w)
	}

	if b.out == "" {
		if !b.json {
			fmt.Fprint(stdout, report.Diagram)
		}
		return nil
	}
	target := b.out
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, export.FileStem(report.Title))
	}
	written, err := export.WriteDiagram(target, report.Diagram)
	if err != nil {
		return err
	}
	logger.Info("Diagram written.", "path", written)
	fmt.Fprintf(stderr, "[build] Diagram saved to %s\n", written)
	return nil
}
