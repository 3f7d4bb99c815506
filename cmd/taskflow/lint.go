package main

import (
	"fmt"
	"os"

	"github.com/martinemde/taskflow/flow"
	"github.com/martinemde/taskflow/internal/ctxlog"
	"github.com/martinemde/taskflow/mermaid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newLintCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint <diagram.mmd>",
		Short: "Check an existing Mermaid flowchart against the structural rules",
		Long: "Read a Mermaid flowchart, map its node shapes back to task-flow node types and validate the result. " +
			"With --canonical, a valid chart is printed in canonical form.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading diagram: %w", err)
			}
			chart, err := mermaid.Parse(src)
			if err != nil {
				return fmt.Errorf("parsing diagram: %w", err)
			}
			ctxlog.FromContext(ctx).Debug("Diagram parsed.", "nodes", len(chart.Nodes), "edges", len(chart.Edges), "direction", chart.Direction)

			f, err := chart.Flow()
			if err != nil {
				return fmt.Errorf("constructing flow: %w", err)
			}
			res := flow.Validate(f)

			canonical, _ := cmd.Flags().GetBool("canonical")
			if !canonical || !res.OK {
				printResult(cmd.OutOrStdout(), f.Title(), f, res.Violations, res.Warnings)
			}
			if !res.OK {
				return invalid(res.Violations)
			}
			if canonical {
				cert, err := res.Validated()
				if err != nil {
					return err
				}
				_, err = mermaid.WriteTo(cmd.OutOrStdout(), cert)
				return err
			}
			return nil
		},
	}
	cmd.Flags().Bool("canonical", false, "Print the chart in canonical form when it is valid")
	return cmd
}
