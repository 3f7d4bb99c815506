package main

import (
	"fmt"
	"runtime"

	"github.com/martinemde/taskflow/flow"
	"github.com/martinemde/taskflow/internal/ctxlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// checked is the outcome of validating one spec file.
type checked struct {
	path string
	flow *flow.TaskFlow
	res  flow.Result
}

func newValidateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spec>...",
		Short: "Check flow specs against the structural rules",
		Long: "Load each flow spec (JSON, YAML or HCL), construct the flow and report every structural rule it breaks. " +
			"Files are checked concurrently and reported in argument order.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := ctxlog.FromContext(ctx)

			results := make([]checked, len(args))
			eg, egCtx := errgroup.WithContext(ctx)
			eg.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				eg.Go(func() error {
					spec, err := loadSpec(egCtx, v, path)
					if err != nil {
						return err
					}
					f, err := spec.Flow()
					if err != nil {
						return fmt.Errorf("%s: constructing flow: %w", path, err)
					}
					res := flow.Validate(f)
					logger.Info("Flow validated.", "path", path, "ok", res.OK, "violations", len(res.Violations), "warnings", len(res.Warnings))
					results[i] = checked{path: path, flow: f, res: res}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			var violations []flow.Violation
			for i, c := range results {
				if asJSON {
					if err := writeJSON(cmd.OutOrStdout(), c.res); err != nil {
						return err
					}
				} else {
					if len(results) > 1 {
						if i > 0 {
							fmt.Fprintln(cmd.OutOrStdout())
						}
						fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", c.path)
					}
					printResult(cmd.OutOrStdout(), c.flow.Title(), c.flow, c.res.Violations, c.res.Warnings)
				}
				violations = append(violations, c.res.Violations...)
			}
			if len(violations) > 0 {
				return invalid(violations)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print each result as a JSON document")
	return cmd
}
