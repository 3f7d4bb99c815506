package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/martinemde/taskflow"
	"github.com/martinemde/taskflow/export"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newURLCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url <spec|diagram.mmd>",
		Short: "Print a mermaid.ink link that renders the diagram",
		Long:  "Print a mermaid.ink renderer link for a .mmd file as-is, or for the diagram built from a flow spec. No request is made.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")

			var text string
			switch strings.ToLower(filepath.Ext(args[0])) {
			case export.Ext, ".mermaid":
				src, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("reading diagram: %w", err)
				}
				text = string(src)
			default:
				spec, err := loadSpec(cmd.Context(), v, args[0])
				if err != nil {
					return err
				}
				report, err := taskflow.BuildSpec(spec)
				if err != nil {
					return fmt.Errorf("building flow: %w", err)
				}
				if !report.OK {
					for _, viol := range report.Violations {
						fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", viol)
					}
					return invalid(report.Violations)
				}
				text = report.Diagram
			}

			link, err := export.InkURL(text, export.Kind(kind))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().String("kind", string(export.KindImage), "Renderer output (img, svg)")
	return cmd
}
