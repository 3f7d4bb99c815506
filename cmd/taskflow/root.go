package main

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/martinemde/taskflow/internal/ctxlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errInvalidFlow is returned when a flow was read but failed validation.
var errInvalidFlow = errors.New("flow is not valid")

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "Task flow validator and diagram builder",
		Long:          "Taskflow checks task-flow graphs for structural problems and renders valid ones as Mermaid flowcharts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := ctxlog.New(v.GetString("log_level"), v.GetString("log_format"), cmd.ErrOrStderr()).
				With("run_id", uuid.NewString(), "command", cmd.Name())
			cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
			return nil
		},
	}

	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	root.PersistentFlags().StringP("format", "f", "", "Spec format (json, yaml, hcl); detected from the extension if empty")
	root.PersistentFlags().StringToString("var", nil, "HCL variable as name=value (repeatable)")

	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log_format", root.PersistentFlags().Lookup("log-format"))
	_ = v.BindPFlag("format", root.PersistentFlags().Lookup("format"))
	_ = v.BindPFlag("var", root.PersistentFlags().Lookup("var"))

	v.SetEnvPrefix("TASKFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root.AddCommand(
		newValidateCmd(v),
		newBuildCmd(v),
		newLintCmd(v),
		newURLCmd(v),
	)
	return root
}
