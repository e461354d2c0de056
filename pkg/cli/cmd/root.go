package cmd

import (
	"fmt"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/cli/ui/errorhandler"
	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
	"github.com/saasfoundry/sf/pkg/di"
	"github.com/saasfoundry/sf/pkg/io/configmanager"
	"github.com/saasfoundry/sf/pkg/svc/pipeline"
	"github.com/saasfoundry/sf/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
// modules are registered on every invocation after the defaults, e.g. to replace the
// command runner in tests.
func NewRootCmd(version, commit, date string, modules ...di.Module) *cobra.Command {
	runtimeContainer := di.NewRuntime()
	manager := configmanager.NewManager()

	cmd := &cobra.Command{
		Use:          "sf",
		Short:        "SaaSFoundry scaffolds full-stack SaaS projects",
		Long:         "SaaSFoundry asks a few questions, generates an API, a web app and their database, then starts them.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	manager.AddFlags(cmd.PersistentFlags())

	invocation := &invocation{runtime: runtimeContainer, manager: manager, modules: modules}

	cmd.AddCommand(NewNewCmd(invocation))
	cmd.AddCommand(NewDBCmd(invocation))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor(Hints()...)

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// Hints are the remediations printed below known failures.
func Hints() []errorhandler.Hint {
	return []errorhandler.Hint{
		{Target: pipeline.ErrProjectExists, Text: "Choose another project name or remove the existing directory."},
		{Target: pipeline.ErrRecordNotFound, Text: "Run this command from the root of a project created by 'sf new'."},
		{Target: ErrNoDatabaseService, Text: "Only projects created with a docker database can be managed by 'sf db'."},
		{Target: prompt.ErrAborted, Text: "The input ended before every question was answered."},
		{Target: v1alpha1.ErrNotFinalized, Text: "The project answers were not completed."},
	}
}

// --- internals ---

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}

// invocation resolves settings and runs handlers in a fresh injector.
type invocation struct {
	runtime *di.Runtime
	manager *configmanager.Manager
	modules []di.Module
}

func (inv *invocation) runE(
	handler func(cmd *cobra.Command, args []string, injector di.Injector) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		settings, err := inv.manager.Load()
		if err != nil {
			return err
		}

		modules := append([]di.Module{
			di.ProvideStreams(di.Streams{
				In:     cmd.InOrStdin(),
				Out:    notify.NewStageSeparatingWriter(cmd.OutOrStdout()),
				ErrOut: errorhandler.DiagnosticWriter(cmd),
			}),
			di.ProvideSettings(settings),
		}, inv.modules...)

		return inv.runtime.Invoke(func(injector di.Injector) error {
			return handler(cmd, args, injector)
		}, modules...)
	}
}
