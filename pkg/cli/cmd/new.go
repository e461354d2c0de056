package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/cli/ui"
	"github.com/saasfoundry/sf/pkg/cli/wizard"
	"github.com/saasfoundry/sf/pkg/di"
	"github.com/saasfoundry/sf/pkg/fsutil"
	"github.com/saasfoundry/sf/pkg/fsutil/materializer"
	"github.com/saasfoundry/sf/pkg/io/configmanager"
	"github.com/saasfoundry/sf/pkg/svc/bringup"
	"github.com/saasfoundry/sf/pkg/svc/database"
	"github.com/saasfoundry/sf/pkg/svc/pipeline"
	"github.com/saasfoundry/sf/pkg/utils/notify"
	"github.com/saasfoundry/sf/scaffolds"
	"github.com/spf13/cobra"
)

const newCmdLong = `Create a new SaaSFoundry project.

sf new asks for the project name, repository layout, database and email provider, then
generates the API, the database (docker only) and the web app below the target directory.
Once generated, it offers to start the database and the development servers.`

// FlagDir is the directory the project is created in.
const FlagDir = "dir"

// NewNewCmd creates the new command.
func NewNewCmd(inv *invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "new",
		Short:        "Create a new SaaSFoundry project",
		Long:         newCmdLong,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Flags().String(FlagDir, ".", "Directory the project directory is created in")

	cmd.RunE = inv.runE(func(cmd *cobra.Command, _ []string, injector di.Injector) error {
		return handleNewRunE(cmd, injector)
	})

	return cmd
}

//nolint:funlen // the new command is a linear sequence of stages
func handleNewRunE(cmd *cobra.Command, injector di.Injector) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	deps, err := resolveDeps(injector)
	if err != nil {
		return err
	}

	out := deps.streams.Out

	deps.timer.Start()
	ui.SetTerminalTitle(out, "SaaSFoundry - new project")
	notify.Titlef(out, "🚀", "Create a new SaaSFoundry project")

	project, err := wizard.NewFlow(deps.prompter, out, deps.browser,
		wizard.WithSignupDelay(wizard.DefaultSignupDelay)).Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect project answers: %w", err)
	}

	frozen, err := project.Freeze()
	if err != nil {
		return err
	}

	parent, _ := cmd.Flags().GetString(FlagDir)

	ws, err := pipeline.NewWorkspace(parent, frozen)
	if err != nil {
		return err
	}

	source, err := blueprintSource(deps.settings)
	if err != nil {
		return err
	}

	deps.timer.NewStage()

	spinner := notify.NewSpinner(out)

	result, err := pipeline.Setup(ctx, frozen, ws, pipeline.SetupOptions{
		Materializer: materializer.New(source, deps.runner, deps.logger),
		Reporter:     spinner,
		Logger:       deps.logger,
		Timer:        deps.timer,
		Services:     pipeline.ServiceOptions{SecretLength: deps.settings.Secrets.Length},
	})
	if err != nil {
		if result.State == pipeline.Failed {
			notify.Errorf(out, "Failed to setup project")
		}

		return err
	}

	notify.SuccessWithTimerf(out, deps.timer, "Project setup completed successfully")

	for _, kind := range []v1alpha1.ServiceKind{v1alpha1.ServiceAPI, v1alpha1.ServiceDB, v1alpha1.ServiceWeb} {
		if kind == v1alpha1.ServiceDB && !frozen.Database.Mode.IsContainerized() {
			continue
		}

		notify.Generatef(out, "%s", frozen.ServicePath(ws.Root, kind))
	}

	coordinator := bringup.NewCoordinator(
		deps.prompter,
		out,
		database.NewProvisioner(
			&lazyEngine{injector: injector},
			deps.runner,
			nil,
			deps.logger,
			database.Options{Timeout: deps.settings.Database.Timeout, Interval: deps.settings.Readiness.Interval},
		),
		deps.terminal,
		deps.browser,
		deps.logger,
		bringup.Options{
			BackendPort:   deps.settings.Backend.Port,
			FrontendPort:  deps.settings.Frontend.Port,
			ProbeTimeout:  deps.settings.Readiness.Timeout,
			ProbeInterval: deps.settings.Readiness.Interval,
			HTTPClient:    deps.http,
		},
	)

	outcome, err := coordinator.BringUp(ctx, frozen, ws)
	if err != nil {
		return err
	}

	deps.logger.WithField("database", outcome.Database).
		WithField("started", outcome.Started).
		WithField("warnings", len(outcome.Warnings)).
		Debug("bring-up finished")

	return nil
}

func blueprintSource(settings *configmanager.Settings) (fs.FS, error) {
	if settings.Blueprints == "" {
		return scaffolds.FS(), nil
	}

	dir, err := fsutil.ExpandHomePath(settings.Blueprints)
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprints: %w", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprints: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open blueprints: %w: %s", fsutil.ErrNotDirectory, dir)
	}

	return os.DirFS(dir), nil
}

// lazyEngine connects to docker on the first database action, so projects without a
// docker database never need a daemon.
type lazyEngine struct {
	injector di.Injector
}

func (l *lazyEngine) EnsureNetwork(ctx context.Context, name string) (bool, error) {
	engine, err := di.ResolveDockerEngine(l.injector)
	if err != nil {
		return false, err
	}

	return engine.EnsureNetwork(ctx, name)
}

func (l *lazyEngine) WaitHealthy(ctx context.Context, name string, timeout, interval time.Duration) error {
	engine, err := di.ResolveDockerEngine(l.injector)
	if err != nil {
		return err
	}

	return engine.WaitHealthy(ctx, name, timeout, interval)
}

var _ database.ContainerEngine = (*lazyEngine)(nil)
