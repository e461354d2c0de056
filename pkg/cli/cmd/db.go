package cmd

import (
	"context"
	"fmt"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/client/docker"
	"github.com/saasfoundry/sf/pkg/di"
	"github.com/saasfoundry/sf/pkg/fsutil"
	"github.com/saasfoundry/sf/pkg/svc/database"
	"github.com/saasfoundry/sf/pkg/svc/pipeline"
	"github.com/saasfoundry/sf/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// postgresPort is the container port of the development database.
const postgresPort = "5432/tcp"

// NewDBCmd creates the db command and its subcommands.
func NewDBCmd(inv *invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage your development database",
		Long: "Start, stop or reset the docker database of a project generated by sf new. " +
			"Run it from the project root or point --dir at it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String(FlagDir, ".", "Root directory of the project")

	cmd.AddCommand(newDBActionCmd(inv, dbAction{
		use:      "start",
		short:    "Start the development database",
		activity: "Starting development database...",
		success:  "Development database started successfully!",
		failure:  "Failed to start development database",
		run:      startDatabase,
	}))
	cmd.AddCommand(newDBActionCmd(inv, dbAction{
		use:      "stop",
		short:    "Stop the development database",
		activity: "Stopping development database...",
		success:  "Development database stopped successfully!",
		failure:  "Failed to stop development database",
		run: func(ctx context.Context, target dbTarget) error {
			return target.compose.Stop(ctx, target.service)
		},
	}))
	cmd.AddCommand(newDBActionCmd(inv, dbAction{
		use:      "reset",
		short:    "Reset the development database",
		activity: "Resetting development database...",
		success:  "Development database reset successfully!",
		failure:  "Failed to reset development database",
		run:      resetDatabase,
	}))

	return cmd
}

// dbAction describes one db subcommand.
type dbAction struct {
	use      string
	short    string
	activity string
	success  string
	failure  string
	run      func(ctx context.Context, target dbTarget) error
}

// dbTarget is the database service of a recorded project.
type dbTarget struct {
	record   pipeline.Record
	project  *v1alpha1.Project
	compose  docker.Compose
	service  string
	injector di.Injector
}

func newDBActionCmd(inv *invocation, action dbAction) *cobra.Command {
	cmd := &cobra.Command{
		Use:          action.use,
		Short:        action.short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = inv.runE(func(cmd *cobra.Command, _ []string, injector di.Injector) error {
		return handleDBRunE(cmd, injector, action)
	})

	return cmd
}

func handleDBRunE(cmd *cobra.Command, injector di.Injector, action dbAction) error {
	resolved, err := resolveDeps(injector)
	if err != nil {
		return err
	}

	dir, _ := cmd.Flags().GetString(FlagDir)

	root, err := fsutil.ExpandHomePath(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	record, err := pipeline.ReadRecord(root)
	if err != nil {
		return err
	}

	dbDir := record.ServicePath(root, v1alpha1.ServiceDB)
	if dbDir == "" || !record.DatabaseMode.IsContainerized() {
		return fmt.Errorf("%w: %s uses the %s database mode", ErrNoDatabaseService, record.Name, record.DatabaseMode)
	}

	project := &v1alpha1.Project{Name: record.Name}
	target := dbTarget{
		record:  record,
		project: project,
		compose: docker.Compose{
			Runner: resolved.runner,
			File:   database.ComposeFile,
			Dir:    dbDir,
		},
		service:  project.ServiceName(v1alpha1.ServiceDB),
		injector: injector,
	}

	out := resolved.streams.Out
	spinner := notify.NewSpinner(out)
	spinner.Start(action.activity)

	err = action.run(cmd.Context(), target)
	if err != nil {
		spinner.Fail(action.failure)

		return err
	}

	spinner.Succeed(action.success)

	if action.use == "start" || action.use == "reset" {
		printPortHint(cmd.Context(), target, resolved)
	}

	return nil
}

func startDatabase(ctx context.Context, target dbTarget) error {
	engine, err := di.ResolveDockerEngine(target.injector)
	if err != nil {
		return err
	}

	_, err = engine.EnsureNetwork(ctx, target.record.Network)
	if err != nil {
		return err
	}

	return target.compose.Up(ctx, target.service)
}

func resetDatabase(ctx context.Context, target dbTarget) error {
	err := target.compose.Down(ctx, true, target.service)
	if err != nil {
		return err
	}

	return startDatabase(ctx, target)
}

func printPortHint(ctx context.Context, target dbTarget, resolved deps) {
	engine, err := di.ResolveDockerEngine(target.injector)
	if err != nil {
		resolved.logger.WithError(err).Debug("docker engine unavailable for the port hint")

		return
	}

	port, err := engine.HostPort(ctx, target.project.DatabaseContainerName(), postgresPort)
	if err != nil {
		resolved.logger.WithError(err).Debug("database port not resolved")

		return
	}

	notify.Infof(resolved.streams.Out, "Database is running on port %s", port)
}
