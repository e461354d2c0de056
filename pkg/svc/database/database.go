package database

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/client/docker"
	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/svc/readiness"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout bounds each wait of the provisioner.
	DefaultTimeout = 60 * time.Second
	// ComposeFile is the compose file of the database service.
	ComposeFile = "docker-compose.db.yml"
	// InitScript is the npm script of the API that creates the schema and seeds it.
	InitScript = "db:update:dev"
)

// ContainerEngine is the part of docker.Engine the provisioner needs.
type ContainerEngine interface {
	EnsureNetwork(ctx context.Context, name string) (bool, error)
	WaitHealthy(ctx context.Context, name string, timeout, interval time.Duration) error
}

// Pinger checks that a database accepts connections.
type Pinger interface {
	Ping(ctx context.Context, dsn string) error
}

// PgxPinger connects with pgx and pings.
type PgxPinger struct{}

// Ping opens a connection to dsn, pings and closes it.
func (PgxPinger) Ping(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	defer func() { _ = conn.Close(context.WithoutCancel(ctx)) }()

	err = conn.Ping(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	return nil
}

// Options tunes the waits of a Provisioner.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Provisioner runs the database bring-up actions.
type Provisioner struct {
	engine ContainerEngine
	runner runner.CommandRunner
	pinger Pinger
	logger logrus.FieldLogger
	opts   Options
}

// NewProvisioner creates a Provisioner. engine may be nil when docker is not used.
func NewProvisioner(
	engine ContainerEngine,
	cmdRunner runner.CommandRunner,
	pinger Pinger,
	logger logrus.FieldLogger,
	opts Options,
) *Provisioner {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.Interval <= 0 {
		opts.Interval = readiness.DefaultInterval
	}

	if pinger == nil {
		pinger = PgxPinger{}
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Provisioner{engine: engine, runner: cmdRunner, pinger: pinger, logger: logger, opts: opts}
}

// Start creates the project network, starts the database container from the generated
// compose file and waits until it reports healthy.
func (p *Provisioner) Start(ctx context.Context, project *v1alpha1.Project, root string) error {
	if !project.Database.Mode.IsContainerized() || p.engine == nil {
		return ErrNotContainerized
	}

	created, err := p.engine.EnsureNetwork(ctx, project.NetworkName())
	if err != nil {
		return err
	}

	p.logger.WithField("network", project.NetworkName()).WithField("created", created).Debug("network ready")

	compose := docker.Compose{
		Runner: p.runner,
		File:   ComposeFile,
		Dir:    project.ServicePath(root, v1alpha1.ServiceDB),
	}

	err = compose.Up(ctx)
	if err != nil {
		return err
	}

	err = p.engine.WaitHealthy(ctx, project.DatabaseContainerName(), p.opts.Timeout, p.opts.Interval)
	if err != nil {
		return fmt.Errorf("database container %s did not become healthy: %w", project.DatabaseContainerName(), err)
	}

	return nil
}

// WaitReachable polls dsn until the database accepts connections.
func (p *Provisioner) WaitReachable(ctx context.Context, dsn string) error {
	var lastErr error

	err := readiness.PollForReadiness(ctx, p.opts.Timeout, p.opts.Interval, func(ctx context.Context) (bool, error) {
		lastErr = p.pinger.Ping(ctx, dsn)

		return lastErr == nil, nil
	})
	if err != nil {
		if lastErr != nil {
			return fmt.Errorf("database is not reachable: %w: %w", err, lastErr)
		}

		return fmt.Errorf("database is not reachable: %w", err)
	}

	return nil
}

// Initialize runs the idempotent initialization script of the API in apiDir. A failed
// first attempt is retried once.
func (p *Provisioner) Initialize(ctx context.Context, apiDir string) error {
	_, err := p.runner.Run(ctx, InitCommand(apiDir))
	if err == nil {
		return nil
	}

	p.logger.WithError(err).Debug("database initialization failed, retrying")

	_, err = p.runner.Run(ctx, InitCommand(apiDir))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	return nil
}

// InitCommand returns the invocation of the initialization script for apiDir.
func InitCommand(apiDir string) runner.Command {
	return runner.Command{
		Name: "npm",
		Args: []string{
			"run", InitScript, "init_data_base_config", "--prefix", apiDir, "--", "--wf", "--wt", "--wds",
		},
	}
}

// ReadDSN returns DATABASE_URL from the environment file of the API in apiDir.
func ReadDSN(apiDir string) (string, error) {
	env, err := godotenv.Read(filepath.Join(apiDir, ".env"))
	if err != nil {
		return "", fmt.Errorf("failed to read API environment: %w", err)
	}

	dsn := env["DATABASE_URL"]
	if dsn == "" {
		return "", ErrDatabaseURLMissing
	}

	return dsn, nil
}
