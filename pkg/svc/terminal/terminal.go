package terminal

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/svc/platform"
	"github.com/saasfoundry/sf/pkg/utils/notify"
	"github.com/sirupsen/logrus"
)

// Request asks for a terminal in Dir, running Steps when set.
type Request struct {
	Dir   string
	Steps []Step
	// Description replaces the default progress text.
	Description string
}

// Opener opens terminals.
type Opener interface {
	Open(ctx context.Context, req Request) bool
}

// Adapter opens terminals with the strategies of one platform.
type Adapter struct {
	runner   runner.CommandRunner
	platform platform.Platform
	table    Table
	out      io.Writer
	logger   logrus.FieldLogger
	spinner  []notify.SpinnerOption
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithPlatform overrides the detected platform.
func WithPlatform(target platform.Platform) Option {
	return func(a *Adapter) {
		a.platform = target
	}
}

// WithSpinnerOptions configures the progress spinner shown while launching.
func WithSpinnerOptions(opts ...notify.SpinnerOption) Option {
	return func(a *Adapter) {
		a.spinner = opts
	}
}

// NewAdapter creates an Adapter for the current platform with DefaultTable.
func NewAdapter(cmdRunner runner.CommandRunner, out io.Writer, logger logrus.FieldLogger, opts ...Option) *Adapter {
	adapter := &Adapter{
		runner:   cmdRunner,
		platform: platform.Current(),
		table:    DefaultTable(),
		out:      out,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(adapter)
	}

	if adapter.logger == nil {
		adapter.logger = logrus.StandardLogger()
	}

	return adapter
}

// Open tries each strategy of the platform until one launches and reports the outcome.
// It never returns an error: failures are reported once and yield false.
func (a *Adapter) Open(ctx context.Context, req Request) bool {
	spinner := notify.NewSpinner(a.out, a.spinner...)
	spinner.Start(describe(req))

	dir, err := filepath.Abs(req.Dir)
	if err != nil {
		spinner.Fail("Failed to open terminal")
		a.logger.WithError(err).Debug("resolve terminal directory")

		return false
	}

	for _, strategy := range a.table[a.platform] {
		err = a.launch(ctx, strategy, dir, req.Steps)
		if err == nil {
			if len(req.Steps) > 0 {
				spinner.Succeed("Command started in new terminal tab")
			} else {
				spinner.Succeed("Terminal opened successfully")
			}

			return true
		}

		a.logger.WithError(err).WithField("terminal", strategy.Name).Debug("terminal strategy failed")
	}

	spinner.Fail("Failed to open terminal in %s", dir)

	return false
}

func (a *Adapter) launch(ctx context.Context, strategy Strategy, dir string, steps []Step) error {
	if strategy.Executable != "" {
		_, err := a.runner.LookPath(strategy.Executable)
		if err != nil {
			return fmt.Errorf("%s is not installed: %w", strategy.Name, err)
		}
	}

	if len(strategy.Probe) > 0 {
		_, err := a.runner.Run(ctx, runner.Command{Name: strategy.Probe[0], Args: strategy.Probe[1:]})
		if err != nil {
			return fmt.Errorf("%s is not available: %w", strategy.Name, err)
		}
	}

	argv := Render(strategy.Argv, strategy.Shell, dir, steps)
	cmd := runner.Command{Name: argv[0], Args: argv[1:], Dir: dir}

	if strategy.Detach {
		return a.runner.Start(ctx, cmd)
	}

	_, err := a.runner.Run(ctx, cmd)

	return err
}

func describe(req Request) string {
	switch {
	case req.Description != "":
		return req.Description
	case len(req.Steps) > 0:
		return "Running command in terminal..."
	default:
		return "Opening terminal..."
	}
}
