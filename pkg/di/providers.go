package di

import (
	"io"
	"net/http"
	"time"

	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
	"github.com/saasfoundry/sf/pkg/client/docker"
	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/io/configmanager"
	sflog "github.com/saasfoundry/sf/pkg/log"
	"github.com/saasfoundry/sf/pkg/svc/browser"
	"github.com/saasfoundry/sf/pkg/svc/platform"
	"github.com/saasfoundry/sf/pkg/svc/readiness"
	"github.com/saasfoundry/sf/pkg/svc/terminal"
	"github.com/saasfoundry/sf/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// probeRequestTimeout bounds a single readiness request.
const probeRequestTimeout = 5 * time.Second

// Streams are the standard streams of a command.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Dependency providers.

// NewRuntime constructs the shared runtime container used by the root command and tests.
// Streams and settings are per invocation and come from ProvideStreams and ProvideSettings.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		providePlatform,
		provideLogger,
		provideCommandRunner,
		providePrompter,
		provideTerminal,
		provideBrowser,
		provideHTTPClient,
		provideDockerEngine,
	)
}

// ProvideStreams registers the standard streams of the running command.
func ProvideStreams(streams Streams) Module {
	return func(i Injector) error {
		do.ProvideValue(i, streams)

		return nil
	}
}

// ProvideSettings registers the loaded settings.
func ProvideSettings(settings *configmanager.Settings) Module {
	return func(i Injector) error {
		do.ProvideValue(i, settings)

		return nil
	}
}

// ProvideCommandRunner replaces the command runner, for tests.
func ProvideCommandRunner(cmdRunner runner.CommandRunner) Module {
	return func(i Injector) error {
		do.Override(i, func(Injector) (runner.CommandRunner, error) {
			return cmdRunner, nil
		})

		return nil
	}
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

func providePlatform(i Injector) error {
	do.Provide(i, func(Injector) (platform.Platform, error) {
		return platform.Current(), nil
	})

	return nil
}

// provideLogger registers a logger writing diagnostics to the error stream.
func provideLogger(i Injector) error {
	do.Provide(i, func(i Injector) (logrus.FieldLogger, error) {
		streams, err := ResolveStreams(i)
		if err != nil {
			return nil, err
		}

		settings, err := ResolveSettings(i)
		if err != nil {
			return nil, err
		}

		return sflog.New(streams.ErrOut, settings.Quiet), nil
	})

	return nil
}

func provideCommandRunner(i Injector) error {
	do.Provide(i, func(i Injector) (runner.CommandRunner, error) {
		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		return runner.NewExecRunner(logger), nil
	})

	return nil
}

func providePrompter(i Injector) error {
	do.Provide(i, func(i Injector) (prompt.Prompter, error) {
		streams, err := ResolveStreams(i)
		if err != nil {
			return nil, err
		}

		return prompt.NewConsole(streams.In, streams.Out), nil
	})

	return nil
}

func provideTerminal(i Injector) error {
	do.Provide(i, func(i Injector) (terminal.Opener, error) {
		cmdRunner, err := ResolveCommandRunner(i)
		if err != nil {
			return nil, err
		}

		streams, err := ResolveStreams(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		target := do.MustInvoke[platform.Platform](i)

		return terminal.NewAdapter(cmdRunner, streams.Out, logger, terminal.WithPlatform(target)), nil
	})

	return nil
}

func provideBrowser(i Injector) error {
	do.Provide(i, func(i Injector) (*browser.Opener, error) {
		cmdRunner, err := ResolveCommandRunner(i)
		if err != nil {
			return nil, err
		}

		return browser.NewOpener(cmdRunner, do.MustInvoke[platform.Platform](i)), nil
	})

	return nil
}

func provideHTTPClient(i Injector) error {
	do.Provide(i, func(Injector) (readiness.HTTPDoer, error) {
		return &http.Client{Timeout: probeRequestTimeout}, nil
	})

	return nil
}

// provideDockerEngine registers a lazily connected docker engine. Commands that never
// resolve it work without a docker daemon.
func provideDockerEngine(i Injector) error {
	do.Provide(i, func(Injector) (*docker.Engine, error) {
		return docker.NewEngineFromEnv()
	})

	return nil
}

// ProvideDockerEngine replaces the docker engine, for tests.
func ProvideDockerEngine(engine *docker.Engine) Module {
	return func(i Injector) error {
		do.Override(i, func(Injector) (*docker.Engine, error) {
			return engine, nil
		})

		return nil
	}
}
