package di

import (
	"fmt"

	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
	"github.com/saasfoundry/sf/pkg/client/docker"
	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/io/configmanager"
	"github.com/saasfoundry/sf/pkg/svc/browser"
	"github.com/saasfoundry/sf/pkg/svc/readiness"
	"github.com/saasfoundry/sf/pkg/svc/terminal"
	"github.com/saasfoundry/sf/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector with consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveStreams retrieves the standard streams of the running command.
func ResolveStreams(injector Injector) (Streams, error) {
	streams, err := do.Invoke[Streams](injector)
	if err != nil {
		return Streams{}, fmt.Errorf("resolve streams dependency: %w", err)
	}

	return streams, nil
}

// ResolveSettings retrieves the loaded settings.
func ResolveSettings(injector Injector) (*configmanager.Settings, error) {
	settings, err := do.Invoke[*configmanager.Settings](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve settings dependency: %w", err)
	}

	return settings, nil
}

// ResolveLogger retrieves the diagnostics logger.
func ResolveLogger(injector Injector) (logrus.FieldLogger, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveCommandRunner retrieves the external command runner.
func ResolveCommandRunner(injector Injector) (runner.CommandRunner, error) {
	cmdRunner, err := do.Invoke[runner.CommandRunner](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve command runner dependency: %w", err)
	}

	return cmdRunner, nil
}

// ResolvePrompter retrieves the interactive prompter.
func ResolvePrompter(injector Injector) (prompt.Prompter, error) {
	prompter, err := do.Invoke[prompt.Prompter](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve prompter dependency: %w", err)
	}

	return prompter, nil
}

// ResolveTerminal retrieves the terminal opener.
func ResolveTerminal(injector Injector) (terminal.Opener, error) {
	opener, err := do.Invoke[terminal.Opener](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve terminal dependency: %w", err)
	}

	return opener, nil
}

// ResolveBrowser retrieves the browser opener.
func ResolveBrowser(injector Injector) (*browser.Opener, error) {
	opener, err := do.Invoke[*browser.Opener](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve browser dependency: %w", err)
	}

	return opener, nil
}

// ResolveHTTPClient retrieves the client used by readiness probes.
func ResolveHTTPClient(injector Injector) (readiness.HTTPDoer, error) {
	client, err := do.Invoke[readiness.HTTPDoer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve http client dependency: %w", err)
	}

	return client, nil
}

// ResolveDockerEngine retrieves the docker engine, connecting on first use.
func ResolveDockerEngine(injector Injector) (*docker.Engine, error) {
	engine, err := do.Invoke[*docker.Engine](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve docker engine dependency: %w", err)
	}

	return engine, nil
}

// Handler decorators.

// WithTimer decorates a handler to automatically resolve the timer dependency.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
