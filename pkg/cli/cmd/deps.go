package cmd

import (
	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/di"
	"github.com/saasfoundry/sf/pkg/io/configmanager"
	"github.com/saasfoundry/sf/pkg/svc/browser"
	"github.com/saasfoundry/sf/pkg/svc/readiness"
	"github.com/saasfoundry/sf/pkg/svc/terminal"
	"github.com/saasfoundry/sf/pkg/utils/timer"
	"github.com/sirupsen/logrus"
)

// deps are the services a command handler resolves from the injector.
type deps struct {
	streams  di.Streams
	settings *configmanager.Settings
	timer    timer.Timer
	logger   logrus.FieldLogger
	runner   runner.CommandRunner
	prompter prompt.Prompter
	terminal terminal.Opener
	browser  *browser.Opener
	http     readiness.HTTPDoer
}

func resolveDeps(injector di.Injector) (deps, error) {
	var (
		resolved deps
		err      error
	)

	resolved.streams, err = di.ResolveStreams(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.settings, err = di.ResolveSettings(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.timer, err = di.ResolveTimer(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.logger, err = di.ResolveLogger(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.runner, err = di.ResolveCommandRunner(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.prompter, err = di.ResolvePrompter(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.terminal, err = di.ResolveTerminal(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.browser, err = di.ResolveBrowser(injector)
	if err != nil {
		return deps{}, err
	}

	resolved.http, err = di.ResolveHTTPClient(injector)
	if err != nil {
		return deps{}, err
	}

	return resolved, nil
}
