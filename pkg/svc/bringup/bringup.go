package bringup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/cli/ui/prompt"
	"github.com/saasfoundry/sf/pkg/svc/database"
	"github.com/saasfoundry/sf/pkg/svc/pipeline"
	"github.com/saasfoundry/sf/pkg/svc/readiness"
	"github.com/saasfoundry/sf/pkg/svc/terminal"
	"github.com/saasfoundry/sf/pkg/utils/notify"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBackendPort is the port of the generated API.
	DefaultBackendPort = 3500
	// DefaultFrontendPort is the port of the generated web app dev server.
	DefaultFrontendPort = 5173
	// DevCommand starts a development server.
	DevCommand = "npm run dev"
)

// HooksBootstrap installs the git hooks of a generated service and restores the
// executable bits the embedded templates cannot carry. The chmod steps only exist for
// POSIX shells.
func HooksBootstrap() []terminal.Step {
	return []terminal.Step{
		{Run: "npx husky install"},
		{Run: "chmod -R +x .husky 2>/dev/null || true", PosixOnly: true},
		{Run: "chmod -R +x ./scripts/*.sh 2>/dev/null || true", PosixOnly: true},
	}
}

// StartSteps bootstraps the hooks, then starts the development server.
func StartSteps() []terminal.Step {
	return append(HooksBootstrap(), terminal.Step{Run: DevCommand})
}

// Provisioner runs the database actions of the bring-up.
type Provisioner interface {
	Start(ctx context.Context, project *v1alpha1.Project, root string) error
	WaitReachable(ctx context.Context, dsn string) error
	Initialize(ctx context.Context, apiDir string) error
}

// URLOpener opens a URL in the user's browser.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// DatabaseStatus is what happened to the database during bring-up.
type DatabaseStatus string

const (
	// DatabaseSkipped means the project has no database to start.
	DatabaseSkipped DatabaseStatus = "skipped"
	// DatabaseDeclined means the user chose not to start the database.
	DatabaseDeclined DatabaseStatus = "declined"
	// DatabaseReady means the database was started and initialized.
	DatabaseReady DatabaseStatus = "ready"
	// DatabaseFailed means starting or initializing the database failed.
	DatabaseFailed DatabaseStatus = "failed"
)

// Outcome summarizes a bring-up.
type Outcome struct {
	Database  DatabaseStatus
	Choice    StartChoice
	Started   []v1alpha1.ServiceKind
	Terminals int
	// Warnings collects every non-fatal failure in order.
	Warnings []error
}

// Options tunes a Coordinator.
type Options struct {
	BackendPort   int
	FrontendPort  int
	ProbeTimeout  time.Duration
	ProbeInterval time.Duration
	HTTPClient    readiness.HTTPDoer
	Spinner       []notify.SpinnerOption
}

// Coordinator drives the interactive bring-up of a generated project.
type Coordinator struct {
	prompter    prompt.Prompter
	out         io.Writer
	provisioner Provisioner
	terminals   terminal.Opener
	browser     URLOpener
	logger      logrus.FieldLogger
	opts        Options
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(
	prompter prompt.Prompter,
	out io.Writer,
	provisioner Provisioner,
	terminals terminal.Opener,
	browser URLOpener,
	logger logrus.FieldLogger,
	opts Options,
) *Coordinator {
	if opts.BackendPort <= 0 {
		opts.BackendPort = DefaultBackendPort
	}

	if opts.FrontendPort <= 0 {
		opts.FrontendPort = DefaultFrontendPort
	}

	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = readiness.DefaultTimeout
	}

	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = readiness.DefaultInterval
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Coordinator{
		prompter:    prompter,
		out:         out,
		provisioner: provisioner,
		terminals:   terminals,
		browser:     browser,
		logger:      logger,
		opts:        opts,
	}
}

// HealthURL is the readiness probe of the backend.
func (c *Coordinator) HealthURL() string {
	return fmt.Sprintf("http://localhost:%d/api/health", c.opts.BackendPort)
}

// DocsURL is the API documentation opened once the backend is ready.
func (c *Coordinator) DocsURL() string {
	return fmt.Sprintf("http://localhost:%d/api/docs", c.opts.BackendPort)
}

// FrontendURL is both the readiness probe and the page of the frontend.
func (c *Coordinator) FrontendURL() string {
	return fmt.Sprintf("http://localhost:%d", c.opts.FrontendPort)
}

// BringUp runs the bring-up of project generated in ws and prints the closing banner.
// Only an aborted prompt is returned as an error.
func (c *Coordinator) BringUp(ctx context.Context, project *v1alpha1.Project, ws pipeline.Workspace) (Outcome, error) {
	outcome := Outcome{Database: DatabaseSkipped, Choice: StartNone}

	if !project.Database.Mode.RequiresCredentials() {
		c.openPlainTerminals(ctx, project, ws, &outcome)
		PrintBanner(c.out, project.Name)

		return outcome, nil
	}

	startDB, err := c.prompter.Confirm("Do you want to initialize and start the database now?", true)
	if err != nil {
		return outcome, fmt.Errorf("failed to ask about the database: %w", err)
	}

	if !startDB {
		outcome.Database = DatabaseDeclined
		c.openPlainTerminals(ctx, project, ws, &outcome)
		PrintBanner(c.out, project.Name)

		return outcome, nil
	}

	err = c.startDatabase(ctx, project, ws)
	if err != nil {
		outcome.Database = DatabaseFailed
		outcome.Warnings = append(outcome.Warnings, err)
		PrintBanner(c.out, project.Name)

		return outcome, nil
	}

	outcome.Database = DatabaseReady

	answer, err := c.prompter.Select("Do you want to start apps?", startChoices(), string(StartBackend))
	if err != nil {
		return outcome, fmt.Errorf("failed to ask which apps to start: %w", err)
	}

	choice, err := ParseStartChoice(answer)
	if err != nil {
		return outcome, err
	}

	outcome.Choice = choice

	c.startServices(ctx, project, ws, choice, &outcome)
	PrintBanner(c.out, project.Name)

	return outcome, nil
}

func (c *Coordinator) startDatabase(ctx context.Context, project *v1alpha1.Project, ws pipeline.Workspace) error {
	spinner := notify.NewSpinner(c.out, c.opts.Spinner...)
	spinner.Start("Starting and initializing database...")

	err := c.provisionDatabase(ctx, project, ws, spinner)
	if err != nil {
		spinner.Fail("Failed to start database")
		notify.Errorf(c.out, "%v", err)
		c.logger.WithError(err).Debug("database bring-up failed")

		return err
	}

	spinner.Succeed("Database initialized and started successfully")

	return nil
}

func (c *Coordinator) provisionDatabase(
	ctx context.Context,
	project *v1alpha1.Project,
	ws pipeline.Workspace,
	spinner *notify.Spinner,
) error {
	apiDir := project.ServicePath(ws.Root, v1alpha1.ServiceAPI)

	if project.Database.Mode.IsContainerized() {
		spinner.SetText("Starting database container...")

		err := c.provisioner.Start(ctx, project, ws.Root)
		if err != nil {
			return err
		}
	}

	creds, err := project.DatabaseCredentials()
	if err != nil {
		return err
	}

	if creds.Engine == v1alpha1.DatabaseEnginePostgreSQL {
		spinner.SetText("Waiting for database to accept connections...")

		dsn, err := database.ReadDSN(apiDir)
		if err != nil {
			dsn = creds.URL()
		}

		err = c.provisioner.WaitReachable(ctx, dsn)
		if err != nil {
			return err
		}
	}

	spinner.SetText("Initializing database...")

	return c.provisioner.Initialize(ctx, apiDir)
}

func (c *Coordinator) startServices(
	ctx context.Context,
	project *v1alpha1.Project,
	ws pipeline.Workspace,
	choice StartChoice,
	outcome *Outcome,
) {
	for _, kind := range serviceKinds() {
		if choice.Starts(kind) {
			outcome.Started = append(outcome.Started, kind)
		}
	}

	c.runServiceSteps(ctx, project, ws, choice, outcome)
}

func (c *Coordinator) openPlainTerminals(
	ctx context.Context,
	project *v1alpha1.Project,
	ws pipeline.Workspace,
	outcome *Outcome,
) {
	notify.Infof(c.out, "Opening terminals for your project...")

	c.runServiceSteps(ctx, project, ws, StartNone, outcome)
}

// runServiceSteps runs the independent service actions of the bring-up. A failed action
// becomes a warning and the following actions still run.
func (c *Coordinator) runServiceSteps(
	ctx context.Context,
	project *v1alpha1.Project,
	ws pipeline.Workspace,
	choice StartChoice,
	outcome *Outcome,
) {
	result := pipeline.NewRunner(
		c.serviceSteps(project, choice, outcome),
		pipeline.WithPolicy(pipeline.Continue),
		pipeline.WithLogger(c.logger),
		pipeline.WithDoneMessage("Services ready"),
	).Run(ctx, ws)

	for _, failure := range result.Failures {
		outcome.Warnings = append(outcome.Warnings, failure)
	}
}

// serviceSteps lists the terminals of started services first, then the terminals of the
// others, then the readiness wait and browser page of each started service.
func (c *Coordinator) serviceSteps(project *v1alpha1.Project, choice StartChoice, outcome *Outcome) []pipeline.Step {
	kinds := serviceKinds()
	steps := make([]pipeline.Step, 0, 3*len(kinds))

	for _, kind := range kinds {
		steps = append(steps, pipeline.Step{
			Name:    "start " + serviceLabel(kind),
			Include: func() bool { return choice.Starts(kind) },
			Run: func(ctx context.Context, ws pipeline.Workspace) error {
				return c.openTerminal(ctx, project, ws, kind, StartSteps(), outcome)
			},
		})
	}

	for _, kind := range kinds {
		steps = append(steps, pipeline.Step{
			Name:    "open " + serviceLabel(kind) + " terminal",
			Include: func() bool { return !choice.Starts(kind) },
			Run: func(ctx context.Context, ws pipeline.Workspace) error {
				return c.openTerminal(ctx, project, ws, kind, HooksBootstrap(), outcome)
			},
		})
	}

	steps = append(steps,
		pipeline.Step{
			Name:    "open API documentation",
			Include: func() bool { return choice.Starts(v1alpha1.ServiceAPI) },
			Run: func(ctx context.Context, _ pipeline.Workspace) error {
				return c.openWhenReady(ctx, "backend", c.HealthURL(), c.DocsURL(),
					"Opening API documentation in browser...")
			},
		},
		pipeline.Step{
			Name:    "open frontend",
			Include: func() bool { return choice.Starts(v1alpha1.ServiceWeb) },
			Run: func(ctx context.Context, _ pipeline.Workspace) error {
				return c.openWhenReady(ctx, "frontend", c.FrontendURL(), c.FrontendURL(),
					"Opening frontend application in browser...")
			},
		},
	)

	return steps
}

func (c *Coordinator) openTerminal(
	ctx context.Context,
	project *v1alpha1.Project,
	ws pipeline.Workspace,
	kind v1alpha1.ServiceKind,
	steps []terminal.Step,
	outcome *Outcome,
) error {
	req := terminal.Request{
		Dir:         project.ServicePath(ws.Root, kind),
		Steps:       steps,
		Description: "Opening terminal for " + serviceLabel(kind) + "...",
	}

	if !c.terminals.Open(ctx, req) {
		return fmt.Errorf("%w in %s", ErrTerminalNotOpened, req.Dir)
	}

	outcome.Terminals++

	return nil
}

func (c *Coordinator) openWhenReady(ctx context.Context, label, probeURL, pageURL, opening string) error {
	notify.Infof(c.out, "Waiting for %s to be ready...", label)

	err := readiness.WaitForHTTP(ctx, c.opts.HTTPClient, readiness.Probe{
		URL:      probeURL,
		Interval: c.opts.ProbeInterval,
		Timeout:  c.opts.ProbeTimeout,
	})
	if err == nil {
		notify.Infof(c.out, "%s", opening)

		err = c.browser.Open(ctx, pageURL)
	}

	if err != nil {
		c.logger.WithError(err).WithField("url", pageURL).Debug("browser not opened")
		notify.Warningf(c.out, "Could not open browser automatically. Please navigate to %s", pageURL)

		return err
	}

	return nil
}

func serviceKinds() []v1alpha1.ServiceKind {
	return []v1alpha1.ServiceKind{v1alpha1.ServiceAPI, v1alpha1.ServiceWeb}
}

func serviceLabel(kind v1alpha1.ServiceKind) string {
	if kind == v1alpha1.ServiceWeb {
		return "frontend"
	}

	return "backend"
}
