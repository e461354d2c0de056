package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	v1alpha1 "github.com/saasfoundry/sf/pkg/apis/project/v1alpha1"
	"github.com/saasfoundry/sf/pkg/fsutil"
	"github.com/saasfoundry/sf/pkg/fsutil/materializer"
	sflog "github.com/saasfoundry/sf/pkg/log"
	"github.com/saasfoundry/sf/pkg/utils/timer"
	"github.com/sirupsen/logrus"
)

// Step names, shown as progress text.
const (
	StepCreateProject = "Creating project directory..."
	StepAPI           = "Creating API app..."
	StepDB            = "Creating database app..."
	StepWeb           = "Creating web app..."
)

// SetupOptions carries the collaborators of Setup.
type SetupOptions struct {
	Materializer *materializer.Materializer
	Reporter     Reporter
	Logger       logrus.FieldLogger
	Timer        timer.Timer
	Services     ServiceOptions
}

// NewWorkspace returns the workspace of project created below parent.
func NewWorkspace(parent string, project *v1alpha1.Project) (Workspace, error) {
	abs, err := fsutil.ExpandHomePath(parent)
	if err != nil {
		return Workspace{}, fmt.Errorf("failed to resolve %s: %w", parent, err)
	}

	return Workspace{Root: filepath.Join(abs, project.Name)}, nil
}

// Steps returns the setup steps of project in execution order.
func Steps(project *v1alpha1.Project, opts SetupOptions) []Step {
	materialize := func(build func(ws Workspace) materializer.Request, name string) func(context.Context, Workspace) error {
		return func(ctx context.Context, ws Workspace) error {
			req := build(ws)
			req.OnStage = func(stage string) {
				if opts.Reporter != nil {
					opts.Reporter.SetText(name + " " + stage)
				}
			}

			return opts.Materializer.Materialize(ctx, req)
		}
	}

	return []Step{
		{
			Name: StepCreateProject,
			Run: func(_ context.Context, ws Workspace) error {
				err := os.MkdirAll(filepath.Join(ws.Root, v1alpha1.AppsDir), fsutil.DirPerm)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", ws.Root, err)
				}

				return nil
			},
		},
		{
			Name: StepAPI,
			Run: materialize(func(ws Workspace) materializer.Request {
				return APIRequest(project, ws, opts.Materializer.Source(), opts.Services)
			}, StepAPI),
		},
		{
			Name:    StepDB,
			Include: project.Database.Mode.IsContainerized,
			Run: materialize(func(ws Workspace) materializer.Request {
				return DBRequest(project, ws)
			}, StepDB),
		},
		{
			Name: StepWeb,
			Run: materialize(func(ws Workspace) materializer.Request {
				return WebRequest(project, ws)
			}, StepWeb),
		},
	}
}

// Setup materializes project into ws.Root and records it there.
// It refuses to run when ws.Root already exists. A failed step aborts the remaining ones
// and leaves whatever was written in place.
func Setup(ctx context.Context, project *v1alpha1.Project, ws Workspace, opts SetupOptions) (Result, error) {
	if !project.Finalized() {
		return Result{State: Idle}, v1alpha1.ErrNotFinalized
	}

	exists, err := fsutil.Exists(ws.Root)
	if err != nil {
		return Result{State: Idle}, err
	}

	if exists {
		return Result{State: Idle}, fmt.Errorf("%w: %s", ErrProjectExists, ws.Root)
	}

	logger := opts.Logger
	if logger == nil {
		logger = sflog.Discard()
	}

	runner := NewRunner(Steps(project, opts),
		WithPolicy(Abort),
		WithReporter(opts.Reporter),
		WithLogger(sflog.WithRun(logger).WithField("project", project.Name)),
		WithTimer(opts.Timer),
		WithDoneMessage("Project "+project.Name+" created"),
	)

	result := runner.Run(ctx, ws)
	if result.State != Completed {
		return result, result.Err()
	}

	err = WriteRecord(ws.Root, NewRecord(project))
	if err != nil {
		return result, err
	}

	return result, nil
}
