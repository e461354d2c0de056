// Package materializer turns a blueprint and an overlay into a service tree on disk.
//
// A materialization copies the blueprint, lays the overlay over it, applies the service's
// mutations in order and then optionally installs dependencies and initializes a git
// repository. Each stage either completes or returns an error; nothing is rolled back.
package materializer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/saasfoundry/sf/pkg/cmd/runner"
	"github.com/saasfoundry/sf/pkg/fsutil"
	"github.com/saasfoundry/sf/pkg/fsutil/mutate"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBlueprintRequired is returned when a request names no blueprint.
	ErrBlueprintRequired = errors.New("blueprint is required")
	// ErrTargetRequired is returned when a request names no target directory.
	ErrTargetRequired = errors.New("target directory is required")
	// ErrInstallFailed wraps a failed dependency installation.
	ErrInstallFailed = errors.New("dependency installation failed")
	// ErrGitInitFailed wraps a failed repository initialization.
	ErrGitInitFailed = errors.New("git initialization failed")
)

// InitialCommitMessage is the message of the commit created in every new repository.
const InitialCommitMessage = "Initial commit"

// GitInit describes the repository created in a materialized tree.
type GitInit struct {
	Branch string
	// Remote is added as origin when set.
	Remote string
}

// Request describes one service tree.
type Request struct {
	// Blueprint and Overlay are directories of the materializer's source.
	Blueprint string
	// Overlay is optional.
	Overlay string
	Target  string
	// Policy applies to the blueprint copy; the overlay always overwrites.
	Policy    fsutil.CollisionPolicy
	Mutations []mutate.Mutation
	// Install runs npm install in the target after mutation.
	Install bool
	// Git, when set, initializes a repository after installation.
	Git *GitInit
	// OnStage is told about each stage as it starts.
	OnStage func(stage string)
}

// Materializer materializes requests from a read-only source tree.
type Materializer struct {
	source fs.FS
	runner runner.CommandRunner
	logger logrus.FieldLogger
}

// New creates a Materializer reading blueprints from source.
func New(source fs.FS, cmdRunner runner.CommandRunner, logger logrus.FieldLogger) *Materializer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Materializer{source: source, runner: cmdRunner, logger: logger}
}

// Source returns the tree blueprints are read from.
func (m *Materializer) Source() fs.FS {
	return m.source
}

// Materialize builds the tree described by req.
func (m *Materializer) Materialize(ctx context.Context, req Request) error {
	if req.Blueprint == "" {
		return ErrBlueprintRequired
	}

	if req.Target == "" {
		return ErrTargetRequired
	}

	logger := m.logger.WithField("target", req.Target)
	stage := func(name string) {
		logger.Debug(name)

		if req.OnStage != nil {
			req.OnStage(name)
		}
	}

	stage("copying blueprint " + req.Blueprint)

	err := fsutil.CopyTree(m.source, req.Blueprint, req.Target, req.Policy)
	if err != nil {
		return fmt.Errorf("failed to copy blueprint %s: %w", req.Blueprint, err)
	}

	if req.Overlay != "" {
		stage("applying overlay " + req.Overlay)

		err = fsutil.CopyTree(m.source, req.Overlay, req.Target, fsutil.Overwrite)
		if err != nil {
			return fmt.Errorf("failed to apply overlay %s: %w", req.Overlay, err)
		}
	}

	for _, mutation := range req.Mutations {
		stage(mutation.Describe())

		err = mutation.Apply(req.Target)
		if err != nil {
			return fmt.Errorf("failed to %s: %w", mutation.Describe(), err)
		}
	}

	if req.Install {
		stage("installing dependencies")

		err = m.install(ctx, req.Target)
		if err != nil {
			return err
		}
	}

	if req.Git != nil {
		stage("initializing git repository")

		err = m.initGit(ctx, req.Target, *req.Git)
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *Materializer) install(ctx context.Context, target string) error {
	_, err := m.runner.Run(ctx, runner.Command{
		Name: "npm",
		Args: []string{"install", "--prefix", target},
	})
	if err != nil {
		return fmt.Errorf("%w in %s: %w", ErrInstallFailed, target, err)
	}

	return nil
}

func (m *Materializer) initGit(ctx context.Context, target string, git GitInit) error {
	steps := [][]string{
		{"init"},
		{"checkout", "-b", git.Branch},
	}

	if git.Remote != "" {
		steps = append(steps, []string{"remote", "add", "origin", git.Remote})
	}

	steps = append(steps,
		[]string{"add", "."},
		[]string{"commit", "-m", InitialCommitMessage},
	)

	for _, args := range steps {
		_, err := m.runner.Run(ctx, runner.Command{Name: "git", Args: args, Dir: target})
		if err != nil {
			return fmt.Errorf("%w in %s: %w", ErrGitInitFailed, target, err)
		}
	}

	return nil
}
