package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/saasfoundry/sf/pkg/utils/timer"
	"github.com/sirupsen/logrus"
)

// Workspace is the directory every step works in. The process working directory is never
// changed.
type Workspace struct {
	Root string
}

// Step is one unit of setup work.
type Step struct {
	Name string
	// Include decides at plan time whether the step runs; nil always includes it.
	Include func() bool
	Run     func(ctx context.Context, ws Workspace) error
}

// Reporter shows the progress of a run. notify.Spinner implements it.
type Reporter interface {
	Start(text string)
	// SetText replaces the text and keeps the percentage.
	SetText(text string)
	Progress(text string, percent int)
	Succeed(format string, args ...any)
	Fail(format string, args ...any)
}

// StepError records the failure of one step.
type StepError struct {
	Step string
	Err  error
}

// Error implements error.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStepFailed, e.Step, e.Err)
}

// Unwrap exposes both ErrStepFailed and the step's own error.
func (e *StepError) Unwrap() []error {
	return []error{ErrStepFailed, e.Err}
}

// Result is the outcome of a run.
type Result struct {
	State    State
	Progress Progress
	// Failures holds one entry per failed step, in execution order.
	Failures []*StepError
}

// Err joins the step failures, or returns nil for a completed run.
func (r Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}

	errs := make([]error, 0, len(r.Failures))
	for _, failure := range r.Failures {
		errs = append(errs, failure)
	}

	return errors.Join(errs...)
}

// Runner executes steps in order.
type Runner struct {
	steps    []Step
	policy   FailurePolicy
	reporter Reporter
	logger   logrus.FieldLogger
	timer    timer.Timer
	done     string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPolicy sets the failure policy; Abort by default.
func WithPolicy(policy FailurePolicy) RunnerOption {
	return func(r *Runner) {
		r.policy = policy
	}
}

// WithReporter sets where progress is shown.
func WithReporter(reporter Reporter) RunnerOption {
	return func(r *Runner) {
		r.reporter = reporter
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithTimer sets the timer whose stages follow the steps.
func WithTimer(tmr timer.Timer) RunnerOption {
	return func(r *Runner) {
		r.timer = tmr
	}
}

// WithDoneMessage sets the text reported when every step succeeded.
func WithDoneMessage(message string) RunnerOption {
	return func(r *Runner) {
		r.done = message
	}
}

// NewRunner creates a Runner for steps.
func NewRunner(steps []Step, opts ...RunnerOption) *Runner {
	runner := &Runner{steps: steps, done: "Setup complete"}

	for _, opt := range opts {
		opt(runner)
	}

	if runner.reporter == nil {
		runner.reporter = discardReporter{}
	}

	if runner.logger == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		runner.logger = discard
	}

	return runner
}

// Plan returns the steps included in a run, evaluating each predicate once.
func (r *Runner) Plan() []Step {
	plan := make([]Step, 0, len(r.steps))

	for _, step := range r.steps {
		if step.Include == nil || step.Include() {
			plan = append(plan, step)
		}
	}

	return plan
}

// Run executes the plan in ws. The total is fixed before the first step and the completed
// count grows only after a step succeeds.
func (r *Runner) Run(ctx context.Context, ws Workspace) Result {
	plan := r.Plan()
	result := Result{State: Running, Progress: Progress{Total: len(plan)}}

	if r.timer != nil {
		r.timer.Start()
	}

	r.logger.WithField("steps", len(plan)).Debug("pipeline started")

	for i, step := range plan {
		if i == 0 {
			r.reporter.Start(step.Name)
		}

		r.reporter.Progress(step.Name, result.Progress.Percent())

		if r.timer != nil && i > 0 {
			r.timer.NewStage()
		}

		err := r.runStep(ctx, step, ws)
		if err != nil {
			failure := &StepError{Step: step.Name, Err: err}
			result.Failures = append(result.Failures, failure)

			entry := r.logger.WithError(err).WithField("step", step.Name)
			if r.policy == Abort {
				entry.Error("step failed")

				break
			}

			entry.Warn("step failed, continuing")

			continue
		}

		result.Progress.Completed++
		r.logger.WithField("step", step.Name).Debug("step completed")
	}

	if len(result.Failures) > 0 {
		result.State = Failed
		r.reporter.Fail("%s", result.Failures[0].Error())

		return result
	}

	result.State = Completed
	r.reporter.Progress(r.done, result.Progress.Percent())
	r.reporter.Succeed("%s", r.done)

	return result
}

func (r *Runner) runStep(ctx context.Context, step Step, ws Workspace) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("cancelled before %s: %w", step.Name, err)
	}

	return step.Run(ctx, ws)
}

type discardReporter struct{}

func (discardReporter) Start(string) {}
func (discardReporter) SetText(string) {}
func (discardReporter) Progress(string, int) {}
func (discardReporter) Succeed(string, ...any) {}
func (discardReporter) Fail(string, ...any) {}
