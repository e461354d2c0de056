package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/saasfoundry/sf/pkg/svc/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStep = errors.New("step exploded")

type recordingReporter struct {
	mu       sync.Mutex
	percents []int
	texts    []string
	outcome  string
}

func (r *recordingReporter) Start(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.texts = append(r.texts, text)
}

func (r *recordingReporter) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.texts = append(r.texts, text)
}

func (r *recordingReporter) Progress(text string, percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.texts = append(r.texts, text)
	r.percents = append(r.percents, percent)
}

func (r *recordingReporter) Succeed(format string, args ...any) {
	r.outcome = "✔ " + fmt.Sprintf(format, args...)
}

func (r *recordingReporter) Fail(format string, args ...any) {
	r.outcome = "✗ " + fmt.Sprintf(format, args...)
}

func step(name string, err error, ran *[]string) pipeline.Step {
	return pipeline.Step{
		Name: name,
		Run: func(context.Context, pipeline.Workspace) error {
			*ran = append(*ran, name)

			return err
		},
	}
}

func TestProgress_Percent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, pipeline.Progress{Completed: 0, Total: 3}.Percent())
	assert.Equal(t, 33, pipeline.Progress{Completed: 1, Total: 3}.Percent())
	assert.Equal(t, 66, pipeline.Progress{Completed: 2, Total: 3}.Percent())
	assert.Equal(t, 75, pipeline.Progress{Completed: 3, Total: 4}.Percent())
	assert.Equal(t, 100, pipeline.Progress{Completed: 4, Total: 4}.Percent())
	assert.Equal(t, 100, pipeline.Progress{}.Percent())
}

func TestRunner_ProgressIsMonotonicAndReachesHundred(t *testing.T) {
	t.Parallel()

	var ran []string

	reporter := &recordingReporter{}
	runner := pipeline.NewRunner([]pipeline.Step{
		step("one", nil, &ran),
		step("two", nil, &ran),
		step("three", nil, &ran),
	}, pipeline.WithReporter(reporter), pipeline.WithDoneMessage("done"))

	result := runner.Run(context.Background(), pipeline.Workspace{Root: t.TempDir()})

	require.NoError(t, result.Err())
	assert.Equal(t, pipeline.Completed, result.State)
	assert.Equal(t, pipeline.Progress{Completed: 3, Total: 3}, result.Progress)
	assert.Equal(t, []int{0, 33, 66, 100}, reporter.percents)
	assert.IsNonDecreasing(t, reporter.percents)
	assert.Equal(t, "✔ done", reporter.outcome)
}

func TestRunner_AbortStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	var ran []string

	reporter := &recordingReporter{}
	runner := pipeline.NewRunner([]pipeline.Step{
		step("one", nil, &ran),
		step("two", errStep, &ran),
		step("three", nil, &ran),
	}, pipeline.WithReporter(reporter))

	result := runner.Run(context.Background(), pipeline.Workspace{})

	assert.Equal(t, pipeline.Failed, result.State)
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Equal(t, pipeline.Progress{Completed: 1, Total: 3}, result.Progress)
	require.ErrorIs(t, result.Err(), errStep)
	require.ErrorIs(t, result.Err(), pipeline.ErrStepFailed)
	assert.Equal(t, "✗ step failed: two: step exploded", reporter.outcome)
}

func TestRunner_ContinueRunsEveryStep(t *testing.T) {
	t.Parallel()

	var ran []string

	runner := pipeline.NewRunner([]pipeline.Step{
		step("one", errStep, &ran),
		step("two", nil, &ran),
		step("three", errStep, &ran),
	}, pipeline.WithPolicy(pipeline.Continue))

	result := runner.Run(context.Background(), pipeline.Workspace{})

	assert.Equal(t, pipeline.Failed, result.State)
	assert.Equal(t, []string{"one", "two", "three"}, ran)
	assert.Len(t, result.Failures, 2)
	assert.Equal(t, 1, result.Progress.Completed)
}

func TestRunner_IncludeIsEvaluatedAtPlanTime(t *testing.T) {
	t.Parallel()

	var (
		ran   []string
		calls int
	)

	skipped := step("skipped", nil, &ran)
	skipped.Include = func() bool {
		calls++

		return false
	}

	runner := pipeline.NewRunner([]pipeline.Step{step("one", nil, &ran), skipped, step("two", nil, &ran)})

	result := runner.Run(context.Background(), pipeline.Workspace{})

	require.NoError(t, result.Err())
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Equal(t, 2, result.Progress.Total)
	assert.Equal(t, 1, calls)
}

func TestRunner_CancelledContextFailsStep(t *testing.T) {
	t.Parallel()

	var ran []string

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := pipeline.NewRunner([]pipeline.Step{step("one", nil, &ran)}).Run(ctx, pipeline.Workspace{})

	assert.Equal(t, pipeline.Failed, result.State)
	assert.Empty(t, ran)
	require.ErrorIs(t, result.Err(), context.Canceled)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", pipeline.Idle.String())
	assert.Equal(t, "running", pipeline.Running.String())
	assert.Equal(t, "completed", pipeline.Completed.String())
	assert.Equal(t, "failed", pipeline.Failed.String())
}
