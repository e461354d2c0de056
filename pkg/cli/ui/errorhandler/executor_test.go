package errorhandler_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/saasfoundry/sf/pkg/cli/ui/errorhandler"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTestBoom        = errors.New("boom")
	errOriginalFailure = errors.New("original failure")
	errProjectExists   = errors.New("project directory already exists")
)

func failingCommand(err error, stderr string) *cobra.Command {
	return &cobra.Command{
		Use:           "test",
		SilenceErrors: stderr != "",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stderr != "" {
				cmd.PrintErrln(stderr)
			}

			return err
		},
	}
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))
	require.NoError(t, errorhandler.NewExecutor().Execute(nil))
}

func TestExecute_InvalidSubcommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "test"}
	root.AddCommand(&cobra.Command{Use: "valid"})
	root.SetArgs([]string{"invalid"})

	err := errorhandler.NewExecutor().Execute(root)
	require.Error(t, err)

	assert.Contains(t, err.Error(), `unknown command "invalid" for "test"`)
	assert.NotContains(t, err.Error(), "Error: ")
	assert.Contains(t, err.Error(), "Run 'test --help' for usage.")
}

func TestCommandError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		stderr string
		want   string
	}{
		{name: "cause only", err: errTestBoom, want: "boom"},
		{name: "distinct output", err: errOriginalFailure, stderr: "normalized", want: "normalized: original failure"},
		{
			name:   "output includes cause",
			err:    fmt.Errorf("boom: %w", errOriginalFailure),
			stderr: "boom: original failure",
			want:   "boom: original failure",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := errorhandler.NewExecutor().Execute(failingCommand(testCase.err, testCase.stderr))

			var commandErr *errorhandler.CommandError
			require.ErrorAs(t, err, &commandErr)
			assert.Equal(t, testCase.want, commandErr.Error())
			require.ErrorIs(t, err, testCase.err)
		})
	}
}

func TestCommandError_NilAndEmpty(t *testing.T) {
	t.Parallel()

	var nilErr *errorhandler.CommandError

	assert.Empty(t, nilErr.Error())
	assert.Empty(t, nilErr.Hint())
	require.NoError(t, nilErr.Unwrap())
	assert.Empty(t, (&errorhandler.CommandError{}).Error())
}

func TestExecute_AttachesMatchingHint(t *testing.T) {
	t.Parallel()

	executor := errorhandler.NewExecutor(
		errorhandler.Hint{Target: errTestBoom, Text: "not this one"},
		errorhandler.Hint{Target: errProjectExists, Text: "choose another project name"},
	)

	err := executor.Execute(failingCommand(fmt.Errorf("setup: %w", errProjectExists), ""))

	var commandErr *errorhandler.CommandError
	require.ErrorAs(t, err, &commandErr)
	assert.Equal(t, "choose another project name", commandErr.Hint())

	err = executor.Execute(failingCommand(errOriginalFailure, ""))
	require.ErrorAs(t, err, &commandErr)
	assert.Empty(t, commandErr.Hint())
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Empty(t, errorhandler.Normalize("  \n"))
	assert.Equal(t, "bad flag\nRun 'sf --help' for usage.",
		errorhandler.Normalize("Error: bad flag\nRun 'sf --help' for usage.\n"))
}

func TestDiagnosticWriter_BypassesCapture(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(errorhandler.DiagnosticWriter(cmd), "diagnostic line")

			return err
		},
	}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{})

	require.NoError(t, errorhandler.NewExecutor().Execute(cmd))

	assert.Equal(t, "diagnostic line\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestDiagnosticWriter_OutsideExecutor(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer

	cmd := &cobra.Command{Use: "test"}
	cmd.SetErr(&stderr)

	assert.Same(t, &stderr, errorhandler.DiagnosticWriter(cmd))
}
