// Package errorhandler runs cobra commands and turns their failures into a single error
// carrying cobra's output and a remediation hint.
package errorhandler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Hint suggests what to do when a command fails with Target anywhere in its chain.
type Hint struct {
	Target error
	Text   string
}

// Executor runs a cobra command, capturing its error stream.
type Executor struct {
	hints []Hint
}

// NewExecutor creates an Executor. The first matching hint wins.
func NewExecutor(hints ...Hint) *Executor {
	return &Executor{hints: hints}
}

// Execute runs cmd. On failure it returns a *CommandError holding the normalized stderr
// output of cobra, the original error and the matching hint, if any.
func (e *Executor) Execute(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var errBuf bytes.Buffer

	originalErrWriter := cmd.ErrOrStderr()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(context.WithValue(ctx, diagnosticsKey{}, originalErrWriter))
	cmd.SetErr(&errBuf)
	defer cmd.SetErr(originalErrWriter)

	err := cmd.Execute()
	if err == nil {
		return nil
	}

	return &CommandError{
		message: Normalize(errBuf.String()),
		cause:   err,
		hint:    e.hintFor(err),
	}
}

type diagnosticsKey struct{}

// DiagnosticWriter returns the error stream of cmd as it was before an Executor started
// capturing it, or cmd.ErrOrStderr when cmd does not run under an Executor.
func DiagnosticWriter(cmd *cobra.Command) io.Writer {
	if ctx := cmd.Context(); ctx != nil {
		if writer, ok := ctx.Value(diagnosticsKey{}).(io.Writer); ok {
			return writer
		}
	}

	return cmd.ErrOrStderr()
}

func (e *Executor) hintFor(err error) string {
	for _, hint := range e.hints {
		if hint.Target != nil && errors.Is(err, hint.Target) {
			return hint.Text
		}
	}

	return ""
}

// CommandError is a failed command execution.
type CommandError struct {
	message string
	cause   error
	hint    string
}

// Error joins the captured output and the cause without repeating the cause.
func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message != "":
		if strings.Contains(e.message, e.cause.Error()) {
			return e.message
		}

		return e.message + ": " + e.cause.Error()
	default:
		return e.cause.Error()
	}
}

// Hint returns the remediation for the failure, or "".
func (e *CommandError) Hint() string {
	if e == nil {
		return ""
	}

	return e.hint
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Normalize trims cobra's error output, drops its "Error: " prefix and keeps the
// following usage lines.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	lines[0] = strings.TrimPrefix(strings.TrimSpace(lines[0]), "Error: ")

	return strings.Join(lines, "\n")
}
