// Package runner executes external tools (npm, git, docker, terminal emulators).
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrCommandFailed is returned when an external command exits unsuccessfully.
var ErrCommandFailed = errors.New("command failed")

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current process directory.
	Dir string
	// Env is appended to the current environment.
	Env []string
}

// String renders the command line for messages and logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandResult captures the output collected while a command ran.
// Both fields hold everything written before a failure too.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs external commands.
type CommandRunner interface {
	// Run executes cmd and waits for it to exit.
	Run(ctx context.Context, cmd Command) (CommandResult, error)
	// Start launches cmd without waiting for it to exit.
	Start(ctx context.Context, cmd Command) error
	// LookPath resolves an executable on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
// Output is captured; each line is also logged at debug level so --verbose shows it live.
type ExecRunner struct {
	logger logrus.FieldLogger
}

// NewExecRunner creates a runner logging to logger (discarded when nil).
func NewExecRunner(logger logrus.FieldLogger) *ExecRunner {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &ExecRunner{logger: logger}
}

// Run executes cmd and returns its captured output.
// A non-zero exit yields an error wrapping ErrCommandFailed that quotes the last stderr line.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (CommandResult, error) {
	var outBuf, errBuf bytes.Buffer

	logWriter := r.logger.WithField("cmd", cmd.Name).WriterLevel(logrus.DebugLevel)
	defer func() { _ = logWriter.Close() }()

	proc := r.build(ctx, cmd)
	proc.Stdout = io.MultiWriter(&outBuf, logWriter)
	proc.Stderr = io.MultiWriter(&errBuf, logWriter)

	r.logger.WithField("dir", cmd.Dir).Debugf("running %s", cmd)

	runErr := proc.Run()

	result := CommandResult{
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		ExitCode: proc.ProcessState.ExitCode(),
	}

	if runErr != nil {
		return result, commandError(cmd, result, runErr)
	}

	return result, nil
}

// Start launches cmd detached from the caller's output and reaps it in the background.
// The process outlives ctx.
func (r *ExecRunner) Start(ctx context.Context, cmd Command) error {
	proc := r.build(context.WithoutCancel(ctx), cmd)

	r.logger.WithField("dir", cmd.Dir).Debugf("starting %s", cmd)

	err := proc.Start()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCommandFailed, cmd, err)
	}

	go func() {
		waitErr := proc.Wait()
		if waitErr != nil {
			r.logger.WithError(waitErr).Debugf("%s exited", cmd)
		}
	}()

	return nil
}

// LookPath resolves name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("look up %s: %w", name, err)
	}

	return path, nil
}

func (r *ExecRunner) build(ctx context.Context, cmd Command) *exec.Cmd {
	//nolint:gosec // commands are assembled from fixed templates and validated answers
	proc := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	proc.Dir = cmd.Dir

	if len(cmd.Env) > 0 {
		proc.Env = append(os.Environ(), cmd.Env...)
	}

	return proc
}

func commandError(cmd Command, result CommandResult, cause error) error {
	detail := lastLine(result.Stderr)
	if detail == "" {
		detail = lastLine(result.Stdout)
	}

	if detail == "" {
		return fmt.Errorf("%w: %s: %w", ErrCommandFailed, cmd, cause)
	}

	return fmt.Errorf("%w: %s: %w: %s", ErrCommandFailed, cmd, cause, detail)
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	return strings.TrimSpace(lines[len(lines)-1])
}
