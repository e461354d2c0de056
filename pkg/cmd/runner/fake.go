package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeResponse is the scripted outcome of a command run by FakeRunner.
type FakeResponse struct {
	Result CommandResult
	Err    error
	// Effect runs before the response is returned, e.g. to create files the real tool would.
	Effect func(cmd Command) error
}

// FakeRunner records commands instead of executing them. Responses are matched by
// command-line prefix; unmatched commands succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	responses []fakeRule
	calls     []Command
	started   []Command
	paths     map[string]string
}

type fakeRule struct {
	prefix   string
	response FakeResponse
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{paths: map[string]string{}}
}

// On scripts the response for every command whose command line starts with prefix.
// Later rules take precedence.
func (f *FakeRunner) On(prefix string, response FakeResponse) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.responses = append(f.responses, fakeRule{prefix: prefix, response: response})

	return f
}

// WithPath makes LookPath resolve name.
func (f *FakeRunner) WithPath(name, path string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths[name] = path

	return f
}

// Run records cmd and returns the scripted response.
func (f *FakeRunner) Run(_ context.Context, cmd Command) (CommandResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	response := f.match(cmd)
	f.mu.Unlock()

	if response.Effect != nil {
		err := response.Effect(cmd)
		if err != nil {
			return response.Result, err
		}
	}

	return response.Result, response.Err
}

// Start records cmd as launched and returns the scripted error.
func (f *FakeRunner) Start(_ context.Context, cmd Command) error {
	f.mu.Lock()
	f.started = append(f.started, cmd)
	response := f.match(cmd)
	f.mu.Unlock()

	return response.Err
}

// LookPath resolves names registered with WithPath.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path, ok := f.paths[name]
	if !ok {
		return "", fmt.Errorf("look up %s: executable file not found in $PATH", name)
	}

	return path, nil
}

// Calls returns the command lines passed to Run, in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return render(f.calls)
}

// Commands returns the commands passed to Run, in order.
func (f *FakeRunner) Commands() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Command(nil), f.calls...)
}

// Started returns the command lines passed to Start, in order.
func (f *FakeRunner) Started() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return render(f.started)
}

func (f *FakeRunner) match(cmd Command) FakeResponse {
	line := cmd.String()

	for i := len(f.responses) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, f.responses[i].prefix) {
			return f.responses[i].response
		}
	}

	return FakeResponse{}
}

func render(cmds []Command) []string {
	out := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, cmd.String())
	}

	return out
}
