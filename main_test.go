package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSafely_ReturnsRunnerExitCode(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	code := runSafely([]string{"new"}, func(args []string) int {
		assert.Equal(t, []string{"new"}, args)

		return 3
	}, &errOut)

	assert.Equal(t, 3, code)
	assert.Empty(t, errOut.String())
}

func TestRunSafely_RecoversPanics(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	code := runSafely(nil, func([]string) int {
		panic("kaboom")
	}, &errOut)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "✗ panic recovered: kaboom")
}
