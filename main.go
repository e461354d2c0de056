// Package main is the entry point of the sf command line.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/saasfoundry/sf/internal/buildmeta"
	"github.com/saasfoundry/sf/pkg/cli/cmd"
	"github.com/saasfoundry/sf/pkg/cli/ui/errorhandler"
	"github.com/saasfoundry/sf/pkg/utils/notify"
)

func main() {
	exitCode := runSafely(os.Args[1:], runWithArgs, os.Stderr)

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

//nolint:nonamedreturns // Named return simplifies panic recovery logic.
func runSafely(args []string, runner func([]string) int, errWriter io.Writer) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			notify.WriteMessage(notify.Message{
				Type:    notify.ErrorType,
				Content: fmt.Sprintf("panic recovered: %v\n%s", r, debug.Stack()),
				Writer:  errWriter,
			})

			exitCode = 1
		}
	}()

	return runner(args)
}

func runWithArgs(args []string) int {
	rootCmd := cmd.NewRootCmd(buildmeta.Version, buildmeta.Commit, buildmeta.Date)
	rootCmd.SetArgs(args)

	err := cmd.Execute(rootCmd)
	if err == nil {
		return 0
	}

	notify.Errorf(rootCmd.ErrOrStderr(), "%v", err)

	var commandErr *errorhandler.CommandError
	if errors.As(err, &commandErr) && commandErr.Hint() != "" {
		notify.Infof(rootCmd.ErrOrStderr(), "%s", commandErr.Hint())
	}

	return 1
}
