package docker

import (
	"context"
	"fmt"

	"github.com/saasfoundry/sf/pkg/cmd/runner"
)

// Compose drives docker compose for one compose file.
type Compose struct {
	Runner runner.CommandRunner
	// File is the compose file; empty lets compose pick the default of Dir.
	File string
	// Dir is the working directory of every invocation.
	Dir string
}

// Up starts services (all when empty) in the background.
func (c Compose) Up(ctx context.Context, services ...string) error {
	return c.run(ctx, append([]string{"up", "-d"}, services...))
}

// Stop stops services without removing them.
func (c Compose) Stop(ctx context.Context, services ...string) error {
	return c.run(ctx, append([]string{"stop"}, services...))
}

// Down removes services; removeVolumes also drops their named volumes.
func (c Compose) Down(ctx context.Context, removeVolumes bool, services ...string) error {
	args := []string{"down"}
	if removeVolumes {
		args = append(args, "-v")
	}

	return c.run(ctx, append(args, services...))
}

func (c Compose) run(ctx context.Context, args []string) error {
	full := []string{"compose"}
	if c.File != "" {
		full = append(full, "-f", c.File)
	}

	full = append(full, args...)

	_, err := c.Runner.Run(ctx, runner.Command{Name: "docker", Args: full, Dir: c.Dir})
	if err != nil {
		return fmt.Errorf("docker compose %s failed: %w", args[0], err)
	}

	return nil
}
