package docker

import (
	"context"
	"fmt"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/saasfoundry/sf/pkg/svc/readiness"
)

const (
	stateExited     = "exited"
	stateDead       = "dead"
	healthHealthy   = "healthy"
	healthUnhealthy = "unhealthy"
)

// WaitHealthy polls the container name until its health check reports healthy.
// Containers without a health check count as healthy once running. A missing container is
// polled again since compose may still be creating it.
func (e *Engine) WaitHealthy(ctx context.Context, name string, timeout, interval time.Duration) error {
	return readiness.PollForReadiness(ctx, timeout, interval, func(ctx context.Context) (bool, error) {
		inspect, err := e.client.ContainerInspect(ctx, name)
		if cerrdefs.IsNotFound(err) {
			return false, nil
		}

		if err != nil {
			return false, fmt.Errorf("failed to inspect container %s: %w", name, err)
		}

		return containerReady(name, inspect)
	})
}

func containerReady(name string, inspect container.InspectResponse) (bool, error) {
	if inspect.ContainerJSONBase == nil || inspect.State == nil {
		return false, nil
	}

	state := inspect.State

	switch {
	case string(state.Status) == stateExited || string(state.Status) == stateDead:
		return false, fmt.Errorf("%w: %s is %s", ErrContainerUnhealthy, name, state.Status)
	case state.Health == nil:
		return state.Running, nil
	case string(state.Health.Status) == healthUnhealthy:
		return false, fmt.Errorf("%w: %s", ErrContainerUnhealthy, name)
	default:
		return string(state.Health.Status) == healthHealthy, nil
	}
}

// HostPort returns the host port published for port (e.g. "5432/tcp") of container name.
func (e *Engine) HostPort(ctx context.Context, name string, port string) (string, error) {
	inspect, err := e.client.ContainerInspect(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to inspect container %s: %w", name, err)
	}

	containerPort, err := nat.NewPort(nat.SplitProtoPort(port))
	if err != nil {
		return "", fmt.Errorf("invalid port %s: %w", port, err)
	}

	if inspect.NetworkSettings == nil {
		return "", fmt.Errorf("%w: %s on %s", ErrPortNotPublished, port, name)
	}

	for _, binding := range inspect.NetworkSettings.Ports[containerPort] {
		if binding.HostPort != "" {
			return binding.HostPort, nil
		}
	}

	return "", fmt.Errorf("%w: %s on %s", ErrPortNotPublished, port, name)
}
