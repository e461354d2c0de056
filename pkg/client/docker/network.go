package docker

import (
	"context"
	"fmt"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/network"
)

// EnsureNetwork creates the bridge network name unless it already exists.
// It reports whether the network was created by this call.
func (e *Engine) EnsureNetwork(ctx context.Context, name string) (bool, error) {
	_, err := e.client.NetworkInspect(ctx, name, network.InspectOptions{})
	if err == nil {
		return false, nil
	}

	if !cerrdefs.IsNotFound(err) {
		return false, fmt.Errorf("failed to inspect network %s: %w", name, err)
	}

	_, err = e.client.NetworkCreate(ctx, name, network.CreateOptions{Driver: "bridge"})
	if cerrdefs.IsConflict(err) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to create network %s: %w", name, err)
	}

	return true, nil
}
