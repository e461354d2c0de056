package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
)

// Error definitions for container engine operations.
var (
	// ErrAPIClientNil is returned when apiClient is nil.
	ErrAPIClientNil = errors.New("apiClient cannot be nil")
	// ErrContainerUnhealthy is returned when a container reports an unhealthy or stopped state.
	ErrContainerUnhealthy = errors.New("container is unhealthy")
	// ErrPortNotPublished is returned when a container port has no host binding.
	ErrPortNotPublished = errors.New("container port is not published")
)

// API is the part of the Docker engine client used by Engine.
type API interface {
	NetworkInspect(ctx context.Context, networkID string, options network.InspectOptions) (network.Inspect, error)
	NetworkCreate(ctx context.Context, name string, options network.CreateOptions) (network.CreateResponse, error)
	ContainerInspect(ctx context.Context, containerID string) (container.InspectResponse, error)
	Close() error
}

// Engine performs the container operations needed to bring a project up.
type Engine struct {
	client API
}

// NewEngine creates an Engine on top of apiClient.
func NewEngine(apiClient API) (*Engine, error) {
	if apiClient == nil {
		return nil, ErrAPIClientNil
	}

	return &Engine{client: apiClient}, nil
}

// GetDockerClient creates a Docker client using environment configuration.
func GetDockerClient() (client.APIClient, error) {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return dockerClient, nil
}

// NewEngineFromEnv creates an Engine with a client configured from the environment.
func NewEngineFromEnv() (*Engine, error) {
	dockerClient, err := GetDockerClient()
	if err != nil {
		return nil, err
	}

	return NewEngine(dockerClient)
}

// Close releases the Docker client resources.
func (e *Engine) Close() error {
	err := e.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close docker client: %w", err)
	}

	return nil
}
