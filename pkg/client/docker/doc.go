// Package docker wraps the Docker engine API and the docker compose CLI for the
// project's development containers.
package docker
