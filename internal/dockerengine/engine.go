// Package dockerengine is the Container Manager (C4): it owns the
// lifecycle of one pair's container and image — create, start, inject
// files, exec with streamed output, read a file back out, and destroy.
//
// It wraps github.com/docker/docker/client the same way the teacher CLI's
// pkg/whail.Engine wraps it: a held API client plus managed-label helpers
// (labels.go) whose output callers pass in when creating a container or
// building an image, so every resource benchctl creates is tagged and
// therefore identifiable (and sweepable) even if a run is interrupted
// mid-pair.
package dockerengine

import (
	"context"
	"strings"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/client"

	"github.com/agentbench/harness/internal/harnesserr"
)

// Engine wraps a Docker API client with benchctl's label conventions.
type Engine struct {
	cli *client.Client
}

// New connects to the Docker daemon using the ambient environment
// (DOCKER_HOST, DOCKER_CERT_PATH, etc.), negotiating the API version, and
// verifies connectivity with a Ping.
func New(ctx context.Context) (*Engine, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindContainerFailed, "connect to docker daemon", err)
	}

	if _, err := cli.Ping(ctx); err != nil {
		return nil, harnesserr.New(harnesserr.KindContainerFailed, "ping docker daemon", err)
	}

	return &Engine{cli: cli}, nil
}

// Close releases the underlying Docker client connection.
func (e *Engine) Close() error {
	return e.cli.Close()
}

// isNotFound classifies an error as "resource not found", the same layered
// check the teacher's internal/docker.Client uses: first the structured
// containerd/errdefs classification, then a string fallback ("not found",
// "No such") for errors that don't carry that structure. Destroy uses it to
// ignore already-removed resources; ReadFile does not use it, since a
// missing file there shows up as a non-zero `cat` exit code, not an error.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if cerrdefs.IsNotFound(err) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "not found") || strings.Contains(msg, "No such")
}
