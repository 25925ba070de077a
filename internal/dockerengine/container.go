package dockerengine

import (
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"

	"github.com/agentbench/harness/internal/harnesserr"
)

// CreateOptions configures CreateAndStart.
type CreateOptions struct {
	ImageTag string
	Name     string
	Env      map[string]string // rendered to "KEY=VALUE" pairs
	Labels   map[string]string
}

// Container is the handle the orchestrator holds for the lifetime of a
// pair: just enough to exec into it, copy files to/from it, and tear it
// down.
type Container struct {
	ID   string
	Name string
}

// CreateAndStart creates a detached container from the given image with an
// open stdin and no TTY (the harness never needs an interactive session —
// it only ever execs into the container afterward), and starts it.
func (e *Engine) CreateAndStart(ctx context.Context, opts CreateOptions) (*Container, error) {
	env := make([]string, 0, len(opts.Env))
	for k, v := range opts.Env {
		env = append(env, k+"="+v)
	}

	cfg := &container.Config{
		Image:        opts.ImageTag,
		Env:          env,
		Labels:       opts.Labels,
		Tty:          false,
		OpenStdin:    true,
		AttachStdin:  false,
		AttachStdout: false,
		AttachStderr: false,
		// The agent and test scripts run entirely through Exec, so the
		// container's own entrypoint just needs to keep it alive.
		Entrypoint: []string{"sleep"},
		Cmd:        []string{"infinity"},
		WorkingDir: "/project",
	}
	hostCfg := &container.HostConfig{}

	resp, err := e.cli.ContainerCreate(ctx, cfg, hostCfg, nil, nil, opts.Name)
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindContainerFailed, "create container", err)
	}

	if err := e.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return nil, harnesserr.New(harnesserr.KindContainerFailed, "start container", err)
	}

	return &Container{ID: resp.ID, Name: opts.Name}, nil
}

// Destroy force-removes the container and then removes its image. Both
// steps are attempted even if the first fails — teardown is best-effort and
// every failure is returned so the caller can log it, but neither step is
// retried and neither blocks the other from running.
func (e *Engine) Destroy(ctx context.Context, containerID, imageTag string) (containerErr, imageErr error) {
	if containerID != "" {
		if err := e.cli.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); err != nil && !isNotFound(err) {
			containerErr = err
		}
	}
	if imageTag != "" {
		if _, err := e.cli.ImageRemove(ctx, imageTag, image.RemoveOptions{Force: true}); err != nil && !isNotFound(err) {
			imageErr = err
		}
	}
	return containerErr, imageErr
}
