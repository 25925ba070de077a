package dockerengine

import (
	"bytes"
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/agentbench/harness/internal/harnesserr"
)

// ExecOptions configures Exec.
type ExecOptions struct {
	Cmd []string
	Env []string
	// Log receives a live copy of combined stdout/stderr as it arrives, so
	// callers can stream it straight to a run-log file. Exec also keeps the
	// whole transcript in memory for ExecResult.Output, whether or not Log
	// is set.
	Log io.Writer
}

// ExecResult is what's left once a command has finished: its exit code and
// the combined output, returned for callers (like the test runner) that
// need to inspect it in addition to whatever was written to Log.
type ExecResult struct {
	ExitCode int
	Output   string
}

// Exec runs a command inside an already-started container and streams its
// combined stdout/stderr to opts.Log as it arrives, demultiplexing Docker's
// multiplexed exec stream with stdcopy the same way the teacher CLI's
// container exec command does. Every chunk read from the stream is appended
// to an in-memory buffer and written to Log; the buffer holds the complete
// output until the command exits and is returned in ExecResult.Output, so
// memory use grows with the size of the command's output.
func (e *Engine) Exec(ctx context.Context, containerID string, opts ExecOptions) (*ExecResult, error) {
	execCfg := container.ExecOptions{
		Cmd:          opts.Cmd,
		Env:          opts.Env,
		AttachStdout: true,
		AttachStderr: true,
		Tty:          false,
	}

	created, err := e.cli.ContainerExecCreate(ctx, containerID, execCfg)
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindExecIOError, "create exec", err)
	}

	attach, err := e.cli.ContainerExecAttach(ctx, created.ID, container.ExecStartOptions{Tty: false})
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindExecIOError, "attach exec", err)
	}
	defer attach.Close()

	var out bytes.Buffer
	var dest io.Writer = &out
	if opts.Log != nil {
		dest = io.MultiWriter(&out, opts.Log)
	}

	if _, err := stdcopy.StdCopy(dest, dest, attach.Reader); err != nil {
		return nil, harnesserr.New(harnesserr.KindExecIOError, "stream exec output", err)
	}

	inspect, err := e.cli.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindExecIOError, "inspect exec", err)
	}

	return &ExecResult{ExitCode: inspect.ExitCode, Output: out.String()}, nil
}

// ReadFile reads a single file out of the container via `cat`, rather than
// round-tripping through the tar-based CopyFromContainer API: test-result
// and scorecard files are small and the harness only ever needs their
// bytes, never their file metadata. A non-zero exit code means the file
// doesn't exist and is reported as such, not as an error.
func (e *Engine) ReadFile(ctx context.Context, containerID, path string) (content []byte, present bool, err error) {
	result, err := e.Exec(ctx, containerID, ExecOptions{Cmd: []string{"cat", path}})
	if err != nil {
		return nil, false, err
	}
	if result.ExitCode != 0 {
		return nil, false, nil
	}
	return []byte(result.Output), true, nil
}
