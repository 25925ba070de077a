package dockerengine

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/docker/docker/api/types/build"
	units "github.com/docker/go-units"

	"github.com/agentbench/harness/internal/harnesserr"
)

// buildEvent is the subset of Docker's JSON build-progress stream the
// harness cares about: a plain status line, or a terminal error.
type buildEvent struct {
	Stream string `json:"stream"`
	Error  string `json:"error"`
}

// BuildOptions configures BuildImage.
type BuildOptions struct {
	Tag        string
	Dockerfile []byte // rendered Dockerfile content, named "Dockerfile" in the build context
	Labels     map[string]string
	NoCache    bool
	// Log receives each build-progress line as it arrives.
	Log io.Writer
}

// BuildImage builds an image from a single rendered Dockerfile using the
// classic (non-BuildKit) ImageBuild API, the same path the teacher CLI's
// test harness uses for simple, single-file build contexts: no bind-mounted
// source tree is needed because the whole build context is just the
// rendered Dockerfile.
func (e *Engine) BuildImage(ctx context.Context, opts BuildOptions) error {
	buildCtx, err := tarDockerfile(opts.Dockerfile)
	if err != nil {
		return harnesserr.New(harnesserr.KindBuildFailed, "create build context", err)
	}

	resp, err := e.cli.ImageBuild(ctx, buildCtx, build.ImageBuildOptions{
		Tags:        []string{opts.Tag},
		Dockerfile:  "Dockerfile",
		NoCache:     opts.NoCache,
		Labels:      opts.Labels,
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return harnesserr.New(harnesserr.KindBuildFailed, "start image build", err)
	}
	defer resp.Body.Close()

	return processBuildOutput(resp.Body, opts.Log)
}

// tarDockerfile wraps a single Dockerfile's bytes in a minimal tar archive
// suitable for use as a build context.
func tarDockerfile(dockerfile []byte) (io.Reader, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	hdr := &tar.Header{Name: "Dockerfile", Mode: 0o644, Size: int64(len(dockerfile))}
	if err := tw.WriteHeader(hdr); err != nil {
		return nil, err
	}
	if _, err := tw.Write(dockerfile); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}

// processBuildOutput decodes Docker's newline-delimited JSON build-progress
// stream, forwarding each status line to log and returning the last error
// event as a Go error. The human-readable size helper from docker/go-units
// is used for a closing "build output: <size>" line giving the total size of
// the forwarded status text, the
// same library the teacher CLI uses anywhere it reports byte counts to a
// human.
func processBuildOutput(r io.Reader, log io.Writer) error {
	dec := json.NewDecoder(r)
	var lastErr error
	var total int64

	for {
		var evt buildEvent
		if err := dec.Decode(&evt); err != nil {
			if err == io.EOF {
				break
			}
			return harnesserr.New(harnesserr.KindBuildFailed, "decode build output", err)
		}
		if evt.Error != "" {
			lastErr = harnesserr.New(harnesserr.KindBuildFailed, "image build", errString(evt.Error))
			continue
		}
		if evt.Stream != "" {
			total += int64(len(evt.Stream))
			if log != nil {
				io.WriteString(log, evt.Stream)
			}
		}
	}

	if log != nil && total > 0 {
		io.WriteString(log, "build output: "+units.HumanSize(float64(total))+"\n")
	}

	return lastErr
}

type errString string

func (e errString) Error() string { return string(e) }
