package dockerengine

import (
	"archive/tar"
	"bytes"
	"context"

	"github.com/docker/docker/api/types/container"

	"github.com/agentbench/harness/internal/harnesserr"
)

// InjectFile is one file to place inside a container, relative to its
// destination directory.
type InjectFile struct {
	Name       string
	Content    []byte
	Executable bool
}

// InjectFiles builds a tar stream in memory and extracts it into dir inside
// the container via the Docker API's CopyToContainer, the same mechanism
// the teacher CLI uses to seed a dev container's workspace without a bind
// mount. Executable files (e.g. test_commands.sh) get mode 0755; everything
// else gets 0644.
func (e *Engine) InjectFiles(ctx context.Context, containerID, dir string, files []InjectFile) error {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, f := range files {
		mode := int64(0o644)
		if f.Executable {
			mode = 0o755
		}
		hdr := &tar.Header{
			Name: f.Name,
			Mode: mode,
			Size: int64(len(f.Content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return harnesserr.New(harnesserr.KindExecIOError, "write tar header for "+f.Name, err)
		}
		if _, err := tw.Write(f.Content); err != nil {
			return harnesserr.New(harnesserr.KindExecIOError, "write tar content for "+f.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return harnesserr.New(harnesserr.KindExecIOError, "close tar writer", err)
	}

	err := e.cli.CopyToContainer(ctx, containerID, dir, &buf, container.CopyToContainerOptions{})
	if err != nil {
		return harnesserr.New(harnesserr.KindExecIOError, "copy files to container", err)
	}
	return nil
}
