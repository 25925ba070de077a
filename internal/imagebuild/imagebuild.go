// Package imagebuild is the Image Builder (C3): renders a pair's Dockerfile
// from the base template plus the agent's install fragment and the task's
// setup fragment, sanity-checks its structure, and builds it through
// internal/dockerengine.
package imagebuild

import (
	"context"
	"os"
	"path/filepath"

	"github.com/keilerkonzept/dockerfile-json/pkg/dockerfile"

	"github.com/agentbench/harness/internal/config"
	"github.com/agentbench/harness/internal/dockerengine"
	"github.com/agentbench/harness/internal/harnesserr"
	"github.com/agentbench/harness/internal/logger"
	"github.com/agentbench/harness/internal/tmplrender"
)

// BaseTemplate is the skeleton every pair's Dockerfile is rendered from. It
// carries exactly two placeholders: agent_installation and
// task_installation, matching the original harness's base.dockerfile
// contract.
const BaseTemplate = `FROM python:3.12-slim

RUN apt-get update && apt-get install -y --no-install-recommends \
    git curl ca-certificates build-essential \
    && rm -rf /var/lib/apt/lists/*

RUN curl -LsSf https://astral.sh/uv/install.sh | sh
ENV PATH="/root/.local/bin:$PATH"

WORKDIR /project

{{agent_installation}}

{{task_installation}}
`

// Render produces the complete Dockerfile content for one agent/task pair.
func Render(agent config.AgentConfig, task config.TaskConfig) string {
	return tmplrender.Render(BaseTemplate, map[string]string{
		"agent_installation": agent.AgentInstallation,
		"task_installation":  task.TaskInstallation,
	})
}

// Validate parses the rendered Dockerfile with dockerfile-json purely as a
// structural sanity check, catching a malformed install/setup fragment
// before it ever reaches the Docker daemon. It writes the content to a
// scratch file because dockerfile-json's parser reads from a path, not a
// reader.
func Validate(dir, content string) error {
	path := filepath.Join(dir, "Dockerfile")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return harnesserr.New(harnesserr.KindBuildFailed, "write scratch dockerfile", err)
	}
	defer os.Remove(path)

	if _, err := dockerfile.Parse(path); err != nil {
		return harnesserr.New(harnesserr.KindBuildFailed, "parse rendered dockerfile", err)
	}
	return nil
}

// Build renders, validates, and builds the image for one pair, tagged
// benchmark-<agent>-<task> (lowercased).
func Build(ctx context.Context, engine *dockerengine.Engine, scratchDir string, agent config.AgentConfig, task config.TaskConfig, log *os.File) (string, error) {
	content := Render(agent, task)

	if err := Validate(scratchDir, content); err != nil {
		return "", err
	}

	tag := dockerengine.ImageTag(agent.Name, task.Name)
	logger.Info().Str("agent", agent.Name).Str("task", task.Name).Str("tag", tag).Msg("building image")

	err := engine.BuildImage(ctx, dockerengine.BuildOptions{
		Tag:        tag,
		Dockerfile: []byte(content),
		Labels:     dockerengine.ImageLabels(agent.Name, task.Name),
		Log:        log,
	})
	if err != nil {
		return "", err
	}

	return tag, nil
}
