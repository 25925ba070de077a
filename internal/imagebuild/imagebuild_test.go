package imagebuild_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentbench/harness/internal/config"
	"github.com/agentbench/harness/internal/imagebuild"
)

func TestRender_SubstitutesBothPlaceholders(t *testing.T) {
	agent := config.AgentConfig{AgentInstallation: "RUN pip install my-agent"}
	task := config.TaskConfig{TaskInstallation: "RUN apt-get install -y sqlite3"}

	out := imagebuild.Render(agent, task)

	assert.Contains(t, out, "RUN pip install my-agent")
	assert.Contains(t, out, "RUN apt-get install -y sqlite3")
	assert.NotContains(t, out, "{{agent_installation}}")
	assert.NotContains(t, out, "{{task_installation}}")
}

func TestRender_ToleratesEmptyTaskInstallation(t *testing.T) {
	agent := config.AgentConfig{AgentInstallation: "RUN echo hi"}
	task := config.TaskConfig{TaskInstallation: ""}

	out := imagebuild.Render(agent, task)

	assert.True(t, strings.Contains(out, "RUN echo hi"))
}
