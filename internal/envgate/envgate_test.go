package envgate_test

import (
	"testing"

	"github.com/agentbench/harness/internal/config"
	"github.com/agentbench/harness/internal/envgate"
	"github.com/stretchr/testify/assert"
)

func TestGate_AllowsWhenAllVarsPresent(t *testing.T) {
	agent := config.AgentConfig{RequiredEnvVars: []string{"ANTHROPIC_API_KEY"}}
	task := config.TaskConfig{RequiredEnvVars: []string{"OPENAI_API_KEY"}}
	environ := map[string]string{
		"ANTHROPIC_API_KEY": "a",
		"OPENAI_API_KEY":    "b",
		"UNRELATED":         "c",
	}

	containerEnv, missing := envgate.Gate(agent, task, environ)

	assert.Empty(t, missing)
	assert.Equal(t, map[string]string{"ANTHROPIC_API_KEY": "a", "OPENAI_API_KEY": "b"}, containerEnv)
	assert.NotContains(t, containerEnv, "UNRELATED")
}

func TestGate_BlocksOnMissingVar(t *testing.T) {
	agent := config.AgentConfig{RequiredEnvVars: []string{"X"}}
	task := config.TaskConfig{RequiredEnvVars: []string{"Y"}}
	environ := map[string]string{"X": "1"}

	containerEnv, missing := envgate.Gate(agent, task, environ)

	assert.Nil(t, containerEnv)
	assert.Equal(t, []string{"Y"}, missing)
}

func TestGate_DeduplicatesSharedVars(t *testing.T) {
	agent := config.AgentConfig{RequiredEnvVars: []string{"SHARED", "A"}}
	task := config.TaskConfig{RequiredEnvVars: []string{"SHARED", "B"}}
	environ := map[string]string{"SHARED": "s", "A": "a", "B": "b"}

	containerEnv, missing := envgate.Gate(agent, task, environ)

	assert.Empty(t, missing)
	assert.Len(t, containerEnv, 3)
}
