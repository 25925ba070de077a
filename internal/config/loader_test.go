package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentbench/harness/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadAgents_SkipsIncompleteDirectories(t *testing.T) {
	root := t.TempDir()

	complete := filepath.Join(root, "claude-code")
	writeFile(t, filepath.Join(complete, "install.dockerfile"), "RUN echo install")
	writeFile(t, filepath.Join(complete, "command_template.txt"), "claude -p \"{{task_instructions}}\"")
	writeFile(t, filepath.Join(complete, "agent.yaml"), "required_env_vars:\n  - ANTHROPIC_API_KEY\n")

	incomplete := filepath.Join(root, "half-baked")
	writeFile(t, filepath.Join(incomplete, "install.dockerfile"), "RUN echo install")
	// missing command_template.txt and agent.yaml

	agents, err := config.LoadAgents(root)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "claude-code", agents[0].Name)
	assert.Equal(t, []string{"ANTHROPIC_API_KEY"}, agents[0].RequiredEnvVars)
	assert.Contains(t, agents[0].CommandTemplate, "{{task_instructions}}")
}

func TestLoadAgents_MissingDirectory(t *testing.T) {
	agents, err := config.LoadAgents(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, agents)
}

func TestLoadTasks_SkipsMissingTaskInfo(t *testing.T) {
	root := t.TempDir()

	complete := filepath.Join(root, "git_changelog_generator")
	writeFile(t, filepath.Join(complete, "instructions.txt"), "Build a changelog generator.")
	writeFile(t, filepath.Join(complete, "test.py"), "print('ok')")
	writeFile(t, filepath.Join(complete, "task.yaml"), ""+
		"required_env_vars:\n  - OPENAI_API_KEY\n"+
		"task_info:\n  difficulty: medium\n  non_deterministic_evals: true\n")

	noInfo := filepath.Join(root, "missing_info")
	writeFile(t, filepath.Join(noInfo, "instructions.txt"), "x")
	writeFile(t, filepath.Join(noInfo, "test.py"), "x")
	writeFile(t, filepath.Join(noInfo, "task.yaml"), "required_env_vars: []\n")

	tasks, err := config.LoadTasks(root)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, "git_changelog_generator", task.Name)
	assert.Equal(t, "medium", task.Info.Difficulty)
	assert.True(t, task.Info.NonDeterministicEvals)
	assert.False(t, task.HasTestCommandsScript())
}

func TestLoadTasks_DetectsOptionalFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "chiptune_generator")
	writeFile(t, filepath.Join(dir, "instructions.txt"), "x")
	writeFile(t, filepath.Join(dir, "test.py"), "x")
	writeFile(t, filepath.Join(dir, "setup.dockerfile"), "RUN apt-get install -y ffmpeg")
	writeFile(t, filepath.Join(dir, "test_commands.sh"), "#!/bin/bash\npip install -r requirements.txt\n")
	writeFile(t, filepath.Join(dir, "task.yaml"), "task_info:\n  difficulty: hard\n  non_deterministic_evals: false\n")

	tasks, err := config.LoadTasks(root)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Contains(t, task.TaskInstallation, "ffmpeg")
	assert.True(t, task.HasTestCommandsScript())
}
