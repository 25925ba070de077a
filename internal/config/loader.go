// Package config discovers agents and tasks from on-disk directories and
// parses their manifests. Loading happens once at startup; the resulting
// AgentConfig/TaskConfig values are treated as immutable thereafter.
package config

import (
	"os"
	"path/filepath"

	"github.com/agentbench/harness/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	agentInstallFile   = "install.dockerfile"
	agentCommandFile   = "command_template.txt"
	agentManifestFile  = "agent.yaml"
	taskSetupFile      = "setup.dockerfile"
	taskInstructions   = "instructions.txt"
	taskTestScript     = "test.py"
	taskCommandsScript = "test_commands.sh"
	taskManifestFile   = "task.yaml"
)

// LoadAgents scans agentsDir for one subdirectory per agent. A directory
// missing any of install.dockerfile, command_template.txt, or agent.yaml is
// silently skipped, matching the original harness's permissive discovery.
func LoadAgents(agentsDir string) ([]AgentConfig, error) {
	entries, err := os.ReadDir(agentsDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("dir", agentsDir).Msg("agents directory does not exist")
			return nil, nil
		}
		return nil, err
	}

	var agents []AgentConfig
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(agentsDir, entry.Name())

		installPath := filepath.Join(dir, agentInstallFile)
		commandPath := filepath.Join(dir, agentCommandFile)
		manifestPath := filepath.Join(dir, agentManifestFile)

		if !fileExists(installPath) || !fileExists(commandPath) || !fileExists(manifestPath) {
			continue
		}

		manifestBytes, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, err
		}
		var manifest agentManifest
		if err := yaml.Unmarshal(manifestBytes, &manifest); err != nil {
			logger.Warn().Err(err).Str("agent", entry.Name()).Msg("failed to parse agent.yaml, skipping")
			continue
		}

		installBytes, err := os.ReadFile(installPath)
		if err != nil {
			return nil, err
		}
		commandBytes, err := os.ReadFile(commandPath)
		if err != nil {
			return nil, err
		}

		agents = append(agents, AgentConfig{
			Name:              entry.Name(),
			RequiredEnvVars:   manifest.RequiredEnvVars,
			AgentInstallation: string(installBytes),
			CommandTemplate:   string(commandBytes),
		})
	}

	return agents, nil
}

// LoadTasks scans tasksDir for one subdirectory per task. A directory
// missing instructions.txt, test.py, or task.yaml is silently skipped; one
// whose task.yaml lacks the required task_info block is skipped with a
// logged warning.
func LoadTasks(tasksDir string) ([]TaskConfig, error) {
	entries, err := os.ReadDir(tasksDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("dir", tasksDir).Msg("tasks directory does not exist")
			return nil, nil
		}
		return nil, err
	}

	var tasks []TaskConfig
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(tasksDir, entry.Name())

		instructionsPath := filepath.Join(dir, taskInstructions)
		testScriptPath := filepath.Join(dir, taskTestScript)
		manifestPath := filepath.Join(dir, taskManifestFile)

		if !fileExists(instructionsPath) || !fileExists(testScriptPath) || !fileExists(manifestPath) {
			continue
		}

		manifestBytes, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, err
		}
		var manifest taskManifest
		if err := yaml.Unmarshal(manifestBytes, &manifest); err != nil {
			logger.Warn().Err(err).Str("task", entry.Name()).Msg("failed to parse task.yaml, skipping")
			continue
		}
		if manifest.TaskInfo == nil {
			logger.Warn().Str("task", entry.Name()).Msg("skipping task, missing required task_info field in task.yaml")
			continue
		}

		instructionsBytes, err := os.ReadFile(instructionsPath)
		if err != nil {
			return nil, err
		}

		task := TaskConfig{
			Name:            entry.Name(),
			RequiredEnvVars: manifest.RequiredEnvVars,
			Instructions:    string(instructionsBytes),
			TestScriptPath:  testScriptPath,
			Info: TaskInfo{
				Difficulty:            manifest.TaskInfo.Difficulty,
				NonDeterministicEvals: manifest.TaskInfo.NonDeterministicEvals,
			},
		}

		setupPath := filepath.Join(dir, taskSetupFile)
		if fileExists(setupPath) {
			setupBytes, err := os.ReadFile(setupPath)
			if err != nil {
				return nil, err
			}
			task.TaskInstallation = string(setupBytes)
		}

		commandsPath := filepath.Join(dir, taskCommandsScript)
		if fileExists(commandsPath) {
			task.TestCommandsScriptPath = commandsPath
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
