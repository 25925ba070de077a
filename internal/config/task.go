package config

// TaskInfo carries the opaque tagging metadata every task must declare.
type TaskInfo struct {
	Difficulty            string
	NonDeterministicEvals bool
}

// TaskConfig describes one task directory. TestScriptPath points at the
// test.py file to be injected into the container; TestCommandsScriptPath is
// empty when the task has no pre-test step.
type TaskConfig struct {
	Name                   string
	RequiredEnvVars        []string
	TaskInstallation       string // dockerfile fragment, may be empty
	Instructions           string
	TestScriptPath         string
	TestCommandsScriptPath string // empty if the task has no pre-test step
	Info                   TaskInfo
}

// HasTestCommandsScript reports whether this task declared a pre-test step.
func (t TaskConfig) HasTestCommandsScript() bool {
	return t.TestCommandsScriptPath != ""
}

// taskManifest is the shape of task.yaml.
type taskManifest struct {
	RequiredEnvVars []string `yaml:"required_env_vars"`
	TaskInfo        *struct {
		Difficulty            string `yaml:"difficulty"`
		NonDeterministicEvals bool   `yaml:"non_deterministic_evals"`
	} `yaml:"task_info"`
}
