package config

// AgentConfig describes one agent directory: its dockerfile install
// fragment, the command template used to invoke it, and the environment
// variables it needs to run. Immutable once loaded.
type AgentConfig struct {
	Name              string
	RequiredEnvVars   []string
	AgentInstallation string // dockerfile fragment, text
	CommandTemplate   string // text with a single "{{task_instructions}}" placeholder
}

// agentManifest is the shape of agent.yaml.
type agentManifest struct {
	RequiredEnvVars []string `yaml:"required_env_vars"`
}
