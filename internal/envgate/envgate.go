// Package envgate computes the union of environment variables a pair
// requires and blocks the pair when any of them are unmet. The container
// that eventually runs only ever sees the keys this package selects —
// never the full process environment.
package envgate

import (
	"sort"

	"github.com/agentbench/harness/internal/config"
)

// Gate checks whether every env var required by agent or task is present in
// environ, and if so, returns the subset of environ the container should
// receive. missing is sorted for deterministic log output.
func Gate(agent config.AgentConfig, task config.TaskConfig, environ map[string]string) (containerEnv map[string]string, missing []string) {
	required := unionKeys(agent.RequiredEnvVars, task.RequiredEnvVars)

	containerEnv = make(map[string]string, len(required))
	for _, key := range required {
		val, ok := environ[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		containerEnv[key] = val
	}

	sort.Strings(missing)
	if len(missing) > 0 {
		return nil, missing
	}
	return containerEnv, nil
}

// unionKeys de-duplicates the combined required-env-var lists from the
// agent and the task.
func unionKeys(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, key := range list {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}
