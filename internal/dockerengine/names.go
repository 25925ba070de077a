package dockerengine

import "strings"

// ImageTag derives the deterministic, lowercased tag for a pair's image, per
// spec.md §4.3: "benchmark-<agent>-<task>".
func ImageTag(agent, task string) string {
	return strings.ToLower("benchmark-" + agent + "-" + task)
}

// ContainerName derives a human-readable container name for a pair. Unlike
// ImageTag this isn't part of the wire contract with any external
// collaborator, so it's free to include more detail for operator
// readability when listing containers with `docker ps`.
func ContainerName(agent, task, runID string) string {
	return strings.ToLower("benchctl-" + agent + "-" + task + "-" + runID)
}
