package dockerengine

import "time"

// Label keys applied to every resource the harness creates, so stray
// containers/images from a previous crashed run are identifiable and
// sweepable, the same convention the teacher CLI uses for its own
// dev-container resources.
const (
	LabelPrefix  = "dev.benchctl."
	LabelManaged = LabelPrefix + "managed"
	LabelAgent   = LabelPrefix + "agent"
	LabelTask    = LabelPrefix + "task"
	LabelRunID   = LabelPrefix + "run_id"
	LabelCreated = LabelPrefix + "created"
)

// ContainerLabels returns the label set applied to a pair's container.
func ContainerLabels(agent, task, runID string) map[string]string {
	return map[string]string{
		LabelManaged: "true",
		LabelAgent:   agent,
		LabelTask:    task,
		LabelRunID:   runID,
		LabelCreated: time.Now().UTC().Format(time.RFC3339),
	}
}

// ImageLabels returns the label set applied to a pair's built image.
func ImageLabels(agent, task string) map[string]string {
	return map[string]string{
		LabelManaged: "true",
		LabelAgent:   agent,
		LabelTask:    task,
		LabelCreated: time.Now().UTC().Format(time.RFC3339),
	}
}
