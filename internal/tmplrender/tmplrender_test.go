package tmplrender_test

import (
	"testing"

	"github.com/agentbench/harness/internal/tmplrender"
	"github.com/stretchr/testify/assert"
)

func TestRender_SubstitutesKnownKeys(t *testing.T) {
	out := tmplrender.Render("FROM {{base}}\n{{agent_installation}}\n{{task_installation}}\n", map[string]string{
		"base":               "ubuntu:24.04",
		"agent_installation": "RUN apt-get install -y git",
		"task_installation":  "",
	})
	assert.Equal(t, "FROM ubuntu:24.04\nRUN apt-get install -y git\n\n", out)
}

func TestRender_LiteralBracesSurvive(t *testing.T) {
	instructions := `Write a JSON file like {"score": 100} and reference {{not_a_key}} verbatim.`
	out := tmplrender.RenderOne("Task:\n{{task_instructions}}\nDone.", "task_instructions", instructions)

	assert.Contains(t, out, instructions)
	assert.Contains(t, out, `{"score": 100}`)
	assert.Contains(t, out, "{{not_a_key}}")
}

func TestRender_UnterminatedPlaceholderPassesThrough(t *testing.T) {
	out := tmplrender.Render("hello {{world", map[string]string{"world": "x"})
	assert.Equal(t, "hello {{world", out)
}

func TestRenderOne_CommandTemplateRoundTrip(t *testing.T) {
	cmdTemplate := "claude -p \"{{task_instructions}}\" --dangerously-skip-permissions"
	instructions := "Build a CLI changelog tool."

	rendered := tmplrender.RenderOne(cmdTemplate, "task_instructions", instructions)

	assert.Contains(t, rendered, instructions, "rendered command must contain the instructions verbatim")
}
