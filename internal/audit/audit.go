// Package audit is the Audit Sub-Agent Driver (C7): it runs a fixed
// two-turn conversation with a configured coding-agent CLI on the host
// filesystem (not inside the pair's container) to semantically evaluate an
// agent's work against a rubric, then parses the rubric.json it's required
// to produce.
//
// It is grounded on the teacher's internal/ralph.Loop — which drives a
// coding agent subprocess turn by turn — but fixed at exactly two turns
// (explore, then report) rather than Ralph's stagnation-monitored open
// loop, and run against the host filesystem rather than a Docker exec
// target.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/shlex"

	"github.com/agentbench/harness/internal/harnesserr"
	"github.com/agentbench/harness/internal/logger"
	"github.com/agentbench/harness/internal/scorecard"
	"github.com/agentbench/harness/internal/tmplrender"
)

// Phase tracks the driver's two-turn state machine.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseExplored  Phase = "explored"
	PhaseReported  Phase = "reported"
	PhaseCollected Phase = "collected"
)

// Request configures one audit run.
type Request struct {
	// AgentCommand is the configured CLI invocation for the audit
	// sub-agent, e.g. "claude -p", split with shlex the same way a shell
	// would, so operators can configure flags without the driver needing
	// to understand them.
	AgentCommand string
	WorkingDir   string // where the sub-agent explores; normally the pair's run dir
	Context      string // description of what the audited agent was asked to do
	Steps        string // the audit steps to follow
	Rubric       map[string]any
}

// Driver runs the two-turn audit conversation.
type Driver struct {
	phase Phase
}

// NewDriver returns a Driver ready to run one audit request.
func NewDriver() *Driver {
	return &Driver{phase: PhaseIdle}
}

// Phase reports the driver's current state, useful for logging and tests.
func (d *Driver) Phase() Phase { return d.phase }

// Run drives the two-turn conversation and returns the parsed rubric
// result. It fails fast, before spawning any subprocess, if the rubric
// lacks a "score" field.
func (d *Driver) Run(ctx context.Context, req Request) (*scorecard.SemanticTestResult, error) {
	if _, ok := req.Rubric["score"]; !ok {
		return nil, harnesserr.New(harnesserr.KindInvalidRubric, "validate rubric", fmt.Errorf(`rubric schema must contain a "score" field`))
	}

	rubricJSON, err := json.MarshalIndent(req.Rubric, "", "  ")
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindInvalidRubric, "marshal rubric", err)
	}

	exploreValues := map[string]string{
		"context": req.Context,
		"rubric":  string(rubricJSON),
		"steps":   req.Steps,
	}
	explorePrompt := tmplrender.Render(exploreTemplate, exploreValues)
	reportPrompt := tmplrender.RenderOne(reportTemplate, "rubric", string(rubricJSON))

	args, err := shlex.Split(req.AgentCommand)
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindRubricMissing, "split agent command", err)
	}
	if len(args) == 0 {
		return nil, harnesserr.New(harnesserr.KindRubricMissing, "split agent command", fmt.Errorf("agent command is empty"))
	}

	// Scoped so both turns' log lines carry working_dir without repeating it
	// on every call site.
	log := logger.WithField("working_dir", req.WorkingDir)

	log.Info().Msg("audit turn 1: explore")
	if err := d.runTurn(ctx, args, systemPrompt, explorePrompt, req.WorkingDir, true); err != nil {
		return nil, err
	}
	d.phase = PhaseExplored

	log.Info().Msg("audit turn 2: report")
	if err := d.runTurn(ctx, args, "", reportPrompt, req.WorkingDir, false); err != nil {
		return nil, err
	}
	d.phase = PhaseReported

	rubricPath := filepath.Join(req.WorkingDir, "audit_output", "rubric.json")
	raw, err := os.ReadFile(rubricPath)
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindRubricMissing, "read rubric.json", err)
	}

	result, err := scorecard.ParseRubric(raw)
	if err != nil {
		return nil, harnesserr.New(harnesserr.KindInvalidRubric, "parse rubric.json", err)
	}

	d.phase = PhaseCollected
	return result, nil
}

// runTurn invokes the configured agent CLI for one conversational turn.
// The first turn is a fresh invocation (e.g. `claude -p "<prompt>"`) and
// carries the audit system prompt via --system-prompt, establishing the
// impartial-auditor framing for the whole conversation per spec.md §4.7
// step 1; the second resumes that same session the way ralph's loop does
// with `claude --continue` (the system prompt already governs it, so it
// isn't resent) but still carries its own prompt text as the new message,
// since the report turn asks for something the explore turn didn't:
// writing out ./audit_output/rubric.json.
func (d *Driver) runTurn(ctx context.Context, baseArgs []string, sysPrompt, prompt, workingDir string, firstTurn bool) error {
	args := make([]string, len(baseArgs))
	copy(args, baseArgs)
	if firstTurn {
		args = append(args, "--system-prompt", sysPrompt)
	} else {
		args = append(args, "--continue")
	}
	args = append(args, prompt)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = workingDir

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	if err := cmd.Run(); err != nil {
		logger.Warn().Err(err).Str("output", combined.String()).Msg("audit sub-agent turn failed")
		return harnesserr.New(harnesserr.KindRubricMissing, "run audit sub-agent turn", err)
	}
	return nil
}
