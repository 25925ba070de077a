// Package orchestrator is the Run Orchestrator (C5): it walks the
// agent x task cartesian product sequentially, driving each pair through
// image build, container lifecycle, agent invocation, and testing, tearing
// down after every pair regardless of how it ended.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentbench/harness/internal/config"
	"github.com/agentbench/harness/internal/dockerengine"
	"github.com/agentbench/harness/internal/envgate"
	"github.com/agentbench/harness/internal/imagebuild"
	"github.com/agentbench/harness/internal/logger"
	"github.com/agentbench/harness/internal/runlog"
	"github.com/agentbench/harness/internal/testrunner"
	"github.com/agentbench/harness/internal/tmplrender"
	"github.com/google/uuid"
)

// Run walks every agent/task pair sequentially against runRoot (a
// directory already created by runlog.NewRunRoot), returning one
// PairOutcome per pair. A panic or error in one pair is contained to that
// pair by runPair's recover — it never stops the batch.
func Run(ctx context.Context, factory EngineFactory, agents []config.AgentConfig, tasks []config.TaskConfig, runRoot string, environ map[string]string) []PairOutcome {
	var outcomes []PairOutcome

	for _, agent := range agents {
		for _, task := range tasks {
			logger.Info().Str("agent", agent.Name).Str("task", task.Name).Msg("starting pair")
			outcomes = append(outcomes, runPair(ctx, factory, agent, task, runRoot, environ))
		}
	}

	return outcomes
}

// EngineFactory is the subset of cmdutil.Factory the orchestrator needs —
// narrowed to a lazy engine getter so orchestrator tests can substitute a
// fake without depending on cmdutil.
type EngineFactory interface {
	Engine(ctx context.Context) (*dockerengine.Engine, error)
}

// runPair drives one agent/task pair through its full lifecycle. Any
// panic that escapes a stage (e.g. a nil-pointer bug in a future change)
// is recovered here so it degrades to a failed pair instead of crashing
// the batch — the scoped-teardown equivalent of a `with`/`using` block,
// since Go has no such construct.
func runPair(ctx context.Context, factory EngineFactory, agent config.AgentConfig, task config.TaskConfig, runRoot string, environ map[string]string) (outcome PairOutcome) {
	outcome = PairOutcome{Agent: agent.Name, Task: task.Name, FinalState: StatePending}

	var containerID, imageTag string
	var engine *dockerengine.Engine

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("agent", agent.Name).Str("task", task.Name).Msg("pair panicked")
			outcome.Err = fmt.Errorf("panic: %v", r)
		}
		// ENV_BLOCKED pairs never acquired any resources, so they skip
		// teardown entirely and stay at their own terminal leaf state.
		if outcome.FinalState == StateEnvBlocked {
			return
		}
		outcome.FinalState = StateTeardown
		if engine != nil {
			if cErr, iErr := engine.Destroy(context.Background(), containerID, imageTag); cErr != nil || iErr != nil {
				logger.Warn().Err(cErr).Err(iErr).Msg("teardown had errors")
			}
		}
		outcome.FinalState = StateTerminal
	}()

	containerEnv, missing := envgate.Gate(agent, task, environ)
	if len(missing) > 0 {
		logger.Error().Strs("missing", missing).Msg("missing required env vars, skipping pair")
		outcome.FinalState = StateEnvBlocked
		outcome.Err = fmt.Errorf("missing required env vars: %v", missing)
		return outcome
	}

	pairDir, err := runlog.PairDir(runRoot, agent.Name, task.Name)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	var buildErr error
	engine, buildErr = factory.Engine(ctx)
	if buildErr != nil {
		outcome.Err = buildErr
		return outcome
	}

	outcome.FinalState = StateImageBuilding
	logFile, err := os.Create(filepath.Join(pairDir, "build_output.log"))
	if err != nil {
		outcome.Err = err
		return outcome
	}
	defer logFile.Close()

	imageTag, err = imagebuild.Build(ctx, engine, pairDir, agent, task, logFile)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.FinalState = StateImageReady

	containerName := dockerengine.ContainerName(agent.Name, task.Name, uuid.NewString())
	container, err := engine.CreateAndStart(ctx, dockerengine.CreateOptions{
		ImageTag: imageTag,
		Name:     containerName,
		Env:      containerEnv,
		Labels:   dockerengine.ContainerLabels(agent.Name, task.Name, containerName),
	})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	containerID = container.ID
	outcome.FinalState = StateContainerUp

	command := tmplrender.RenderOne(agent.CommandTemplate, "task_instructions", task.Instructions)
	agentLog, err := os.Create(filepath.Join(pairDir, runlog.AgentOutputFile))
	if err != nil {
		outcome.Err = err
		return outcome
	}
	defer agentLog.Close()

	outcome.FinalState = StateAgentRunning
	if _, err := engine.Exec(ctx, containerID, dockerengine.ExecOptions{
		Cmd: []string{"bash", "-c", command},
		Log: agentLog,
	}); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.FinalState = StateAgentDone

	outcome.FinalState = StateTestRunning
	if _, err := testrunner.Run(ctx, engine, pairDir, task, containerID); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.FinalState = StateTestDone

	return outcome
}
