// Package testrunner is the Test Runner (C6): it injects a task's test
// script into a running container, runs an optional pre-test step, runs the
// test itself under `uv run --no-project`, and reads back the scorecard the
// script writes to a per-run result file.
package testrunner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/agentbench/harness/internal/config"
	"github.com/agentbench/harness/internal/dockerengine"
	"github.com/agentbench/harness/internal/logger"
	"github.com/agentbench/harness/internal/runlog"
	"github.com/agentbench/harness/internal/scorecard"
)

const projectDir = "/project"

// resultEnvVar is read by the test script to learn the unique suffix of the
// result file it must write, so concurrent/previous runs against the same
// container image never collide on a stale result file.
const resultEnvVar = "EVAL_RECIPES_TEST_ID"

// SkipPreStepFailureAbort is always true: a failing test_commands.sh never
// aborts the test step. Its exit code is not checked (its output goes to
// test_install_output.log), and an exec error while running it is logged
// and ignored (spec.md §9's Open Question,
// resolved as "preserve the behavior as observed"). It's a named constant
// rather than a runtime flag since nothing in the original harness exposes
// this as configurable; flipping it would be a one-line change at the
// runPreTestStep call site in Run.
const SkipPreStepFailureAbort = true

// Engine is the subset of dockerengine.Engine the test runner needs. It
// lets tests exercise Run's control flow against a fake, the same way the
// teacher's command packages depend on narrow docker.Client-shaped
// interfaces instead of the concrete SDK client.
type Engine interface {
	InjectFiles(ctx context.Context, containerID, dir string, files []dockerengine.InjectFile) error
	Exec(ctx context.Context, containerID string, opts dockerengine.ExecOptions) (*dockerengine.ExecResult, error)
	ReadFile(ctx context.Context, containerID, path string) ([]byte, bool, error)
}

// Run executes a task's test suite inside containerID and returns the
// parsed scorecard. It never returns an error for a test-script failure —
// a missing or invalid scorecard degrades to scorecard.MissingScorecard,
// matching the original harness's "never abort the pair over a test
// failure" behavior. It only returns an error for an I/O failure: reading
// the task's scripts from the host, talking to the container, or writing
// test_results.json.
func Run(ctx context.Context, engine Engine, runDir string, task config.TaskConfig, containerID string) (*scorecard.TestResult, error) {
	testID := uuid.NewString()
	logger.Info().Str("test_id", testID).Msg("running test")

	testScript, err := os.ReadFile(task.TestScriptPath)
	if err != nil {
		return nil, fmt.Errorf("read test script %s: %w", task.TestScriptPath, err)
	}

	files := []dockerengine.InjectFile{{Name: "test.py", Content: testScript}}
	if task.HasTestCommandsScript() {
		script, err := os.ReadFile(task.TestCommandsScriptPath)
		if err != nil {
			return nil, fmt.Errorf("read test_commands.sh %s: %w", task.TestCommandsScriptPath, err)
		}
		files = append(files, dockerengine.InjectFile{Name: "test_commands.sh", Content: script, Executable: true})
	}

	if err := engine.InjectFiles(ctx, containerID, projectDir, files); err != nil {
		return nil, err
	}

	if task.HasTestCommandsScript() {
		if err := runPreTestStep(ctx, engine, runDir, containerID); err != nil {
			if !SkipPreStepFailureAbort {
				return nil, err
			}
			logger.Warn().Err(err).Msg("test_commands.sh failed, continuing")
		}
	}

	output, err := runTestScript(ctx, engine, runDir, containerID, testID)
	if err != nil {
		return nil, err
	}

	resultPath := fmt.Sprintf("%s/.eval_recipes_test_results_%s.json", projectDir, testID)
	raw, present, err := engine.ReadFile(ctx, containerID, resultPath)
	if err != nil {
		return nil, err
	}

	var result *scorecard.TestResult
	if !present {
		logger.Warn().Str("path", resultPath).Msg("scorecard file not found")
		result = scorecard.MissingScorecard("No results file found")
	} else {
		result, err = scorecard.ParseScorecard(raw)
		if err != nil {
			logger.Warn().Err(err).Msg("scorecard file unparseable")
			result = scorecard.MissingScorecard("invalid scorecard: " + err.Error())
		}
	}
	result.TestOutput = output

	if err := runlog.WriteJSON(runDir, runlog.TestResultsFile, result); err != nil {
		return nil, fmt.Errorf("write test results: %w", err)
	}

	logger.Info().Float64("score", result.Score).Msg("test complete")
	return result, nil
}

func runPreTestStep(ctx context.Context, engine Engine, runDir, containerID string) error {
	f, err := os.Create(filepath.Join(runDir, runlog.TestInstallFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = engine.Exec(ctx, containerID, dockerengine.ExecOptions{
		Cmd: []string{"bash", projectDir + "/test_commands.sh"},
		Log: f,
	})
	return err
}

func runTestScript(ctx context.Context, engine Engine, runDir, containerID, testID string) (string, error) {
	f, err := os.Create(filepath.Join(runDir, runlog.TestOutputFile))
	if err != nil {
		return "", err
	}
	defer f.Close()

	result, err := engine.Exec(ctx, containerID, dockerengine.ExecOptions{
		Cmd: []string{"uv", "run", "--no-project", projectDir + "/test.py"},
		Env: []string{resultEnvVar + "=" + testID},
		Log: f,
	})
	if err != nil {
		return "", err
	}
	return result.Output, nil
}
