package testrunner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbench/harness/internal/config"
	"github.com/agentbench/harness/internal/dockerengine"
	"github.com/agentbench/harness/internal/testrunner"
)

type fakeEngine struct {
	injected     []dockerengine.InjectFile
	execs        []dockerengine.ExecOptions
	readFileResp []byte
	readFilePres bool
	readFileErr  error
}

func (f *fakeEngine) InjectFiles(ctx context.Context, containerID, dir string, files []dockerengine.InjectFile) error {
	f.injected = append(f.injected, files...)
	return nil
}

func (f *fakeEngine) Exec(ctx context.Context, containerID string, opts dockerengine.ExecOptions) (*dockerengine.ExecResult, error) {
	f.execs = append(f.execs, opts)
	if opts.Log != nil {
		opts.Log.Write([]byte("ok\n"))
	}
	return &dockerengine.ExecResult{ExitCode: 0, Output: "ok\n"}, nil
}

func (f *fakeEngine) ReadFile(ctx context.Context, containerID, path string) ([]byte, bool, error) {
	return f.readFileResp, f.readFilePres, f.readFileErr
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_ParsesScorecardWhenPresent(t *testing.T) {
	scratch := t.TempDir()
	runDir := t.TempDir()
	testScript := writeTempFile(t, scratch, "test.py", "print('hi')")

	fake := &fakeEngine{
		readFileResp: []byte(`{"score": 87, "metadata": {"passed": 9}}`),
		readFilePres: true,
	}
	task := config.TaskConfig{Name: "fix-bug", TestScriptPath: testScript}

	result, err := testrunner.Run(context.Background(), fake, runDir, task, "container-1")
	require.NoError(t, err)
	assert.Equal(t, float64(87), result.Score)
	assert.Equal(t, float64(9), result.Metadata["passed"])

	data, err := os.ReadFile(filepath.Join(runDir, "test_results.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"score\": 87")
}

func TestRun_MissingScorecardFallsBackToZero(t *testing.T) {
	scratch := t.TempDir()
	runDir := t.TempDir()
	testScript := writeTempFile(t, scratch, "test.py", "print('hi')")

	fake := &fakeEngine{readFilePres: false}
	task := config.TaskConfig{Name: "fix-bug", TestScriptPath: testScript}

	result, err := testrunner.Run(context.Background(), fake, runDir, task, "container-1")
	require.NoError(t, err)
	assert.Equal(t, float64(0), result.Score)
	assert.Equal(t, "No results file found", result.Metadata["error"])
}

func TestRun_RunsPreTestStepWhenTestCommandsScriptPresent(t *testing.T) {
	scratch := t.TempDir()
	runDir := t.TempDir()
	testScript := writeTempFile(t, scratch, "test.py", "print('hi')")
	commandsScript := writeTempFile(t, scratch, "test_commands.sh", "echo setup")

	fake := &fakeEngine{readFilePres: true, readFileResp: []byte(`{"score": 50, "metadata": {}}`)}
	task := config.TaskConfig{
		Name:                   "fix-bug",
		TestScriptPath:         testScript,
		TestCommandsScriptPath: commandsScript,
	}

	_, err := testrunner.Run(context.Background(), fake, runDir, task, "container-1")
	require.NoError(t, err)

	assert.Len(t, fake.injected, 2)
	assert.Len(t, fake.execs, 2) // pre-test step + test.py

	_, err = os.Stat(filepath.Join(runDir, "test_install_output.log"))
	assert.NoError(t, err)
}
