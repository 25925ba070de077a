package runlog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentbench/harness/internal/runlog"
)

func TestNewRunRoot_FormatsUTCMillisecondTimestamp(t *testing.T) {
	base := t.TempDir()
	ts := time.Date(2026, 3, 5, 9, 30, 12, 250_000_000, time.UTC)

	dir, err := runlog.NewRunRoot(base, ts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "2026-03-05_09-30-12-250"), dir)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPairDir_CreatesAgentUnderscoreTaskDirectory(t *testing.T) {
	root := t.TempDir()

	dir, err := runlog.PairDir(root, "claude-code", "fix-bug")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "claude-code_fix-bug"), dir)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteLog_WritesExactBytes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runlog.WriteLog(dir, runlog.AgentOutputFile, []byte("hello\n")))

	got, err := os.ReadFile(filepath.Join(dir, runlog.AgentOutputFile))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(got))
}

func TestWriteJSON_IndentsWithTwoSpaces(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runlog.WriteJSON(dir, runlog.TestResultsFile, map[string]any{"score": 100}))

	got, err := os.ReadFile(filepath.Join(dir, runlog.TestResultsFile))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"score\": 100\n}", string(got))
}
