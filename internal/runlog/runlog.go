// Package runlog manages one pair's run directory: creating the
// timestamped root and writing the fixed set of log/result files every
// pair produces, regardless of how far it got before failing.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const (
	AgentOutputFile      = "agent_output.log"
	TestInstallFile      = "test_install_output.log"
	TestOutputFile       = "test_output.log"
	TestResultsFile      = "test_results.json"
	timestampLockSuffix  = ".benchctl-runroot.lock"
	timestampLayoutMilli = "2006-01-02_15-04-05.000"
)

// NewRunRoot creates (if necessary) a timestamped directory under baseDir,
// formatted the same way the original harness's UTC millisecond-precision
// timestamp is ("YYYY-MM-DD_HH-MM-SS-mmm"), and returns its path.
//
// A flock on a lockfile in baseDir serializes the mkdir across benchctl
// processes. It does not make the directory unique: two processes that
// start within the same millisecond both get the same, already-existing
// directory, since MkdirAll succeeds when it exists.
func NewRunRoot(baseDir string, now time.Time) (string, error) {
	stamp := formatTimestamp(now)
	dir := filepath.Join(baseDir, stamp)

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create runs base dir: %w", err)
	}

	lock := flock.New(filepath.Join(baseDir, timestampLockSuffix))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("acquire run-root lock: %w", err)
	}
	defer lock.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run root %s: %w", dir, err)
	}
	return dir, nil
}

func formatTimestamp(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%s-%03d", u.Format("2006-01-02_15-04-05"), u.Nanosecond()/1_000_000)
}

// PairDir returns (and creates) the subdirectory for one agent/task pair
// within a run root, named "<agent>_<task>" per the original harness.
func PairDir(runRoot, agent, task string) (string, error) {
	dir := filepath.Join(runRoot, agent+"_"+task)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create pair dir %s: %w", dir, err)
	}
	return dir, nil
}

// WriteLog writes content to name within dir, overwriting any existing
// file — each of the fixed log files is written exactly once per pair.
func WriteLog(dir, name string, content []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteJSON marshals v with two-space indentation, matching
// json.dumps(result_data, indent=2) in the original harness, and writes it
// to name within dir.
func WriteJSON(dir, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return WriteLog(dir, name, data)
}
