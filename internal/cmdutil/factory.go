// Package cmdutil provides the shared Factory every benchctl command
// builds from: flag-resolved directories and lazily-initialized,
// process-wide dependencies like the Docker engine connection.
package cmdutil

import (
	"context"
	"sync"

	"github.com/agentbench/harness/internal/dockerengine"
)

// Factory carries CLI-flag-resolved configuration plus lazily-initialized
// dependencies shared across a benchctl invocation. Grounded on the
// teacher's pkg/cmdutil.Factory, which uses the same sync.Once-guarded
// lazy engine pattern.
type Factory struct {
	AgentsDir string
	TasksDir  string
	RunsDir   string
	Debug     bool

	engineOnce sync.Once
	engine     *dockerengine.Engine
	engineErr  error
}

// New creates a Factory from CLI-flag-resolved directories.
func New(agentsDir, tasksDir, runsDir string, debug bool) *Factory {
	return &Factory{AgentsDir: agentsDir, TasksDir: tasksDir, RunsDir: runsDir, Debug: debug}
}

// Engine returns a lazily-initialized Docker engine connection, created
// once per process and cached for subsequent calls.
func (f *Factory) Engine(ctx context.Context) (*dockerengine.Engine, error) {
	f.engineOnce.Do(func() {
		f.engine, f.engineErr = dockerengine.New(ctx)
	})
	return f.engine, f.engineErr
}

// CloseEngine releases the Docker engine connection if one was created.
func (f *Factory) CloseEngine() {
	if f.engine != nil {
		f.engine.Close()
	}
}
