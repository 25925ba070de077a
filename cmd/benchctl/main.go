// Command benchctl runs the benchmark harness: it builds an image and
// container for every (agent, task) pair, runs the agent against the
// task, scores the result, and tears the container and image down —
// sequentially, one pair at a time.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentbench/harness/internal/cmdutil"
	"github.com/agentbench/harness/internal/config"
	"github.com/agentbench/harness/internal/logger"
	"github.com/agentbench/harness/internal/orchestrator"
	"github.com/agentbench/harness/internal/runlog"
)

func main() {
	// Canceling on SIGINT/SIGTERM, the same graceful-shutdown shape as the
	// teacher's internal/signals.SetupSignalContext, lets the in-flight
	// pair's deferred teardown (orchestrator.runPair) still run instead of
	// the process dying mid-container.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("benchctl failed")
	}
	// Per spec, the harness always exits 0 — per-pair failures are logged,
	// not surfaced as a process exit code.
	os.Exit(0)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("BENCHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var debug bool

	cmd := &cobra.Command{
		Use:   "benchctl",
		Short: "Run the coding-agent benchmark harness",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v)
		},
	}

	cmd.Flags().String("agents-dir", "data/agents", "directory of agent definitions")
	cmd.Flags().String("tasks-dir", "data/tasks", "directory of task definitions")
	cmd.Flags().String("runs-dir", "data/benchmarking/runs", "base directory for run output")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	for _, name := range []string{"agents-dir", "tasks-dir", "runs-dir"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %q: %v", name, err))
		}
	}

	return cmd
}

func run(ctx context.Context, v *viper.Viper) error {
	agentsDir := v.GetString("agents-dir")
	tasksDir := v.GetString("tasks-dir")
	runsDir := v.GetString("runs-dir")

	agents, err := config.LoadAgents(agentsDir)
	if err != nil {
		return fmt.Errorf("load agents: %w", err)
	}
	tasks, err := config.LoadTasks(tasksDir)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	runRoot, err := runlog.NewRunRoot(runsDir, time.Now())
	if err != nil {
		return fmt.Errorf("create run root: %w", err)
	}

	factory := cmdutil.New(agentsDir, tasksDir, runsDir, false)
	defer factory.CloseEngine()

	environ := map[string]string{}
	for _, kv := range os.Environ() {
		key, val, ok := strings.Cut(kv, "=")
		if ok {
			environ[key] = val
		}
	}

	outcomes := orchestrator.Run(ctx, factory, agents, tasks, runRoot, environ)

	for _, o := range outcomes {
		if o.Err != nil {
			logger.Error().Str("agent", o.Agent).Str("task", o.Task).Str("state", string(o.FinalState)).Err(o.Err).Msg("pair finished with error")
		} else {
			logger.Info().Str("agent", o.Agent).Str("task", o.Task).Str("state", string(o.FinalState)).Msg("pair finished")
		}
	}

	return nil
}
