package orchestrator

// State is one pair's position in its lifecycle. A pair that passes the env
// gate always ends in TERMINAL, whether it got there cleanly or was cut
// short by a failure at any earlier state — the orchestrator's job is to
// make every transition, not to guarantee every pair reaches AGENT_DONE. A
// pair refused by the env gate ends in ENV_BLOCKED.
type State string

const (
	StatePending       State = "pending"
	StateEnvBlocked    State = "env_blocked"
	StateImageBuilding State = "image_building"
	StateImageReady    State = "image_ready"
	StateContainerUp   State = "container_up"
	StateAgentRunning  State = "agent_running"
	StateAgentDone     State = "agent_done"
	StateTestRunning   State = "test_running"
	StateTestDone      State = "test_done"
	StateTeardown      State = "teardown"
	StateTerminal      State = "terminal"
)

// PairOutcome summarizes how one pair's run ended, for the orchestrator's
// summary log at the end of a batch. FinalState is StateEnvBlocked or
// StateTerminal, so it does not record the stage a failed pair reached; Err
// holds the error that cut the pair short, if any.
type PairOutcome struct {
	Agent      string
	Task       string
	FinalState State
	Err        error
}
