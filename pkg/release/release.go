// Package release executes a declared, ordered release pipeline against
// the external platform, with clear stop/continue semantics. The runner
// performs no retries: every step is a potentially irreversible remote
// mutation, so a failure is reported to the operator rather than blindly
// re-attempted.
package release

import (
	"time"
)

// Step is one ordered release action. Steps are immutable once the run
// starts and execute strictly in declared order; the ordering encodes real
// dependency (enable a service before using it, create an environment
// before deploying into it).
type Step struct {
	Name              string
	Command           string
	Args              []string
	ContinueOnFailure bool
	Timeout           time.Duration // zero means the runner's default
}

// StepOutcome records one completed (or timed-out) step.
type StepOutcome struct {
	Step     string
	ExitCode int
	Stdout   string
	Stderr   string
	Started  time.Time
	Duration time.Duration
	TimedOut bool
}

// State is the terminal state of a release attempt.
type State string

const (
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateAborted   State = "aborted"
)

// Outcome is the result of one release attempt. Exactly one of the three
// states is reached per invocation; a run never re-enters execution after
// reaching a terminal state.
type Outcome struct {
	State      State
	FailedStep string        // set when State is StateFailed
	Reason     string        // human-readable cause for failed/aborted
	Steps      []StepOutcome // outcomes in execution order
}

// Succeeded returns true if every step completed acceptably.
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// LogSink receives step outcomes as they complete. The run log is the only
// persisted artifact of a release attempt.
type LogSink interface {
	Begin(project string, started time.Time)
	Record(outcome StepOutcome)
	End(outcome Outcome)
}

// NopSink discards everything; used when no log is wanted.
type NopSink struct{}

func (NopSink) Begin(string, time.Time) {}
func (NopSink) Record(StepOutcome)      {}
func (NopSink) End(Outcome)             {}
