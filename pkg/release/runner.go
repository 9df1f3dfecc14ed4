package release

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/cliexec"
)

// DefaultStepTimeout bounds a step that declares no timeout of its own.
const DefaultStepTimeout = 10 * time.Minute

// Runner executes release steps in order.
type Runner struct {
	Exec cliexec.Runner
	Log  LogSink

	// Confirm is consulted before the first step when RequireConfirmation
	// is set. A nil Confirm with RequireConfirmation aborts the run.
	Confirm             func() (bool, error)
	RequireConfirmation bool

	Project        string
	DefaultTimeout time.Duration // zero means DefaultStepTimeout

	// Observe, when set, is called before each step starts. Used for
	// progress output.
	Observe func(step Step)
}

// Run executes the steps against the readiness report. Blocking check
// failures abort the run unless force is set; this is the guard that keeps
// an unattended pipeline from mutating remote infrastructure on top of a
// known-bad configuration.
func (r *Runner) Run(ctx context.Context, steps []Step, report check.Report, force bool) Outcome {
	log := r.Log
	if log == nil {
		log = NopSink{}
	}

	if !report.AllBlockingPassed() && !force {
		outcome := Outcome{
			State:  StateAborted,
			Reason: "blocking checks failed: " + strings.Join(report.FailingBlocking(), ", "),
		}
		log.Begin(r.Project, time.Now())
		log.End(outcome)
		return outcome
	}

	if r.RequireConfirmation {
		outcome, ok := r.confirm()
		if !ok {
			log.Begin(r.Project, time.Now())
			log.End(outcome)
			return outcome
		}
	}

	log.Begin(r.Project, time.Now())

	var outcomes []StepOutcome
	for _, step := range steps {
		// Cancellation is honored at each step boundary; a step already
		// running is signalled and given a grace period by the executor.
		if err := ctx.Err(); err != nil {
			outcome := Outcome{
				State:      StateFailed,
				FailedStep: step.Name,
				Reason:     "cancelled",
				Steps:      outcomes,
			}
			log.End(outcome)
			return outcome
		}

		if r.Observe != nil {
			r.Observe(step)
		}

		stepOutcome := r.runStep(ctx, step)
		outcomes = append(outcomes, stepOutcome)
		log.Record(stepOutcome)

		if stepOutcome.ExitCode != 0 {
			if ctx.Err() == context.Canceled {
				outcome := Outcome{
					State:      StateFailed,
					FailedStep: step.Name,
					Reason:     "cancelled",
					Steps:      outcomes,
				}
				log.End(outcome)
				return outcome
			}
			if !step.ContinueOnFailure {
				reason := fmt.Sprintf("step %q exited with code %d", step.Name, stepOutcome.ExitCode)
				if stepOutcome.TimedOut {
					reason = fmt.Sprintf("step %q timed out", step.Name)
				}
				outcome := Outcome{
					State:      StateFailed,
					FailedStep: step.Name,
					Reason:     reason,
					Steps:      outcomes,
				}
				log.End(outcome)
				return outcome
			}
		}
	}

	outcome := Outcome{State: StateSucceeded, Steps: outcomes}
	log.End(outcome)
	return outcome
}

func (r *Runner) confirm() (Outcome, bool) {
	if r.Confirm == nil {
		return Outcome{State: StateAborted, Reason: "confirmation required but no prompt available"}, false
	}
	ok, err := r.Confirm()
	if err != nil {
		return Outcome{State: StateAborted, Reason: fmt.Sprintf("confirmation failed: %v", err)}, false
	}
	if !ok {
		return Outcome{State: StateAborted, Reason: "confirmation declined"}, false
	}
	return Outcome{}, true
}

// runStep invokes one external command under the step's timeout. A timeout
// is recorded as a failed outcome with a synthesized non-zero exit code so
// it feeds the same stop-on-failure logic as an explicit failure exit.
func (r *Runner) runStep(ctx context.Context, step Step) StepOutcome {
	timeout := step.Timeout
	if timeout == 0 {
		timeout = r.DefaultTimeout
	}
	if timeout == 0 {
		timeout = DefaultStepTimeout
	}

	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	stdout, stderr, code, err := r.Exec.Run(stepCtx, step.Command, step.Args...)
	duration := time.Since(started)

	outcome := StepOutcome{
		Step:     step.Name,
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
		Started:  started,
		Duration: duration,
	}

	if stepCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		outcome.TimedOut = true
		if outcome.ExitCode == 0 {
			outcome.ExitCode = -1
		}
		outcome.Stderr = appendNote(outcome.Stderr, fmt.Sprintf("timed out after %s", timeout))
	} else if err != nil && outcome.ExitCode == 0 {
		// Process failed without an exit status (e.g., could not start).
		outcome.ExitCode = -1
		outcome.Stderr = appendNote(outcome.Stderr, err.Error())
	}

	return outcome
}

func appendNote(stderr, note string) string {
	if stderr == "" {
		return note
	}
	return strings.TrimRight(stderr, "\n") + "\n" + note
}
