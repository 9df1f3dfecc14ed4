// Package output renders check results and release progress for the
// operator's terminal.
package output

import (
	"fmt"
	"time"

	"github.com/jwalton/go-supportscolor"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/release"
)

const timeUnit = time.Millisecond

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		DisableColor()
	}
}

// DisableColor strips ANSI colors from all output.
func DisableColor() {
	green, red, yellow, dim, reset = "", "", "", "", ""
}

// PrintResult outputs a check result with colored status.
func PrintResult(r check.Result) {
	switch r.Status {
	case check.StatusOK:
		fmt.Printf("%s[OK]%s   %s\n", green, reset, r.Name)
	case check.StatusWarn:
		fmt.Printf("%s[WARN]%s %s\n", yellow, reset, r.Name)
	case check.StatusSkip:
		fmt.Printf("%s[SKIP]%s %s\n", dim, reset, r.Name)
	default:
		fmt.Printf("%s[FAIL]%s %s\n", red, reset, r.Name)
	}
	for _, d := range r.Details {
		fmt.Printf("       %s\n", d)
	}
}

// PrintReport outputs every result plus a summary line.
func PrintReport(report check.Report) {
	for _, r := range report.Results {
		PrintResult(r)
	}
	fmt.Println()
	if report.AllBlockingPassed() {
		fmt.Printf("%sready to deploy%s\n", green, reset)
	} else {
		fmt.Printf("%snot ready:%s blocking checks failed\n", red, reset)
		for _, name := range report.FailingBlocking() {
			fmt.Printf("  - %s\n", name)
		}
	}
}

// PrintStepStart announces a release step before it runs.
func PrintStepStart(step release.Step) {
	fmt.Printf("%s==>%s %s\n", dim, reset, step.Name)
}

// PrintStepOutcome outputs one completed step.
func PrintStepOutcome(o release.StepOutcome) {
	if o.ExitCode == 0 {
		fmt.Printf("%s[OK]%s   %s (%s)\n", green, reset, o.Step, o.Duration.Round(timeUnit))
		return
	}
	label := fmt.Sprintf("exit %d", o.ExitCode)
	if o.TimedOut {
		label = "timed out"
	}
	fmt.Printf("%s[FAIL]%s %s (%s, %s)\n", red, reset, o.Step, label, o.Duration.Round(timeUnit))
	if o.Stderr != "" {
		fmt.Printf("       %s\n", o.Stderr)
	}
}

// PrintOutcome outputs the terminal state of a release attempt.
func PrintOutcome(o release.Outcome) {
	fmt.Println()
	switch o.State {
	case release.StateSucceeded:
		fmt.Printf("%srelease succeeded%s (%d steps)\n", green, reset, len(o.Steps))
	case release.StateAborted:
		fmt.Printf("%srelease aborted:%s %s\n", yellow, reset, o.Reason)
	default:
		fmt.Printf("%srelease failed%s at step %q: %s\n", red, reset, o.FailedStep, o.Reason)
	}
}
