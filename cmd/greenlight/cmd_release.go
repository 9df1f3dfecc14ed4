package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenlight-dev/greenlight/pkg/cliexec"
	"github.com/greenlight-dev/greenlight/pkg/healthcheck"
	"github.com/greenlight-dev/greenlight/pkg/output"
	"github.com/greenlight-dev/greenlight/pkg/pipeline"
	"github.com/greenlight-dev/greenlight/pkg/release"
	"github.com/greenlight-dev/greenlight/pkg/runlog"
)

var (
	releaseConfigPath string
	releaseForce      bool
	releaseConfirm    bool
	releaseYes        bool
	releaseLogDir     string
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Run readiness checks, then execute the release steps in order",
	Args:  cobra.NoArgs,
	RunE:  runReleaseCmd,
}

func init() {
	releaseCmd.Flags().StringVar(&releaseConfigPath, "config", "", "path to greenlight.yaml (default: search up from current directory)")
	releaseCmd.Flags().BoolVar(&releaseForce, "force", false, "release even when blocking checks failed")
	releaseCmd.Flags().BoolVar(&releaseConfirm, "confirm", false, "prompt before the first step even if the pipeline does not require it")
	releaseCmd.Flags().BoolVar(&releaseYes, "yes", false, "answer confirmation prompts with yes (non-interactive)")
	releaseCmd.Flags().StringVar(&releaseLogDir, "log-dir", "", "directory for run logs (default: current directory)")
	rootCmd.AddCommand(releaseCmd)
}

func runReleaseCmd(cmd *cobra.Command, _ []string) error {
	envCfg, err := loadEnvConfig()
	if err != nil {
		return exitf(ExitError, "environment config: %v", err)
	}

	report, p, err := runReadiness(envCfg, releaseConfigPath)
	if err != nil {
		return err
	}
	output.PrintReport(report)
	fmt.Println()

	logDir := releaseLogDir
	if logDir == "" {
		logDir = envCfg.LogDir
	}
	logWriter := runlog.New(logDir)

	runner := &release.Runner{
		Exec:                &cliexec.RealRunner{},
		Log:                 &progressSink{next: logWriter},
		Confirm:             confirmFunc(p),
		RequireConfirmation: p.RequireConfirmation || releaseConfirm,
		Project:             p.Project,
		DefaultTimeout:      envCfg.StepTimeout,
		Observe:             output.PrintStepStart,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome := runner.Run(ctx, toSteps(p.Steps), report, releaseForce)
	output.PrintOutcome(outcome)

	if logWriter.Path() != "" {
		fmt.Printf("run log: %s\n", logWriter.Path())
	}
	if err := logWriter.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "greenlight: %v\n", err)
	}

	switch outcome.State {
	case release.StateSucceeded:
		verifyHealth(p)
		return nil
	case release.StateAborted:
		return silentExit(ExitAborted)
	default:
		return silentExit(ExitFailed)
	}
}

func toSteps(steps []pipeline.Step) []release.Step {
	out := make([]release.Step, len(steps))
	for i, s := range steps {
		out[i] = release.Step{
			Name:              s.Name,
			Command:           s.Command,
			Args:              s.Args,
			ContinueOnFailure: s.ContinueOnFailure,
			Timeout:           s.Timeout.AsDuration(),
		}
	}
	return out
}

// confirmFunc builds the interactive y/n prompt. --yes short-circuits it
// for CI use.
func confirmFunc(p *pipeline.Pipeline) func() (bool, error) {
	if releaseYes {
		return func() (bool, error) { return true, nil }
	}
	return func() (bool, error) {
		fmt.Printf("deploy to %q? [y/N] ", p.Project)
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}

// verifyHealth probes the configured health URL after a successful
// release. Failures are reported but never change the exit code; the
// deploy itself succeeded and rollback is the operator's call.
func verifyHealth(p *pipeline.Pipeline) {
	if p.Checks.HealthURL == "" {
		return
	}

	fmt.Println()
	c := &healthcheck.Check{
		URL:     p.Checks.HealthURL,
		Timeout: 30 * time.Second,
		Client:  &healthcheck.RealHTTPClient{},
	}
	output.PrintResult(c.Run())
}

// progressSink tees step outcomes to the terminal and the run log.
type progressSink struct {
	next release.LogSink
}

func (s *progressSink) Begin(project string, started time.Time) {
	s.next.Begin(project, started)
}

func (s *progressSink) Record(o release.StepOutcome) {
	output.PrintStepOutcome(o)
	s.next.Record(o)
}

func (s *progressSink) End(o release.Outcome) {
	s.next.End(o)
}
