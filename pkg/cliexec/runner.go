// Package cliexec abstracts invocation of the external platform CLI.
// Both readiness probes and release steps go through the same Runner so
// tests can substitute a mock and production code gets uniform exit-code,
// output, and termination handling.
package cliexec

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"
)

// DefaultGraceDelay is how long a signalled process is given to exit
// before it is abandoned and force-killed.
const DefaultGraceDelay = 10 * time.Second

// Runner abstracts command execution for testability.
type Runner interface {
	// LookPath searches for an executable in PATH.
	LookPath(file string) (string, error)

	// Run executes a command, blocking until it exits or ctx is done.
	// exitCode is the process exit status, or -1 when the process was
	// terminated by a signal or never ran.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, exitCode int, err error)
}

// RealRunner implements Runner using actual OS commands.
type RealRunner struct {
	// GraceDelay bounds how long a cancelled command may linger after
	// being signalled. Zero means DefaultGraceDelay.
	GraceDelay time.Duration
}

// LookPath searches for an executable in PATH.
func (r *RealRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its captured output and exit code.
// On ctx cancellation the process receives SIGTERM and, after GraceDelay,
// SIGKILL.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) (string, string, int, error) {
	grace := r.GraceDelay
	if grace == 0 {
		grace = DefaultGraceDelay
	}

	// #nosec G204 -- intentional: commands come from the operator's own
	// pipeline configuration.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = grace

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	code := exitCode(cmd, err)
	return outBuf.String(), errBuf.String(), code, err
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		// Process never started (e.g., binary missing).
		return -1
	}
	return 0
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc func(file string) (string, error)
	RunFunc      func(ctx context.Context, name string, args ...string) (string, string, int, error)

	// Calls records each invocation of Run as [name, args...].
	Calls [][]string
}

// LookPath calls the mock function.
func (m *MockRunner) LookPath(file string) (string, error) {
	return m.LookPathFunc(file)
}

// Run records the call and delegates to the mock function.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, string, int, error) {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	return m.RunFunc(ctx, name, args...)
}
