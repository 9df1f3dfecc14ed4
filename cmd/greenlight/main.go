package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// Process exit codes. Distinct codes let CI tell "step failed" from
// "guard aborted" from "bad configuration".
const (
	ExitOK      = 0
	ExitFailed  = 1
	ExitAborted = 2
	ExitError   = 3
)

// exitError carries a semantic exit code through cobra's RunE chain.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func exitf(code int, format string, args ...interface{}) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

// silentExit exits with a code after the command already reported its
// outcome to the operator.
func silentExit(code int) error {
	return &exitError{code: code}
}

var rootCmd = &cobra.Command{
	Use:           "greenlight",
	Short:         "Deployment readiness checks and guarded releases",
	Long:          "Greenlight runs declarative pre-flight checks against your deployment configuration and, when they pass, executes the declared release steps in order.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		os.Exit(ExitOK)
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "greenlight: %v\n", ee.err)
		}
		os.Exit(ee.code)
	}

	fmt.Fprintf(os.Stderr, "greenlight: %v\n", err)
	os.Exit(ExitError)
}
