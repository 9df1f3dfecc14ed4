package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/cliexec"
	"github.com/greenlight-dev/greenlight/pkg/output"
	"github.com/greenlight-dev/greenlight/pkg/pipeline"
)

var checkConfigPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run readiness checks without touching the platform",
	Args:  cobra.NoArgs,
	RunE:  runCheckCmd,
}

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "path to greenlight.yaml (default: search up from current directory)")
	rootCmd.AddCommand(checkCmd)
}

func runCheckCmd(_ *cobra.Command, _ []string) error {
	envCfg, err := loadEnvConfig()
	if err != nil {
		return exitf(ExitError, "environment config: %v", err)
	}

	report, _, err := runReadiness(envCfg, checkConfigPath)
	if err != nil {
		return err
	}

	output.PrintReport(report)

	if !report.AllBlockingPassed() {
		return silentExit(ExitFailed)
	}
	return nil
}

// runReadiness loads the pipeline and executes every check definition.
// Errors here are configuration problems (exit 3), never check failures.
func runReadiness(envCfg envConfig, configPath string) (check.Report, *pipeline.Pipeline, error) {
	wd, err := os.Getwd()
	if err != nil {
		return check.Report{}, nil, exitf(ExitError, "failed to get working directory: %v", err)
	}

	if configPath == "" {
		configPath = envCfg.Config
	}

	p, _, err := pipeline.Load(wd, configPath)
	if err != nil {
		return check.Report{}, nil, exitf(ExitError, "%v", err)
	}

	defs, err := buildDefinitions(p, &cliexec.RealRunner{})
	if err != nil {
		return check.Report{}, nil, exitf(ExitError, "%v", err)
	}

	return check.RunAll(defs), p, nil
}
