// Package toolcheck verifies the external platform CLI: that it is
// installed, optionally at a minimum version, and that it holds an active
// credential. Both checks are read-only; nothing here can mutate remote
// state.
package toolcheck

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/cliexec"
)

// DefaultTimeout bounds read-only probe commands.
const DefaultTimeout = 30 * time.Second

var versionRe = regexp.MustCompile(`\d+\.\d+\.\d+`)

// InstalledCheck verifies that the platform CLI exists and can run.
type InstalledCheck struct {
	Tool        string          // command name, e.g. "gcloud"
	VersionArgs []string        // args to get version (default: --version)
	MinVersion  *semver.Version // minimum version required (inclusive)
	Timeout     time.Duration   // timeout for the version command
	Runner      cliexec.Runner  // injected for testing
}

// Run executes the installation check.
func (c *InstalledCheck) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("tool: %s", c.Tool),
	}

	path, err := c.Runner.LookPath(c.Tool)
	if err != nil {
		return result.Failf("not found in PATH: %v", err)
	}
	result.AddDetailf("path: %s", path)

	args := c.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stdout, stderr, _, err := c.Runner.Run(ctx, c.Tool, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result.Failf("version command timed out after %s", timeout)
		}
		result.AddDetailf("version command failed: %v", err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", stderr)
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	output := stdout
	if output == "" {
		output = stderr
	}

	if c.MinVersion != nil {
		if err := c.checkMinVersion(output, &result); err != nil {
			return result
		}
	} else if v := versionRe.FindString(output); v != "" {
		result.AddDetailf("version: %s", v)
	}

	result.Status = check.StatusOK
	return result
}

func (c *InstalledCheck) checkMinVersion(output string, result *check.Result) error {
	raw := versionRe.FindString(output)
	if raw == "" {
		err := fmt.Errorf("no version found in output %q", output)
		result.Fail("could not parse version from output", err)
		return err
	}

	found, err := semver.NewVersion(raw)
	if err != nil {
		result.Failf("invalid version %q: %v", raw, err)
		return err
	}

	result.AddDetailf("version: %s", found)

	if found.LessThan(c.MinVersion) {
		err := fmt.Errorf("version %s below minimum %s", found, c.MinVersion)
		result.Fail(fmt.Sprintf("version %s < minimum %s", found, c.MinVersion), err)
		return err
	}
	return nil
}
