package toolcheck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/cliexec"
)

// AuthCheck verifies that the platform CLI holds an active credential by
// running its read-only identity query and inspecting the JSON it prints.
// The tool must already be installed; wire this check with a prerequisite
// on the InstalledCheck so a missing binary is diagnosed as "not found"
// rather than an authentication failure.
type AuthCheck struct {
	Tool    string         // command name, e.g. "gcloud"
	Args    []string       // identity query args (default: auth list --format=json)
	Timeout time.Duration  // timeout for the query
	Runner  cliexec.Runner // injected for testing
}

// Run executes the authentication check.
func (c *AuthCheck) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("auth: %s", c.Tool),
	}

	args := c.Args
	if len(args) == 0 {
		args = []string{"auth", "list", "--format=json"}
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
			return result.Failf("identity query timed out after %s", timeout)
		}
		result.AddDetailf("identity query failed: %v", err)
		if stderr != "" {
			result.AddDetailf("stderr: %s", strings.TrimSpace(stderr))
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	if !gjson.Valid(stdout) {
		return result.Fail("identity query returned invalid JSON", fmt.Errorf("invalid JSON from %s", c.Tool))
	}

	var account string
	gjson.Parse(stdout).ForEach(func(_, cred gjson.Result) bool {
		if cred.Get("status").String() == "ACTIVE" {
			account = cred.Get("account").String()
			return false
		}
		return true
	})

	if account == "" {
		return result.Fail("no active credential; run the tool's login command",
			fmt.Errorf("%s has no active credential", c.Tool))
	}

	result.AddDetailf("account: %s", account)
	result.Status = check.StatusOK
	return result
}
