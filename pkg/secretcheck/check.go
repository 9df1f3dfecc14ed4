// Package secretcheck detects configuration keys still set to their
// shipped placeholder value, the classic un-rotated default secret. The
// comparison is exact token equality, never a substring match, so a value
// that merely resembles the placeholder does not false-positive.
package secretcheck

import (
	"fmt"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/settings"
)

// Check verifies that a settings key has been rotated away from its
// placeholder value. The value itself is never echoed in the result.
type Check struct {
	Key         string          // settings key to inspect
	Placeholder string          // the shipped placeholder token
	Source      settings.Source // injected for testing
}

// Run executes the sentinel check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("secret: %s", c.Key),
	}

	value, ok := c.Source.Lookup(c.Key)
	if !ok {
		result.AddDetailf("set %s in the settings file", c.Key)
		return result.Fail("key not set", fmt.Errorf("settings key %s is not set", c.Key))
	}

	if value == c.Placeholder {
		result.AddDetailf("regenerate %s and set it before deploying", c.Key)
		return result.Fail("placeholder value still set",
			fmt.Errorf("settings key %s still has its placeholder value", c.Key))
	}

	result.AddDetail("value rotated")
	result.Status = check.StatusOK
	return result
}
