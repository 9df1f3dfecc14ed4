package toolcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/cliexec"
	"github.com/greenlight-dev/greenlight/pkg/testutil"
)

func foundRunner(output string) *cliexec.MockRunner {
	return &cliexec.MockRunner{
		LookPathFunc: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		RunFunc: func(_ context.Context, _ string, _ ...string) (string, string, int, error) {
			return output, "", 0, nil
		},
	}
}

func mustVersion(t *testing.T, s string) *semver.Version {
	t.Helper()
	v, err := semver.NewVersion(s)
	require.NoError(t, err)
	return v
}

func TestInstalledCheck_NotFound(t *testing.T) {
	c := &InstalledCheck{
		Tool: "gcloud",
		Runner: &cliexec.MockRunner{
			LookPathFunc: func(string) (string, error) { return "", errors.New("executable file not found in $PATH") },
		},
	}

	result := c.Run()

	assert.Equal(t, check.StatusFail, result.Status)
	assert.True(t, testutil.ContainsDetail(result.Details, "not found in PATH"))
}

func TestInstalledCheck_Found(t *testing.T) {
	c := &InstalledCheck{
		Tool:   "gcloud",
		Runner: foundRunner("Google Cloud SDK 455.0.0"),
	}

	result := c.Run()

	assert.Equal(t, check.StatusOK, result.Status)
	assert.Equal(t, "tool: gcloud", result.Name)
	assert.True(t, testutil.ContainsDetail(result.Details, "path: /usr/bin/gcloud"))
	assert.True(t, testutil.ContainsDetail(result.Details, "version: 455.0.0"))
}

func TestInstalledCheck_MinVersion(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		min        string
		wantStatus check.Status
	}{
		{"meets minimum", "Google Cloud SDK 455.0.0", "450.0.0", check.StatusOK},
		{"exactly minimum", "Google Cloud SDK 450.0.0", "450.0.0", check.StatusOK},
		{"below minimum", "Google Cloud SDK 449.1.2", "450.0.0", check.StatusFail},
		{"no version in output", "something without digits", "450.0.0", check.StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &InstalledCheck{
				Tool:       "gcloud",
				MinVersion: mustVersion(t, tt.min),
				Runner:     foundRunner(tt.output),
			}

			result := c.Run()

			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}
}

func TestInstalledCheck_VersionCommandFails(t *testing.T) {
	c := &InstalledCheck{
		Tool: "gcloud",
		Runner: &cliexec.MockRunner{
			LookPathFunc: func(file string) (string, error) { return "/usr/bin/" + file, nil },
			RunFunc: func(_ context.Context, _ string, _ ...string) (string, string, int, error) {
				return "", "broken install", 1, errors.New("exit status 1")
			},
		},
	}

	result := c.Run()

	assert.Equal(t, check.StatusFail, result.Status)
	assert.True(t, testutil.ContainsDetail(result.Details, "stderr: broken install"))
}

func TestInstalledCheck_Timeout(t *testing.T) {
	c := &InstalledCheck{
		Tool:    "gcloud",
		Timeout: 10 * time.Millisecond,
		Runner: &cliexec.MockRunner{
			LookPathFunc: func(file string) (string, error) { return "/usr/bin/" + file, nil },
			RunFunc: func(ctx context.Context, _ string, _ ...string) (string, string, int, error) {
				<-ctx.Done()
				return "", "", -1, ctx.Err()
			},
		},
	}

	result := c.Run()

	assert.Equal(t, check.StatusFail, result.Status)
	assert.True(t, testutil.ContainsDetail(result.Details, "timed out"))
}

func TestInstalledCheck_DefaultVersionArgs(t *testing.T) {
	runner := foundRunner("1.0.0")
	c := &InstalledCheck{Tool: "gcloud", Runner: runner}

	c.Run()

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, []string{"gcloud", "--version"}, runner.Calls[0])
}
