package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/cliexec"
	"github.com/greenlight-dev/greenlight/pkg/pipeline"
)

func testPipeline(t *testing.T, settingsContent string) *pipeline.Pipeline {
	t.Helper()

	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsContent), 0o644))

	return &pipeline.Pipeline{
		Project:      "task-manager",
		SettingsFile: settingsPath,
		Checks: pipeline.Checks{
			Tool:         "gcloud",
			RequireFiles: []string{filepath.Join(dir, "app.yaml")},
			WarnFiles:    []string{filepath.Join(dir, "README.md")},
			Sentinels: []pipeline.Sentinel{
				{Key: "SECRET_KEY", Placeholder: "dev-secret-key-change-in-production"},
			},
		},
		Steps: []pipeline.Step{{Name: "deploy", Command: "gcloud"}},
	}
}

func TestBuildDefinitions_OrderAndSeverity(t *testing.T) {
	p := testPipeline(t, "SECRET_KEY=rotated\n")

	defs, err := buildDefinitions(p, &cliexec.MockRunner{})
	require.NoError(t, err)
	require.Len(t, defs, 6)

	assert.Equal(t, "tool: gcloud", defs[0].Name)
	assert.Equal(t, check.SeverityBlocking, defs[0].Severity)

	assert.Equal(t, "auth: gcloud", defs[1].Name)
	assert.Equal(t, "tool: gcloud", defs[1].Requires)

	assert.Equal(t, "file: "+p.SettingsFile, defs[2].Name)

	assert.Equal(t, "secret: SECRET_KEY", defs[3].Name)
	assert.Equal(t, defs[2].Name, defs[3].Requires)

	assert.Equal(t, check.SeverityBlocking, defs[4].Severity) // require_files
	assert.Equal(t, check.SeverityWarning, defs[5].Severity)  // warn_files
}

func TestBuildDefinitions_InvalidMinVersion(t *testing.T) {
	p := testPipeline(t, "")
	p.Checks.MinToolVersion = "not-a-version"

	_, err := buildDefinitions(p, &cliexec.MockRunner{})
	assert.Error(t, err)
}

func TestBuildDefinitions_MissingToolDiagnosedOnce(t *testing.T) {
	p := testPipeline(t, "SECRET_KEY=rotated\n")
	require.NoError(t, os.WriteFile(p.Checks.RequireFiles[0], []byte("runtime: python312"), 0o644))
	require.NoError(t, os.WriteFile(p.Checks.WarnFiles[0], []byte("docs"), 0o644))

	runner := &cliexec.MockRunner{
		LookPathFunc: func(string) (string, error) { return "", os.ErrNotExist },
		RunFunc: func(_ context.Context, _ string, _ ...string) (string, string, int, error) {
			t.Fatal("no command should run when the tool is missing")
			return "", "", 0, nil
		},
	}

	defs, err := buildDefinitions(p, runner)
	require.NoError(t, err)

	report := check.RunAll(defs)

	assert.Equal(t, check.StatusFail, report.Results[0].Status) // tool: not found
	assert.Equal(t, check.StatusSkip, report.Results[1].Status) // auth: skipped
	assert.False(t, report.AllBlockingPassed())
}

func TestBuildDefinitions_RotatedSecretsPass(t *testing.T) {
	p := testPipeline(t, "SECRET_KEY=rotated\n")
	require.NoError(t, os.WriteFile(p.Checks.RequireFiles[0], []byte("runtime: python312"), 0o644))

	runner := &cliexec.MockRunner{
		LookPathFunc: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		RunFunc: func(_ context.Context, _ string, args ...string) (string, string, int, error) {
			if len(args) > 0 && args[0] == "auth" {
				return `[{"account":"ops@example.com","status":"ACTIVE"}]`, "", 0, nil
			}
			return "Google Cloud SDK 455.0.0", "", 0, nil
		},
	}

	defs, err := buildDefinitions(p, runner)
	require.NoError(t, err)

	report := check.RunAll(defs)

	// Everything blocking passes; the missing README is only a warning.
	assert.True(t, report.AllBlockingPassed())

	last := report.Results[len(report.Results)-1]
	assert.Equal(t, check.StatusWarn, last.Status)
}

func TestBuildDefinitions_PlaceholderSecretBlocks(t *testing.T) {
	p := testPipeline(t, "SECRET_KEY=dev-secret-key-change-in-production\n")
	require.NoError(t, os.WriteFile(p.Checks.RequireFiles[0], []byte("runtime: python312"), 0o644))

	runner := &cliexec.MockRunner{
		LookPathFunc: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		RunFunc: func(_ context.Context, _ string, args ...string) (string, string, int, error) {
			if len(args) > 0 && args[0] == "auth" {
				return `[{"account":"ops@example.com","status":"ACTIVE"}]`, "", 0, nil
			}
			return "Google Cloud SDK 455.0.0", "", 0, nil
		},
	}

	defs, err := buildDefinitions(p, runner)
	require.NoError(t, err)

	report := check.RunAll(defs)

	assert.False(t, report.AllBlockingPassed())
	assert.Contains(t, report.FailingBlocking(), "secret: SECRET_KEY")
}
