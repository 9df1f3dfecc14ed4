package main

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/greenlight-dev/greenlight/pkg/artifactcheck"
	"github.com/greenlight-dev/greenlight/pkg/check"
	"github.com/greenlight-dev/greenlight/pkg/cliexec"
	"github.com/greenlight-dev/greenlight/pkg/filecheck"
	"github.com/greenlight-dev/greenlight/pkg/healthcheck"
	"github.com/greenlight-dev/greenlight/pkg/pipeline"
	"github.com/greenlight-dev/greenlight/pkg/secretcheck"
	"github.com/greenlight-dev/greenlight/pkg/settings"
	"github.com/greenlight-dev/greenlight/pkg/toolcheck"
)

// emptySettings stands in when the settings file could not be loaded;
// sentinel checks are wired to skip via their prerequisite in that case.
type emptySettings struct{}

func (emptySettings) Lookup(string) (string, bool) { return "", false }

// buildDefinitions turns the pipeline configuration into the ordered check
// list. Ordering matters: prerequisite checks come before their dependents
// so failures are diagnosed precisely (a missing CLI reports "not found"
// once; the auth check skips instead of faking an authentication failure).
func buildDefinitions(p *pipeline.Pipeline, runner cliexec.Runner) ([]check.Definition, error) {
	var defs []check.Definition

	var minVersion *semver.Version
	if p.Checks.MinToolVersion != "" {
		v, err := semver.NewVersion(p.Checks.MinToolVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid min_tool_version %q: %w", p.Checks.MinToolVersion, err)
		}
		minVersion = v
	}

	toolName := "tool: " + p.Checks.Tool
	defs = append(defs, check.Definition{
		Name:     toolName,
		Severity: check.SeverityBlocking,
		Checker: &toolcheck.InstalledCheck{
			Tool:       p.Checks.Tool,
			MinVersion: minVersion,
			Runner:     runner,
		},
	})

	defs = append(defs, check.Definition{
		Name:     "auth: " + p.Checks.Tool,
		Severity: check.SeverityBlocking,
		Requires: toolName,
		Checker: &toolcheck.AuthCheck{
			Tool:   p.Checks.Tool,
			Runner: runner,
		},
	})

	fs := &filecheck.RealFileSystem{}

	var settingsName string
	if p.SettingsFile != "" {
		settingsName = "file: " + p.SettingsFile
		defs = append(defs, check.Definition{
			Name:     settingsName,
			Severity: check.SeverityBlocking,
			Checker:  &filecheck.Check{Path: p.SettingsFile, NotEmpty: true, FS: fs},
		})
	}

	var source settings.Source = emptySettings{}
	if p.SettingsFile != "" {
		if loaded, err := settings.Load(p.SettingsFile); err == nil {
			source = loaded
		}
	}

	for _, s := range p.Checks.Sentinels {
		defs = append(defs, check.Definition{
			Name:     "secret: " + s.Key,
			Severity: check.SeverityBlocking,
			Requires: settingsName,
			Checker: &secretcheck.Check{
				Key:         s.Key,
				Placeholder: s.Placeholder,
				Source:      source,
			},
		})
	}

	for _, path := range p.Checks.RequireFiles {
		defs = append(defs, check.Definition{
			Name:     "file: " + path,
			Severity: check.SeverityBlocking,
			Checker:  &filecheck.Check{Path: path, FS: fs},
		})
	}

	for _, path := range p.Checks.WarnFiles {
		defs = append(defs, check.Definition{
			Name:     "file: " + path,
			Severity: check.SeverityWarning,
			Checker:  &filecheck.Check{Path: path, FS: fs},
		})
	}

	for _, a := range p.Checks.Artifacts {
		defs = append(defs, check.Definition{
			Name:     "artifact: " + a.File,
			Severity: check.SeverityBlocking,
			Checker: &artifactcheck.Check{
				File:     a.File,
				Expected: a.SHA256,
				Opener:   &artifactcheck.RealFileOpener{},
			},
		})
	}

	if p.Checks.HealthURL != "" {
		defs = append(defs, check.Definition{
			Name:     "health: " + p.Checks.HealthURL,
			Severity: check.SeverityWarning,
			Checker: &healthcheck.Check{
				URL:    p.Checks.HealthURL,
				Client: &healthcheck.RealHTTPClient{},
			},
		})
	}

	return defs, nil
}
