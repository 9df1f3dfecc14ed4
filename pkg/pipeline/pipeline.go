// Package pipeline loads the declarative release configuration: which
// readiness checks to run and which ordered steps make up a release. The
// file is greenlight.yaml, found by upward search from the working
// directory or given explicitly.
package pipeline

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Pipeline is the parsed greenlight.yaml. It is the explicit deployment
// target: both the checker and the release runner receive it as an
// argument, never as ambient global state.
type Pipeline struct {
	Project             string `yaml:"project"`
	SettingsFile        string `yaml:"settings_file"`
	Checks              Checks `yaml:"checks"`
	Steps               []Step `yaml:"steps"`
	RequireConfirmation bool   `yaml:"require_confirmation"`
}

// Checks configures the readiness checks built for this pipeline.
type Checks struct {
	Tool           string     `yaml:"tool"`
	MinToolVersion string     `yaml:"min_tool_version"`
	RequireFiles   []string   `yaml:"require_files"`
	WarnFiles      []string   `yaml:"warn_files"`
	Sentinels      []Sentinel `yaml:"sentinels"`
	Artifacts      []Artifact `yaml:"artifacts"`
	HealthURL      string     `yaml:"health_url"`
}

// Sentinel names a settings key and the placeholder value it must no
// longer hold.
type Sentinel struct {
	Key         string `yaml:"key"`
	Placeholder string `yaml:"placeholder"`
}

// Artifact names a build artifact and its expected SHA-256 digest.
type Artifact struct {
	File   string `yaml:"file"`
	SHA256 string `yaml:"sha256"`
}

// Step is one ordered, potentially irreversible release action.
type Step struct {
	Name              string   `yaml:"name"`
	Command           string   `yaml:"command"`
	Args              []string `yaml:"args"`
	Timeout           Duration `yaml:"timeout"`
	ContinueOnFailure bool     `yaml:"continue_on_failure"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Parse parses YAML content into a Pipeline and validates it.
func Parse(data []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the parsed pipeline for structural problems.
func (p *Pipeline) Validate() error {
	if p.Project == "" {
		return fmt.Errorf("pipeline: project is required")
	}
	if p.Checks.Tool == "" {
		return fmt.Errorf("pipeline: checks.tool is required")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("pipeline: at least one step is required")
	}

	seen := make(map[string]bool, len(p.Steps))
	for i, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("pipeline: step %d has no name", i)
		}
		if step.Command == "" {
			return fmt.Errorf("pipeline: step %q has no command", step.Name)
		}
		if seen[step.Name] {
			return fmt.Errorf("pipeline: duplicate step name %q", step.Name)
		}
		seen[step.Name] = true
		if step.Timeout < 0 {
			return fmt.Errorf("pipeline: step %q has negative timeout", step.Name)
		}
	}

	for _, s := range p.Checks.Sentinels {
		if s.Key == "" || s.Placeholder == "" {
			return fmt.Errorf("pipeline: sentinel entries need both key and placeholder")
		}
	}
	for _, a := range p.Checks.Artifacts {
		if a.File == "" || a.SHA256 == "" {
			return fmt.Errorf("pipeline: artifact entries need both file and sha256")
		}
	}

	return nil
}
