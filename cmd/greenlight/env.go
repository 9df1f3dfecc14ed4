package main

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/greenlight-dev/greenlight/pkg/output"
)

// envConfig holds ambient settings read from the process environment.
// Flags take precedence over these.
type envConfig struct {
	Config      string        `env:"GREENLIGHT_CONFIG"`
	LogDir      string        `env:"GREENLIGHT_LOG_DIR" envDefault:"."`
	NoColor     bool          `env:"GREENLIGHT_NO_COLOR"`
	StepTimeout time.Duration `env:"GREENLIGHT_STEP_TIMEOUT"`
}

func loadEnvConfig() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.NoColor {
		output.DisableColor()
	}
	return cfg, nil
}
