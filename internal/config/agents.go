package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvAgentsMaxSteps overrides the per-run model call budget.
const EnvAgentsMaxSteps = "AGENTS_MAX_STEPS"

// AgentsConfig bounds the reason/act loop of each agent run.
type AgentsConfig struct {
	MaxSteps int `toml:"max_steps"`
}

// Finalize applies defaults, loads environment overrides, and validates the agents configuration.
func (c *AgentsConfig) Finalize() error {
	if c.MaxSteps == 0 {
		c.MaxSteps = 8
	}
	if v := os.Getenv(EnvAgentsMaxSteps); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxSteps = n
		}
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be positive")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AgentsConfig) Merge(overlay *AgentsConfig) {
	if overlay.MaxSteps != 0 {
		c.MaxSteps = overlay.MaxSteps
	}
}
