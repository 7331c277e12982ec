package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported providers.
const (
	ProviderGemini = "gemini"
	ProviderAgents = "agents"
)

// Config selects and parameterizes the chat-completion provider.
type Config struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	APIKey      string  `toml:"api_key"`
	Timeout     string  `toml:"timeout"`

	// Backend and BaseURL configure the go-agents provider
	// (for example "openai" or "ollama").
	Backend string `toml:"backend"`
	BaseURL string `toml:"base_url"`
}

// Env maps environment variable names for LLM configuration.
type Env struct {
	Provider    string
	Model       string
	Temperature string
	MaxTokens   string
	APIKey      string
	Timeout     string
	Backend     string
	BaseURL     string
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	c.loadDefaults()
	return c.validate()
}

// Merge applies non-zero values from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if c.Model == "" {
		switch c.Provider {
		case ProviderAgents:
			c.Model = "gpt-3.5-turbo"
		default:
			c.Model = "gemini-1.5-flash"
		}
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 1024
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.Provider == ProviderAgents && c.Backend == "" {
		c.Backend = "openai"
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Provider); v != "" {
		c.Provider = v
	}
	if v := lookup(env.Model); v != "" {
		c.Model = v
	}
	if v := lookup(env.Temperature); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
	if v := lookup(env.MaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
	if v := lookup(env.APIKey); v != "" {
		c.APIKey = v
	}
	if v := lookup(env.Timeout); v != "" {
		c.Timeout = v
	}
	if v := lookup(env.Backend); v != "" {
		c.Backend = v
	}
	if v := lookup(env.BaseURL); v != "" {
		c.BaseURL = v
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderAgents:
	default:
		return fmt.Errorf("%w: %s (must be gemini or agents)", ErrUnknownProvider, c.Provider)
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
