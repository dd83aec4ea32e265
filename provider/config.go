package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds configuration for creating a generation client.
// Common fields apply to all providers; use Options for provider-specific
// settings.
type Config struct {
	// Provider is the name of the backend to use.
	// Required. Values: "transformers", "ollama"
	Provider string `json:"provider" yaml:"provider" toml:"provider"`

	// Model is the model to use (provider-specific name).
	Model string `json:"model" yaml:"model" toml:"model"`

	// SystemPrompt is a system message prepended to all requests.
	// Optional; the default article prompt carries its own instructions.
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt" toml:"system_prompt"`

	// MaxNewTokens limits the generated length per request.
	MaxNewTokens int `json:"max_new_tokens" yaml:"max_new_tokens" toml:"max_new_tokens"`

	// Temperature controls sampling randomness.
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature"`

	// TopP is the nucleus sampling cutoff.
	TopP float64 `json:"top_p" yaml:"top_p" toml:"top_p"`

	// Sample enables stochastic sampling.
	Sample bool `json:"sample" yaml:"sample" toml:"sample"`

	// Timeout is the maximum duration for one generation request.
	// 0 uses the provider default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// WorkDir is the working directory for spawned processes.
	// Default: current directory.
	WorkDir string `json:"work_dir" yaml:"work_dir" toml:"work_dir"`

	// Env provides additional environment variables for spawned processes.
	Env map[string]string `json:"env" yaml:"env" toml:"env"`

	// Options holds provider-specific configuration.
	//
	// Common options by provider:
	//
	// Transformers:
	//   - "sidecar_path": string (path to the Python sidecar script)
	//   - "python_path": string (default "python3")
	//   - "startup_timeout": string duration (e.g., "30s")
	//
	// Ollama:
	//   - "host": string (default "localhost:11434")
	Options map[string]any `json:"options" yaml:"options" toml:"options"`
}

// DefaultConfig returns a Config with the sampling parameters used for
// article generation. Provider must still be set before use.
func DefaultConfig() Config {
	return Config{
		MaxNewTokens: 800,
		Temperature:  0.8,
		TopP:         0.9,
		Sample:       true,
		Timeout:      5 * time.Minute,
	}
}

// LoadFromEnv populates config fields from environment variables.
// Variables use the ARTICLEGEN_ prefix and take precedence over existing
// values.
//
// Supported variables:
//   - ARTICLEGEN_PROVIDER: Provider name
//   - ARTICLEGEN_MODEL: Model name
//   - ARTICLEGEN_SYSTEM_PROMPT: System prompt
//   - ARTICLEGEN_MAX_NEW_TOKENS: Generated-token limit
//   - ARTICLEGEN_TEMPERATURE: Sampling temperature
//   - ARTICLEGEN_TOP_P: Nucleus sampling cutoff
//   - ARTICLEGEN_TIMEOUT: Request timeout duration (e.g., "5m")
//   - ARTICLEGEN_WORK_DIR: Working directory
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("ARTICLEGEN_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("ARTICLEGEN_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("ARTICLEGEN_SYSTEM_PROMPT"); v != "" {
		c.SystemPrompt = v
	}
	if v := os.Getenv("ARTICLEGEN_MAX_NEW_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxNewTokens = n
		}
	}
	if v := os.Getenv("ARTICLEGEN_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
	if v := os.Getenv("ARTICLEGEN_TOP_P"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.TopP = f
		}
	}
	if v := os.Getenv("ARTICLEGEN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("ARTICLEGEN_WORK_DIR"); v != "" {
		c.WorkDir = v
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.LoadFromEnv()
	return cfg
}

// LoadFile merges settings from a YAML or TOML config file into c.
// The format is chosen by file extension: .yaml/.yml or .toml.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml, or .toml)", ext)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.MaxNewTokens < 0 {
		return fmt.Errorf("max_new_tokens must be >= 0, got %d", c.MaxNewTokens)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must be >= 0, got %f", c.Temperature)
	}
	if c.TopP < 0 || c.TopP > 1 {
		return fmt.Errorf("top_p must be in [0, 1], got %f", c.TopP)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	return nil
}

// WithProvider returns a copy of the config with the specified provider.
func (c Config) WithProvider(provider string) Config {
	c.Provider = provider
	return c
}

// WithModel returns a copy of the config with the specified model.
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithOption returns a copy of the config with the specified option set.
func (c Config) WithOption(key string, value any) Config {
	if c.Options == nil {
		c.Options = make(map[string]any)
	} else {
		// Copy to avoid modifying original
		newOpts := make(map[string]any, len(c.Options)+1)
		for k, v := range c.Options {
			newOpts[k] = v
		}
		c.Options = newOpts
	}
	c.Options[key] = value
	return c
}

// GetStringOption retrieves a string option, returning defaultVal if not set.
func (c Config) GetStringOption(key, defaultVal string) string {
	if c.Options == nil {
		return defaultVal
	}
	if v, ok := c.Options[key].(string); ok {
		return v
	}
	return defaultVal
}

// GetIntOption retrieves an int option, returning defaultVal if not set.
func (c Config) GetIntOption(key string, defaultVal int) int {
	if c.Options == nil {
		return defaultVal
	}
	switch v := c.Options[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultVal
}

// GetBoolOption retrieves a bool option, returning defaultVal if not set.
func (c Config) GetBoolOption(key string, defaultVal bool) bool {
	if c.Options == nil {
		return defaultVal
	}
	if v, ok := c.Options[key].(bool); ok {
		return v
	}
	return defaultVal
}
