// Package transformers provides a generation client backed by HuggingFace
// transformers via a Python sidecar process.
//
// The sidecar loads the model once and serves generation requests over
// JSON-RPC 2.0 on stdio, so Go code never links against Python or CUDA:
//
//	Go Client <--JSON-RPC/stdio--> Python Sidecar <--transformers--> Model
//
// # Usage
//
//	client, err := provider.New("transformers", provider.Config{
//	    Model: "Qwen/Qwen2.5-Coder-7B-Instruct",
//	    Options: map[string]any{
//	        "sidecar_path": "/path/to/sidecar.py",
//	    },
//	})
package transformers

import (
	"fmt"
	"time"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "Qwen/Qwen2.5-Coder-7B-Instruct"

// Config holds transformers provider configuration.
type Config struct {
	// SidecarPath is the path to the Python sidecar script.
	// Required.
	SidecarPath string `json:"sidecar_path" yaml:"sidecar_path"`

	// Model is the HuggingFace model id to load.
	// Default: DefaultModel.
	Model string `json:"model" yaml:"model"`

	// PythonPath is the path to the Python interpreter.
	// Default: "python3"
	PythonPath string `json:"python_path" yaml:"python_path"`

	// StartupTimeout is how long to wait for the sidecar to load the
	// model and become ready. Default: 2 minutes; large models take a
	// while to come up.
	StartupTimeout time.Duration `json:"startup_timeout" yaml:"startup_timeout"`

	// RequestTimeout is the default timeout for generation requests.
	// Default: 5 minutes.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// WorkDir is the working directory for the sidecar process.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// Env provides additional environment variables for the sidecar.
	Env map[string]string `json:"env" yaml:"env"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Model:          DefaultModel,
		PythonPath:     "python3",
		StartupTimeout: 2 * time.Minute,
		RequestTimeout: 5 * time.Minute,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SidecarPath == "" {
		return fmt.Errorf("sidecar_path is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.StartupTimeout < 0 {
		return fmt.Errorf("startup_timeout must be >= 0")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be >= 0")
	}
	return nil
}

// WithDefaults returns a copy of the config with defaults applied for
// unset fields.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()

	if c.Model == "" {
		c.Model = defaults.Model
	}
	if c.PythonPath == "" {
		c.PythonPath = defaults.PythonPath
	}
	if c.StartupTimeout == 0 {
		c.StartupTimeout = defaults.StartupTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}

	return c
}

// Option configures a transformers Client.
type Option func(*Client)

// WithSidecarPath sets the path to the sidecar script.
func WithSidecarPath(path string) Option {
	return func(c *Client) { c.cfg.SidecarPath = path }
}

// WithModel sets the model id.
func WithModel(model string) Option {
	return func(c *Client) { c.cfg.Model = model }
}

// WithPythonPath sets the Python interpreter path.
func WithPythonPath(path string) Option {
	return func(c *Client) { c.cfg.PythonPath = path }
}

// WithStartupTimeout sets the sidecar startup timeout.
func WithStartupTimeout(d time.Duration) Option {
	return func(c *Client) { c.cfg.StartupTimeout = d }
}

// WithRequestTimeout sets the default request timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) { c.cfg.RequestTimeout = d }
}

// WithWorkDir sets the working directory for the sidecar.
func WithWorkDir(dir string) Option {
	return func(c *Client) { c.cfg.WorkDir = dir }
}

// WithEnv adds environment variables for the sidecar process.
func WithEnv(env map[string]string) Option {
	return func(c *Client) {
		if c.cfg.Env == nil {
			c.cfg.Env = make(map[string]string)
		}
		for k, v := range env {
			c.cfg.Env[k] = v
		}
	}
}
