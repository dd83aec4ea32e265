package transformers

import (
	"time"

	"github.com/MishaKoshkin/articlegen/provider"
)

func init() {
	provider.Register("transformers", newFromProviderConfig)
}

// newFromProviderConfig creates a transformers Client from a
// provider.Config. This is the factory function registered with the
// provider registry.
func newFromProviderConfig(cfg provider.Config) (provider.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	localCfg := Config{
		Model: cfg.Model,
	}

	if cfg.Timeout > 0 {
		localCfg.RequestTimeout = cfg.Timeout
	}
	if cfg.WorkDir != "" {
		localCfg.WorkDir = cfg.WorkDir
	}
	if len(cfg.Env) > 0 {
		localCfg.Env = cfg.Env
	}

	if path := cfg.GetStringOption("sidecar_path", ""); path != "" {
		localCfg.SidecarPath = path
	}
	if pyPath := cfg.GetStringOption("python_path", ""); pyPath != "" {
		localCfg.PythonPath = pyPath
	}
	if timeout := cfg.GetStringOption("startup_timeout", ""); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			localCfg.StartupTimeout = d
		}
	}

	return NewClientWithConfig(localCfg), nil
}
