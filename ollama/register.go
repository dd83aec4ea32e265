package ollama

import "github.com/MishaKoshkin/articlegen/provider"

func init() {
	provider.Register("ollama", newFromProviderConfig)
}

// newFromProviderConfig creates an Ollama Client from a provider.Config.
func newFromProviderConfig(cfg provider.Config) (provider.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewClient(Config{
		Host:    cfg.GetStringOption("host", DefaultHost),
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
}
