// Package provider defines the unified interface for text-generation backends.
//
// The article pipeline treats generation as an opaque service: given an
// instruction string and sampling parameters it returns one block of text.
// This package lets the pipeline switch between backends (a local
// transformers sidecar, an Ollama server) without changing callers.
//
// # Usage
//
// Create a client using the registry:
//
//	client, err := provider.New("ollama", provider.Config{
//	    Model: "qwen2.5:7b",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	resp, err := client.Complete(ctx, provider.Request{
//	    Prompt:       "Напиши статью...",
//	    MaxNewTokens: 800,
//	    Temperature:  0.8,
//	    TopP:         0.9,
//	    Sample:       true,
//	})
//
// # Available Providers
//
//   - "transformers": HuggingFace transformers via a Python sidecar
//   - "ollama": Ollama HTTP API
//
// Import github.com/MishaKoshkin/articlegen/providers to register all of them.
package provider

import "context"

// Client is the unified interface for text-generation backends.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends a generation request and returns the full response.
	// The context controls cancellation and timeouts.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Provider returns the provider name (e.g., "transformers", "ollama").
	Provider() string

	// Close releases any resources held by the client.
	// For sidecar-based providers, this stops the sidecar process.
	Close() error
}
