// Package pipeline orchestrates article generation end to end:
// build the instruction prompt, call the generation backend, parse the
// returned text, and render the HTML file. The steps run strictly in
// sequence; there is no retry at this layer.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MishaKoshkin/articlegen/article"
	"github.com/MishaKoshkin/articlegen/prompt"
	"github.com/MishaKoshkin/articlegen/provider"
)

// Runner drives one generate -> parse -> render pass.
type Runner struct {
	client provider.Client

	// Sampling parameters forwarded to the backend.
	MaxNewTokens int
	Temperature  float64
	TopP         float64
	Sample       bool

	// Model overrides the client's configured model when non-empty.
	Model string

	// SystemPrompt is forwarded to backends that support one.
	SystemPrompt string
}

// NewRunner creates a Runner with the standard article sampling
// parameters.
func NewRunner(client provider.Client) *Runner {
	return &Runner{
		client:       client,
		MaxNewTokens: 800,
		Temperature:  0.8,
		TopP:         0.9,
		Sample:       true,
	}
}

// NewRunnerFromConfig creates a Runner taking sampling parameters from
// a provider config.
func NewRunnerFromConfig(client provider.Client, cfg provider.Config) *Runner {
	return &Runner{
		client:       client,
		MaxNewTokens: cfg.MaxNewTokens,
		Temperature:  cfg.Temperature,
		TopP:         cfg.TopP,
		Sample:       cfg.Sample,
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
	}
}

// Run generates an article for the keywords and writes it to outPath.
// The parsed document is returned so callers can inspect what was
// rendered. Generation and write failures terminate the run; malformed
// generated text does not (it degrades to an empty document).
func (r *Runner) Run(ctx context.Context, keywords []string, outPath string) (*article.Document, error) {
	instruction, err := prompt.Build(keywords)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	slog.Info("generating article",
		slog.Any("keywords", keywords),
		slog.String("provider", r.client.Provider()))

	resp, err := r.client.Complete(ctx, provider.Request{
		Prompt:       instruction,
		SystemPrompt: r.SystemPrompt,
		Model:        r.Model,
		MaxNewTokens: r.MaxNewTokens,
		Temperature:  r.Temperature,
		TopP:         r.TopP,
		Sample:       r.Sample,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	slog.Info("generation finished",
		slog.String("model", resp.Model),
		slog.Duration("duration", resp.Duration),
		slog.Int("output_tokens", resp.Usage.OutputTokens))

	doc := article.Parse(resp.Content)
	if doc.Title == "" && len(doc.Sections) == 0 && doc.Conclusion == "" {
		slog.Warn("generated text had no recognizable structure")
	}

	if err := article.RenderFile(doc, outPath); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	slog.Info("article written",
		slog.String("path", outPath),
		slog.String("title", doc.Title),
		slog.Int("sections", len(doc.Sections)))

	return doc, nil
}
