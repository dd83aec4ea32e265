// Package ollama provides a generation client backed by a local Ollama
// server's HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MishaKoshkin/articlegen/provider"
	"github.com/MishaKoshkin/articlegen/tokens"
)

// DefaultHost is the Ollama API address used when none is configured.
const DefaultHost = "localhost:11434"

// Config holds Ollama provider configuration.
type Config struct {
	// Host is the Ollama server address ("host:port").
	// Default: DefaultHost.
	Host string `json:"host" yaml:"host"`

	// Model is the Ollama model name (e.g., "qwen2.5:7b").
	// Required.
	Model string `json:"model" yaml:"model"`

	// Timeout is the per-request timeout. 0 means no client timeout;
	// the caller's context still applies.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Client implements provider.Client against the Ollama HTTP API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a new Ollama client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// generateRequest is the /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options,omitempty"`
}

// generateOptions maps sampling parameters onto Ollama's option names.
type generateOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// generateResponse is the non-streaming /api/generate response body.
type generateResponse struct {
	Model              string `json:"model"`
	Response           string `json:"response"`
	Done               bool   `json:"done"`
	PromptEvalCount    int    `json:"prompt_eval_count"`
	EvalCount          int    `json:"eval_count"`
	Error              string `json:"error,omitempty"`
	TotalDurationNanos int64  `json:"total_duration"`
}

// Complete implements provider.Client.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}

	body := generateRequest{
		Model:  model,
		Prompt: req.Prompt,
		System: req.SystemPrompt,
		Stream: false,
		Options: generateOptions{
			NumPredict:  req.MaxNewTokens,
			Temperature: req.Temperature,
			TopP:        req.TopP,
		},
	}
	// Ollama has no do_sample switch; temperature zero is its greedy mode.
	if !req.Sample {
		body.Options.Temperature = 0
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, provider.NewError("ollama", "generate", err, false)
	}

	url := fmt.Sprintf("http://%s/api/generate", c.cfg.Host)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, provider.NewError("ollama", "generate", err, false)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, provider.NewError("ollama", "generate", fmt.Errorf("%w: %v", provider.ErrUnavailable, err), true)
	}
	defer httpResp.Body.Close()

	var result generateResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, provider.NewError("ollama", "generate", fmt.Errorf("decode response: %w", err), false)
	}

	if httpResp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d: %s", httpResp.StatusCode, result.Error)
		return nil, provider.NewError("ollama", "generate", err, httpResp.StatusCode >= 500)
	}
	if result.Response == "" {
		return nil, provider.NewError("ollama", "generate", provider.ErrEmptyResponse, true)
	}

	usage := provider.TokenUsage{
		InputTokens:  result.PromptEvalCount,
		OutputTokens: result.EvalCount,
		TotalTokens:  result.PromptEvalCount + result.EvalCount,
	}
	if usage.TotalTokens == 0 {
		usage.InputTokens = tokens.Estimate(req.Prompt)
		usage.OutputTokens = tokens.Estimate(result.Response)
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}

	return &provider.Response{
		Content:  result.Response,
		Model:    result.Model,
		Duration: time.Since(start),
		Usage:    usage,
	}, nil
}

// Provider implements provider.Client.
func (c *Client) Provider() string {
	return "ollama"
}

// Close implements provider.Client. The HTTP client holds no resources
// that need releasing.
func (c *Client) Close() error {
	return nil
}
