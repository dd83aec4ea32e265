package transformers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MishaKoshkin/articlegen/provider"
	"github.com/MishaKoshkin/articlegen/tokens"
)

// Client implements provider.Client for local HuggingFace models via a
// Python sidecar.
type Client struct {
	cfg     Config
	sidecar *Sidecar

	mu      sync.Mutex // Protects sidecar lifecycle
	started bool
}

// NewClient creates a new transformers client.
// The sidecar process is not started until the first request.
func NewClient(opts ...Option) *Client {
	c := &Client{
		cfg: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientWithConfig creates a new transformers client from a Config.
func NewClientWithConfig(cfg Config) *Client {
	return &Client{
		cfg: cfg.WithDefaults(),
	}
}

// Complete implements provider.Client.
// Starts the sidecar if not already running.
func (c *Client) Complete(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if err := c.ensureStarted(ctx); err != nil {
		return nil, provider.NewError("transformers", "generate", err, false)
	}

	proto := c.sidecar.Protocol()
	if proto == nil {
		return nil, provider.NewError("transformers", "generate", errors.New("sidecar not running"), false)
	}

	params := c.buildGenerateParams(req)

	callCtx := ctx
	if c.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	var result GenerateResult

	// Run the call in a goroutine so context cancellation is respected.
	resultCh := make(chan error, 1)
	go func() {
		resultCh <- proto.Call("generate", params, &result)
	}()

	select {
	case <-callCtx.Done():
		return nil, provider.NewError("transformers", "generate", callCtx.Err(), isRetryableError(callCtx.Err()))
	case err := <-resultCh:
		if err != nil {
			return nil, provider.NewError("transformers", "generate", err, isRetryableRPCError(err))
		}
	}

	if result.Text == "" {
		return nil, provider.NewError("transformers", "generate", provider.ErrEmptyResponse, true)
	}

	usage := provider.TokenUsage{
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
		TotalTokens:  result.Usage.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		// Older sidecar scripts do not report usage.
		usage.InputTokens = tokens.Estimate(req.Prompt)
		usage.OutputTokens = tokens.Estimate(result.Text)
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}

	return &provider.Response{
		Content:  result.Text,
		Model:    result.Model,
		Duration: time.Since(start),
		Usage:    usage,
	}, nil
}

// Provider implements provider.Client.
func (c *Client) Provider() string {
	return "transformers"
}

// Close implements provider.Client.
// Stops the sidecar process if running.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sidecar != nil {
		return c.sidecar.Stop()
	}
	return nil
}

// ensureStarted starts the sidecar if not already running.
// A crashed sidecar is restarted automatically.
func (c *Client) ensureStarted(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started && c.sidecar != nil && c.sidecar.IsRunning() {
		return nil
	}

	if c.started && c.sidecar != nil {
		// Sidecar was started but is no longer running: it crashed.
		if exitErr := c.sidecar.ExitError(); exitErr != nil {
			slog.Warn("sidecar crashed, attempting restart",
				slog.Any("exit_error", exitErr))
		}
		_ = c.sidecar.Stop()
		c.sidecar = nil
		c.started = false
	}

	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.sidecar = NewSidecar(c.cfg)
	if err := c.sidecar.Start(ctx); err != nil {
		return err
	}

	c.started = true
	return nil
}

// buildGenerateParams converts a provider.Request to RPC GenerateParams.
func (c *Client) buildGenerateParams(req provider.Request) GenerateParams {
	params := GenerateParams{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Model:        req.Model,
		MaxNewTokens: req.MaxNewTokens,
		Temperature:  req.Temperature,
		TopP:         req.TopP,
		DoSample:     req.Sample,
	}

	// Use the client's model if not specified in the request
	if params.Model == "" {
		params.Model = c.cfg.Model
	}

	return params
}

// isRetryableError checks if a standard error is retryable.
func isRetryableError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// isRetryableRPCError checks if an RPC error is retryable.
func isRetryableRPCError(err error) bool {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr.Code == CodeBackendError
	}
	return false
}
