package provider

import "time"

// Request configures one text-generation call.
// This is the provider-agnostic request format used across all backends.
type Request struct {
	// Prompt is the natural-language instruction sent to the model.
	Prompt string `json:"prompt"`

	// SystemPrompt optionally sets a system message guiding the model.
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Model specifies which model to use (provider-specific name).
	// Examples: "Qwen/Qwen2.5-Coder-7B-Instruct", "qwen2.5:7b"
	Model string `json:"model,omitempty"`

	// MaxNewTokens limits the number of generated tokens.
	MaxNewTokens int `json:"max_new_tokens,omitempty"`

	// Temperature controls response randomness (0.0 = deterministic).
	Temperature float64 `json:"temperature,omitempty"`

	// TopP is the nucleus sampling cutoff.
	TopP float64 `json:"top_p,omitempty"`

	// Sample enables stochastic sampling. When false, backends that
	// support it decode greedily.
	Sample bool `json:"sample,omitempty"`

	// Options holds provider-specific configuration not covered by
	// the standard fields.
	Options map[string]any `json:"options,omitempty"`
}

// Response is the output of a generation call.
type Response struct {
	// Content is the generated text.
	Content string `json:"content"`

	// Model is the actual model used (may differ from requested).
	Model string `json:"model,omitempty"`

	// Duration is the time taken for the call.
	Duration time.Duration `json:"duration"`

	// Usage tracks token consumption, when the backend reports it.
	Usage TokenUsage `json:"usage"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add combines token usage from another TokenUsage.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}
