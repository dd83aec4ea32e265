package transformers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// JSON-RPC 2.0 protocol types for sidecar communication.

const jsonrpcVersion = "2.0"

// rpcRequest is a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      int64  `json:"id"`
}

// rpcResponse is a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      int64           `json:"id"`
}

// RPCError is a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("RPC error %d: %s (data: %s)", e.Code, e.Message, string(e.Data))
	}
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Application-specific error codes (range -32000 to -32099).
const (
	CodeBackendError  = -32000 // transformers raised during generation
	CodeModelNotFound = -32001 // Model not found/loaded
	CodeOutOfMemory   = -32002 // Model did not fit on the device
)

// GenerateParams are the parameters for the "generate" RPC method.
type GenerateParams struct {
	Prompt       string  `json:"prompt"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	Model        string  `json:"model,omitempty"`
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	TopP         float64 `json:"top_p,omitempty"`
	DoSample     bool    `json:"do_sample,omitempty"`
}

// GenerateResult is the result of a "generate" RPC call.
type GenerateResult struct {
	Text  string      `json:"text"`
	Model string      `json:"model,omitempty"`
	Usage UsageResult `json:"usage"`
}

// UsageResult tracks token usage.
type UsageResult struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// InitParams are the parameters for the "init" RPC method.
type InitParams struct {
	Model string `json:"model"`
}

// InitResult is the result of an "init" RPC call.
type InitResult struct {
	Ready   bool   `json:"ready"`
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

// ShutdownResult is the result of a "shutdown" RPC call.
type ShutdownResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Protocol handles JSON-RPC encoding/decoding over stdio. Messages are
// newline-delimited JSON objects.
type Protocol struct {
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex // Protects writer
	readMu  sync.Mutex // Protects reader
	nextID  int64
}

// NewProtocol creates a new JSON-RPC protocol handler.
func NewProtocol(r io.Reader, w io.Writer) *Protocol {
	return &Protocol{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// Call sends a request and waits for a response. The result is
// unmarshaled into the provided value. Safe for concurrent use; callers
// waiting for responses are serialized.
func (p *Protocol) Call(method string, params, result any) error {
	id := atomic.AddInt64(&p.nextID, 1)

	req := rpcRequest{
		JSONRPC: jsonrpcVersion,
		Method:  method,
		Params:  params,
		ID:      id,
	}

	if err := p.send(req); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	// Hold the read lock for the whole loop so this caller gets its
	// own response.
	p.readMu.Lock()
	defer p.readMu.Unlock()

	for {
		line, err := p.reader.ReadBytes('\n')
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		var resp rpcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}

		// Skip log lines or stray messages with a different ID.
		if resp.ID != id {
			continue
		}

		if resp.Error != nil {
			return resp.Error
		}

		if result != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("unmarshal result: %w", err)
			}
		}

		return nil
	}
}

// send marshals and writes one newline-delimited message.
func (p *Protocol) send(msg any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	_, err = p.writer.Write(data)
	return err
}
