package transformers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"
)

// Sidecar process state.
type sidecarState int

const (
	sidecarStopped sidecarState = iota
	sidecarStarting
	sidecarRunning
	sidecarStopping
)

// Sidecar manages the Python sidecar process lifecycle.
type Sidecar struct {
	cfg Config

	mu       sync.RWMutex
	state    sidecarState
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stdout   io.ReadCloser
	stderr   io.ReadCloser
	protocol *Protocol
	done     chan struct{} // Closed when process exits
	exitErr  error
}

// NewSidecar creates a new sidecar manager.
func NewSidecar(cfg Config) *Sidecar {
	return &Sidecar{
		cfg:   cfg.WithDefaults(),
		state: sidecarStopped,
	}
}

// Start launches the sidecar process and waits for the model to load.
// Returns an error if the process fails to start or doesn't become ready
// within the configured timeout.
func (s *Sidecar) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != sidecarStopped {
		s.mu.Unlock()
		return fmt.Errorf("sidecar already %s", s.stateString())
	}
	s.state = sidecarStarting
	s.mu.Unlock()

	cmd := exec.CommandContext(ctx, s.cfg.PythonPath, s.cfg.SidecarPath)

	if s.cfg.WorkDir != "" {
		cmd.Dir = s.cfg.WorkDir
	}

	if len(s.cfg.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range s.cfg.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		s.setState(sidecarStopped)
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()
		s.setState(sidecarStopped)
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = stdin.Close()
		_ = stdout.Close()
		s.setState(sidecarStopped)
		return fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		_ = stdout.Close()
		_ = stderr.Close()
		s.setState(sidecarStopped)
		return fmt.Errorf("start sidecar: %w", err)
	}

	s.mu.Lock()
	s.cmd = cmd
	s.stdin = stdin
	s.stdout = stdout
	s.stderr = stderr
	s.protocol = NewProtocol(stdout, stdin)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.waitForExit()
	go s.drainStderr()

	// The init handshake makes the sidecar load the model; it only
	// returns ready once generation can be served.
	initCtx, cancel := context.WithTimeout(ctx, s.cfg.StartupTimeout)
	defer cancel()

	if err := s.initialize(initCtx); err != nil {
		_ = s.Stop()
		return fmt.Errorf("initialize sidecar: %w", err)
	}

	s.setState(sidecarRunning)
	slog.Debug("sidecar started",
		slog.String("model", s.cfg.Model),
		slog.String("python", s.cfg.PythonPath))

	return nil
}

// Stop gracefully shuts down the sidecar process.
func (s *Sidecar) Stop() error {
	s.mu.Lock()
	if s.state == sidecarStopped || s.state == sidecarStopping {
		s.mu.Unlock()
		return nil
	}
	s.state = sidecarStopping
	s.mu.Unlock()

	shutdownErr := s.shutdown()

	// Close stdin to signal EOF
	s.mu.RLock()
	if s.stdin != nil {
		_ = s.stdin.Close()
	}
	s.mu.RUnlock()

	// Wait for process exit with timeout
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		s.mu.RLock()
		if s.cmd != nil && s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}
		s.mu.RUnlock()
		<-s.done
	}

	s.setState(sidecarStopped)
	slog.Debug("sidecar stopped")

	return shutdownErr
}

// IsRunning returns true if the sidecar is running.
func (s *Sidecar) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == sidecarRunning
}

// Protocol returns the JSON-RPC protocol handler.
// Returns nil if the sidecar is not running.
func (s *Sidecar) Protocol() *Protocol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != sidecarRunning {
		return nil
	}
	return s.protocol
}

// Done returns a channel that's closed when the sidecar process exits.
func (s *Sidecar) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.done == nil {
		// Return a closed channel if never started
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.done
}

// ExitError returns the error from the sidecar process exit, if any.
func (s *Sidecar) ExitError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exitErr
}

// initialize sends the init RPC to make the sidecar load the model.
func (s *Sidecar) initialize(ctx context.Context) error {
	s.mu.RLock()
	proto := s.protocol
	s.mu.RUnlock()

	if proto == nil {
		return errors.New("protocol not initialized")
	}

	params := InitParams{Model: s.cfg.Model}

	var result InitResult

	// Run the call in a goroutine so context cancellation is respected.
	resultCh := make(chan error, 1)
	go func() {
		resultCh <- proto.Call("init", params, &result)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-resultCh:
		if err != nil {
			return err
		}
	}

	if !result.Ready {
		if result.Message != "" {
			return fmt.Errorf("sidecar not ready: %s", result.Message)
		}
		return errors.New("sidecar not ready")
	}

	return nil
}

// shutdown sends the shutdown RPC.
func (s *Sidecar) shutdown() error {
	s.mu.RLock()
	proto := s.protocol
	s.mu.RUnlock()

	if proto == nil {
		return nil
	}

	var result ShutdownResult
	if err := proto.Call("shutdown", nil, &result); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("shutdown failed: %s", result.Message)
	}

	return nil
}

// waitForExit waits for the process to exit and captures the error.
func (s *Sidecar) waitForExit() {
	s.mu.RLock()
	cmd := s.cmd
	done := s.done
	s.mu.RUnlock()

	if cmd == nil {
		return
	}

	err := cmd.Wait()

	s.mu.Lock()
	s.exitErr = err
	s.mu.Unlock()

	close(done)
}

// drainStderr reads and logs stderr output. transformers writes progress
// bars and warnings there; they surface at debug level.
func (s *Sidecar) drainStderr() {
	s.mu.RLock()
	stderr := s.stderr
	s.mu.RUnlock()

	if stderr == nil {
		return
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		slog.Debug("sidecar stderr", slog.String("line", scanner.Text()))
	}
}

func (s *Sidecar) setState(state sidecarState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Sidecar) stateString() string {
	switch s.state {
	case sidecarStopped:
		return "stopped"
	case sidecarStarting:
		return "starting"
	case sidecarRunning:
		return "running"
	case sidecarStopping:
		return "stopping"
	default:
		return "unknown"
	}
}
