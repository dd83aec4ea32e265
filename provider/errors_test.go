package provider

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := NewError("ollama", "generate", ErrUnavailable, true)

	want := "ollama generate: generation backend unavailable"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := NewError("transformers", "start", ErrTimeout, false)

	if !errors.Is(err, ErrTimeout) {
		t.Error("errors.Is failed to find wrapped sentinel")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"wrapped retryable", NewError("ollama", "generate", errors.New("boom"), true), true},
		{"wrapped permanent", NewError("ollama", "generate", errors.New("boom"), false), false},
		{"bare unavailable sentinel", ErrUnavailable, true},
		{"bare timeout sentinel", fmt.Errorf("call: %w", ErrTimeout), true},
		{"unrelated error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}
