package provider

import (
	"context"
	"errors"
	"testing"
)

// mockClient implements Client for testing.
type mockClient struct {
	name string
}

func (m *mockClient) Complete(ctx context.Context, req Request) (*Response, error) {
	return &Response{Content: "mock response"}, nil
}

func (m *mockClient) Provider() string { return m.name }

func (m *mockClient) Close() error { return nil }

func TestRegister(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	Register("test", func(cfg Config) (Client, error) {
		return &mockClient{name: "test"}, nil
	})

	if !IsRegistered("test") {
		t.Error("expected 'test' to be registered")
	}
}

func TestRegister_Panic(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	Register("duplicate", func(cfg Config) (Client, error) {
		return &mockClient{name: "duplicate"}, nil
	})

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("duplicate", func(cfg Config) (Client, error) {
		return &mockClient{name: "duplicate2"}, nil
	})
}

func TestNew(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	Register("test", func(cfg Config) (Client, error) {
		return &mockClient{name: "test"}, nil
	})

	client, err := New("test", Config{Provider: "test"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer client.Close()

	if client.Provider() != "test" {
		t.Errorf("Provider() = %q, want %q", client.Provider(), "test")
	}
}

func TestNew_Unknown(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	_, err := New("nonexistent", Config{})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestAvailable_Sorted(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		Register(name, func(cfg Config) (Client, error) {
			return &mockClient{name: "x"}, nil
		})
	}

	got := Available()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnregister(t *testing.T) {
	ClearRegistry()
	defer ClearRegistry()

	Register("temp", func(cfg Config) (Client, error) {
		return &mockClient{name: "temp"}, nil
	})
	Unregister("temp")

	if IsRegistered("temp") {
		t.Error("expected 'temp' to be unregistered")
	}
}
