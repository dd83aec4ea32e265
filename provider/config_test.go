package provider

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxNewTokens != 800 {
		t.Errorf("expected MaxNewTokens=800, got %d", cfg.MaxNewTokens)
	}
	if cfg.Temperature != 0.8 {
		t.Errorf("expected Temperature=0.8, got %f", cfg.Temperature)
	}
	if cfg.TopP != 0.9 {
		t.Errorf("expected TopP=0.9, got %f", cfg.TopP)
	}
	if !cfg.Sample {
		t.Error("expected Sample=true")
	}
	if cfg.Timeout != 5*time.Minute {
		t.Errorf("expected Timeout=5m, got %v", cfg.Timeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Provider: "test"},
			wantErr: false,
		},
		{
			name:    "missing provider",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name:    "negative max_new_tokens",
			cfg:     Config{Provider: "test", MaxNewTokens: -1},
			wantErr: true,
		},
		{
			name:    "negative temperature",
			cfg:     Config{Provider: "test", Temperature: -0.1},
			wantErr: true,
		},
		{
			name:    "top_p above one",
			cfg:     Config{Provider: "test", TopP: 1.5},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     Config{Provider: "test", Timeout: -1 * time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("ARTICLEGEN_PROVIDER", "ollama")
	t.Setenv("ARTICLEGEN_MODEL", "qwen2.5:7b")
	t.Setenv("ARTICLEGEN_MAX_NEW_TOKENS", "512")
	t.Setenv("ARTICLEGEN_TEMPERATURE", "0.5")
	t.Setenv("ARTICLEGEN_TIMEOUT", "90s")

	cfg := FromEnv()

	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "ollama")
	}
	if cfg.Model != "qwen2.5:7b" {
		t.Errorf("Model = %q, want %q", cfg.Model, "qwen2.5:7b")
	}
	if cfg.MaxNewTokens != 512 {
		t.Errorf("MaxNewTokens = %d, want 512", cfg.MaxNewTokens)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Temperature = %f, want 0.5", cfg.Temperature)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
}

func TestConfig_LoadFromEnv_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("ARTICLEGEN_MAX_NEW_TOKENS", "not-a-number")

	cfg := FromEnv()

	if cfg.MaxNewTokens != 800 {
		t.Errorf("MaxNewTokens = %d, want default 800", cfg.MaxNewTokens)
	}
}

func TestConfig_LoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articlegen.yaml")
	content := `provider: ollama
model: qwen2.5:7b
max_new_tokens: 400
temperature: 0.7
options:
  host: "remote:11434"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "ollama")
	}
	if cfg.MaxNewTokens != 400 {
		t.Errorf("MaxNewTokens = %d, want 400", cfg.MaxNewTokens)
	}
	if got := cfg.GetStringOption("host", ""); got != "remote:11434" {
		t.Errorf("host option = %q, want %q", got, "remote:11434")
	}
}

func TestConfig_LoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articlegen.toml")
	content := `provider = "transformers"
model = "Qwen/Qwen2.5-Coder-7B-Instruct"
top_p = 0.95

[options]
sidecar_path = "/opt/sidecar.py"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Provider != "transformers" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "transformers")
	}
	if cfg.TopP != 0.95 {
		t.Errorf("TopP = %f, want 0.95", cfg.TopP)
	}
	if got := cfg.GetStringOption("sidecar_path", ""); got != "/opt/sidecar.py" {
		t.Errorf("sidecar_path option = %q, want %q", got, "/opt/sidecar.py")
	}
}

func TestConfig_LoadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articlegen.ini")
	if err := os.WriteFile(path, []byte("provider=x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestConfig_WithOption_DoesNotMutateOriginal(t *testing.T) {
	orig := Config{Options: map[string]any{"host": "a"}}
	derived := orig.WithOption("host", "b")

	if orig.GetStringOption("host", "") != "a" {
		t.Error("original config mutated")
	}
	if derived.GetStringOption("host", "") != "b" {
		t.Error("derived config missing new option")
	}
}
