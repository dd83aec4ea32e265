package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_Defaults(t *testing.T) {
	f, _, err := parseFlags([]string{"articlegen", "--prompt", "волна корабль плыть приключение сокровища"})
	require.NoError(t, err)

	assert.Equal(t, "article.html", f.output)
	assert.Equal(t, "transformers", f.provider)
	assert.Equal(t, 800, f.maxNewTokens)
	assert.InDelta(t, 0.8, f.temperature, 1e-9)
	assert.InDelta(t, 0.9, f.topP, 1e-9)
	assert.False(t, f.greedy)
	assert.Equal(t, 5*time.Minute, f.timeout)
}

func TestParseFlags_RequiresPromptOrWatch(t *testing.T) {
	_, _, err := parseFlags([]string{"articlegen"})
	require.Error(t, err)

	_, _, err = parseFlags([]string{"articlegen", "--prompt", "a b c d e", "--watch", "words.txt"})
	require.Error(t, err)

	_, _, err = parseFlags([]string{"articlegen", "--watch", "words.txt"})
	require.NoError(t, err)
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	_, _, err := parseFlags([]string{"articlegen", "--no-such-flag"})
	require.Error(t, err)
}

func TestBuildConfig_FlagOverrides(t *testing.T) {
	f, fs, err := parseFlags([]string{"articlegen",
		"--prompt", "a b c d e",
		"--provider", "ollama",
		"--model", "llama3",
		"--temperature", "0.2",
		"--greedy",
	})
	require.NoError(t, err)

	cfg, err := buildConfig(f, fs)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "llama3", cfg.Model)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.False(t, cfg.Sample)
	// Untouched flags keep the rendering defaults.
	assert.Equal(t, 800, cfg.MaxNewTokens)
	assert.InDelta(t, 0.9, cfg.TopP, 1e-9)
}

func TestBuildConfig_FileThenEnvThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: ollama\nmodel: from-file\nmax_new_tokens: 400\n"), 0o644))

	t.Setenv("ARTICLEGEN_MODEL", "from-env")

	f, fs, err := parseFlags([]string{"articlegen",
		"--prompt", "a b c d e",
		"--config", path,
		"--max-new-tokens", "123",
	})
	require.NoError(t, err)

	cfg, err := buildConfig(f, fs)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.Provider, "file value survives when the flag is not set")
	assert.Equal(t, "from-env", cfg.Model, "env overrides file")
	assert.Equal(t, 123, cfg.MaxNewTokens, "explicit flag overrides everything")
}

func TestBuildConfig_InvalidConfigFile(t *testing.T) {
	f, fs, err := parseFlags([]string{"articlegen",
		"--prompt", "a b c d e",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
	})
	require.NoError(t, err)

	_, err = buildConfig(f, fs)
	require.Error(t, err)
}
