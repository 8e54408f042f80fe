package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playground "github.com/haowjy/genai-playground-go"
)

var configEnvVars = []string{
	"LLM_PROVIDER", "GOOGLE_API_KEY", "ANTHROPIC_API_KEY", "DEFAULT_MODEL",
	"DEFAULT_TEMPERATURE", "DEFAULT_MAX_TOKENS", "DEFAULT_TOP_P", "DEFAULT_TOP_K",
	"SAFETY_LEVEL", "HUGGINGFACE_TOKEN", "IMAGE_MODEL", "OUTPUT_DIR",
	"CAPABILITIES_FILE", "LOG_LEVEL", "LOREM_DELAY",
}

// clearEnv isolates a test from the caller's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.Equal(t, 0.8, cfg.TopP)
	assert.Equal(t, 40, cfg.TopK)
	assert.Equal(t, "BLOCK_MEDIUM_AND_ABOVE", cfg.SafetyLevel)
	assert.Equal(t, "runwayml/stable-diffusion-v1-5", cfg.ImageModel)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.LoremDelay)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-1234567890")
	t.Setenv("DEFAULT_TEMPERATURE", "0.2")
	t.Setenv("DEFAULT_MAX_TOKENS", "400")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, playground.ProviderAnthropic, cfg.ProviderID())
	assert.Equal(t, "claude-haiku-4-5", cfg.Model)
	assert.Equal(t, "sk-ant-1234567890", cfg.APIKey())
	assert.Equal(t, 0.2, cfg.Temperature)
	assert.Equal(t, 400, cfg.MaxTokens)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.NoError(t, cfg.Check())
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_MODEL", "gemini-2.0-flash")

	cfg, err := Load([]string{"--provider=lorem", "--model=lorem-cutoff", "--top-k=5"})
	require.NoError(t, err)

	assert.Equal(t, "lorem", cfg.Provider)
	assert.Equal(t, "lorem-cutoff", cfg.Model)
	assert.Equal(t, 5, cfg.TopK)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	file := filepath.Join(t.TempDir(), "playground.yaml")
	content := "provider: lorem\ndefault_max_tokens: 250\noutput_dir: /tmp/out\nlorem_delay: 2s\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := Load(nil, file)
	require.NoError(t, err)

	assert.Equal(t, "lorem", cfg.Provider)
	assert.Equal(t, "lorem-fast", cfg.Model)
	assert.Equal(t, 250, cfg.MaxTokens)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 2*time.Second, cfg.LoremDelay)
}

func TestLoad_MissingYAMLFileIsSkipped(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, filepath.Join(t.TempDir(), "absent.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"unknown provider", nil, map[string]string{"LLM_PROVIDER": "openai"}},
		{"non-numeric temperature", nil, map[string]string{"DEFAULT_TEMPERATURE": "warm"}},
		{"unknown log level", []string{"--log-level=loud"}, nil},
		{"unknown flag", []string{"--colour=blue"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(tt.args)
			require.Error(t, err)
			assert.True(t, errors.Is(err, playground.ErrInvalidConfig), "error = %v", err)
		})
	}
}

func TestCheck_MissingCredential(t *testing.T) {
	tests := []struct {
		provider  string
		wantField string
	}{
		{"gemini", "GOOGLE_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LLM_PROVIDER", tt.provider)

			cfg, err := Load(nil)
			require.NoError(t, err)

			err = cfg.Check()
			require.Error(t, err)
			assert.True(t, errors.Is(err, playground.ErrMissingAPIKey))

			var cfgErr *playground.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestCheck_LoremNeedsNoKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "lorem")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.NoError(t, cfg.Check())
}

func TestCheck_Ranges(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, "DEFAULT_TEMPERATURE"},
		{"top_p negative", func(c *Config) { c.TopP = -0.1 }, "DEFAULT_TOP_P"},
		{"max tokens zero", func(c *Config) { c.MaxTokens = 0 }, "DEFAULT_MAX_TOKENS"},
		{"top_k negative", func(c *Config) { c.TopK = -1 }, "DEFAULT_TOP_K"},
		{"bad safety level", func(c *Config) { c.SafetyLevel = "BLOCK_SOMETIMES" }, "SAFETY_LEVEL"},
		{"bad provider", func(c *Config) { c.Provider = "openai" }, "LLM_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Provider:    "lorem",
				Temperature: 0.7,
				MaxTokens:   1000,
				TopP:        0.8,
				TopK:        40,
				SafetyLevel: "BLOCK_MEDIUM_AND_ABOVE",
			}
			tt.mutate(cfg)

			err := cfg.Check()
			var cfgErr *playground.ConfigError
			require.True(t, errors.As(err, &cfgErr), "error = %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.True(t, errors.Is(err, playground.ErrInvalidConfig))
		})
	}
}

func TestGenerationParams(t *testing.T) {
	cfg := &Config{Temperature: 0.3, MaxTokens: 50, TopP: 0.9, TopK: 7, SafetyLevel: "block_none"}

	params, err := cfg.GenerationParams()
	require.NoError(t, err)

	assert.Equal(t, 0.3, *params.Temperature)
	assert.Equal(t, 50, *params.MaxTokens)
	assert.Equal(t, 0.9, *params.TopP)
	assert.Equal(t, 7, *params.TopK)
	assert.Equal(t, playground.SafetyBlockNone, *params.SafetyThreshold)

	cfg.Temperature = 1.0
	assert.Equal(t, 0.3, *params.Temperature, "params must not alias the config")
}

func TestSummary_MasksSecrets(t *testing.T) {
	cfg := &Config{
		Provider:         "gemini",
		GoogleAPIKey:     "AIzaSyExampleSecretValue",
		HuggingFaceToken: "hf_short",
		Model:            "gemini-1.5-flash",
		LogLevel:         "warn",
	}

	summary := cfg.Summary()
	assert.Contains(t, summary, "AIzaSyEx...")
	assert.NotContains(t, summary, "AIzaSyExampleSecretValue")
	assert.Contains(t, summary, "********")
	assert.NotContains(t, summary, "hf_short")
	assert.Contains(t, summary, "(not set)")
	assert.True(t, strings.Contains(summary, "gemini-1.5-flash"))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "12345678...", MaskSecret("123456789"))
}

func TestFindDotEnv(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	envPath := filepath.Join(root, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LLM_PROVIDER=lorem\n"), 0o600))

	assert.Equal(t, envPath, FindDotEnv(nested))
}
