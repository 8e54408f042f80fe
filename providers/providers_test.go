package providers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/config"
)

func baseConfig(provider string) *config.Config {
	return &config.Config{
		Provider:    provider,
		Model:       playground.ProviderID(provider).DefaultModel(),
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        0.8,
		TopK:        40,
		SafetyLevel: "BLOCK_MEDIUM_AND_ABOVE",
	}
}

func TestNew_MissingCredential(t *testing.T) {
	for _, provider := range []string{"gemini", "anthropic"} {
		t.Run(provider, func(t *testing.T) {
			gen, err := New(context.Background(), baseConfig(provider), nil)

			assert.Nil(t, gen)
			require.Error(t, err)
			assert.True(t, errors.Is(err, playground.ErrMissingAPIKey))
			assert.True(t, playground.IsConfigError(err))
		})
	}
}

func TestNewAdapter_MissingCredentialFromEnvironment(t *testing.T) {
	for _, provider := range []string{"gemini", "anthropic"} {
		t.Run(provider, func(t *testing.T) {
			for _, name := range []string{"GOOGLE_API_KEY", "ANTHROPIC_API_KEY", "DEFAULT_MODEL", "CAPABILITIES_FILE"} {
				t.Setenv(name, "")
				os.Unsetenv(name)
			}
			t.Setenv("LLM_PROVIDER", provider)

			cfg, err := config.Load(nil)
			require.NoError(t, err, "a missing key must not fail parsing")

			adapter, err := NewAdapter(context.Background(), cfg, nil)
			assert.Nil(t, adapter)
			require.Error(t, err)
			assert.True(t, errors.Is(err, playground.ErrMissingAPIKey), "error = %v", err)

			var cfgErr *playground.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.NotEqual(t, "arguments", cfgErr.Field)
		})
	}
}

func TestNew_Providers(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *config.Config
		wantID playground.ProviderID
	}{
		{"lorem", baseConfig("lorem"), playground.ProviderLorem},
		{"anthropic", func() *config.Config {
			c := baseConfig("anthropic")
			c.AnthropicAPIKey = "sk-ant-test"
			return c
		}(), playground.ProviderAnthropic},
		{"gemini", func() *config.Config {
			c := baseConfig("gemini")
			c.GoogleAPIKey = "test-key"
			return c
		}(), playground.ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := New(context.Background(), tt.cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, gen.Name())
			assert.True(t, gen.SupportsModel(tt.cfg.Model))
		})
	}
}

func TestNew_CapabilitiesFile(t *testing.T) {
	cfg := baseConfig("lorem")
	cfg.CapabilitiesFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(context.Background(), cfg, nil)
	assert.True(t, errors.Is(err, playground.ErrInvalidConfig), "error = %v", err)

	file := filepath.Join(t.TempDir(), "caps.yaml")
	content := `
provider: lorem-extra
models:
  lorem-extra-fast:
    display_name: Extra
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	cfg.CapabilitiesFile = file

	_, err = New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.True(t, playground.GetCapabilityRegistry().SupportsModel("lorem-extra", "lorem-extra-fast"))
}

func TestNewAdapter_Lorem(t *testing.T) {
	adapter, err := NewAdapter(context.Background(), baseConfig("lorem"), nil)
	require.NoError(t, err)

	assert.Equal(t, "lorem-fast", adapter.Model())
	assert.Equal(t, 1000, adapter.Defaults().GetMaxTokens(0))

	outcome := adapter.Run(context.Background(), playground.TaskCreativeWrite, playground.PromptInputs{Text: "autumn"})
	assert.True(t, outcome.Succeeded(), "outcome = %v", outcome)
}

func TestListModels_Lorem(t *testing.T) {
	gen, err := New(context.Background(), baseConfig("lorem"), nil)
	require.NoError(t, err)

	models, err := ListModels(context.Background(), gen)
	require.NoError(t, err)
	assert.NotEmpty(t, models)
}
