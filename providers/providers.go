// Package providers builds the Generator selected by the configuration.
package providers

import (
	"context"
	"fmt"
	"log/slog"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/config"
	"github.com/haowjy/genai-playground-go/providers/anthropic"
	"github.com/haowjy/genai-playground-go/providers/gemini"
	"github.com/haowjy/genai-playground-go/providers/lorem"
)

// New validates cfg and constructs its provider.
// Configuration errors are returned before any client is created,
// so a missing credential never reaches the network.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (playground.Generator, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	if cfg.CapabilitiesFile != "" {
		if err := playground.LoadCapabilitiesFromFile(cfg.CapabilitiesFile); err != nil {
			return nil, &playground.ConfigError{Field: "CAPABILITIES_FILE", Reason: err.Error(), Err: playground.ErrInvalidConfig}
		}
	}

	var (
		gen playground.Generator
		err error
	)
	switch cfg.ProviderID() {
	case playground.ProviderGemini:
		gen, err = gemini.NewProvider(ctx, cfg.GoogleAPIKey)
	case playground.ProviderAnthropic:
		gen, err = anthropic.NewProvider(cfg.AnthropicAPIKey)
	case playground.ProviderLorem:
		gen = lorem.NewProvider(lorem.WithDelay(cfg.LoremDelay))
	default:
		return nil, &playground.ConfigError{Field: "LLM_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", cfg.Provider), Err: playground.ErrInvalidConfig}
	}
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("provider ready", "provider", cfg.Provider, "model", cfg.Model)
	}
	return gen, nil
}

// NewAdapter builds the provider for cfg and wraps it in an Adapter
// carrying the configured model and default parameters.
func NewAdapter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*playground.Adapter, error) {
	gen, err := New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	params, err := cfg.GenerationParams()
	if err != nil {
		return nil, &playground.ConfigError{Field: "SAFETY_LEVEL", Reason: err.Error(), Err: playground.ErrInvalidConfig}
	}
	return playground.NewAdapter(gen, cfg.Model,
		playground.WithDefaults(params),
		playground.WithLogger(logger),
	), nil
}

// ListModels lists models remotely when the provider supports it,
// otherwise from the capability catalog.
func ListModels(ctx context.Context, gen playground.Generator) ([]playground.ModelInfo, error) {
	if lister, ok := gen.(playground.ModelLister); ok {
		return lister.ListModels(ctx)
	}
	return playground.GetCapabilityRegistry().CatalogModels(gen.Name().String()), nil
}
