package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	playground "github.com/haowjy/genai-playground-go"
)

// Provider implements playground.Generator for Anthropic (Claude) models.
type Provider struct {
	client *anthropic.Client
}

// NewProvider creates a new Anthropic provider with the given API key.
// Extra request options (base URL, HTTP client) are passed to the SDK.
// SDK retries are disabled: every request is sent at most once.
func NewProvider(apiKey string, opts ...option.RequestOption) (*Provider, error) {
	if apiKey == "" {
		return nil, &playground.ConfigError{
			Field:  "ANTHROPIC_API_KEY",
			Reason: "not set",
			Err:    playground.ErrMissingAPIKey,
		}
	}

	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	client := anthropic.NewClient(clientOpts...)

	return &Provider{
		client: &client,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() playground.ProviderID {
	return playground.ProviderAnthropic
}

// SupportsModel returns true if this provider supports the given model.
// Anthropic models start with "claude-"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "claude-")
}

// Generate sends one Messages API call.
func (p *Provider) Generate(ctx context.Context, req *playground.GenerateRequest) (*playground.RawResponse, error) {
	// Validate model
	if !p.SupportsModel(req.Model) {
		return nil, &playground.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Anthropic (must start with 'claude-')",
			Err:      playground.ErrInvalidModel,
		}
	}

	apiParams, err := buildMessageParams(req)
	if err != nil {
		return nil, err
	}

	message, err := p.client.Messages.New(ctx, apiParams)
	if err != nil {
		return nil, convertError(err)
	}

	return convertFromAnthropicResponse(message), nil
}

// ListModels returns the models visible to the API key.
func (p *Provider) ListModels(ctx context.Context) ([]playground.ModelInfo, error) {
	registry := playground.GetCapabilityRegistry()

	var models []playground.ModelInfo
	iter := p.client.Models.ListAutoPaging(ctx, anthropic.ModelListParams{})
	for iter.Next() {
		m := iter.Current()
		info := playground.ModelInfo{
			Name:               m.ID,
			DisplayName:        m.DisplayName,
			SupportsGeneration: true,
		}
		if modelCap, err := registry.GetModelCapability(p.Name().String(), m.ID); err == nil {
			info.OutputTokenLimit = modelCap.MaxOutputTokens
		}
		models = append(models, info)
	}
	if err := iter.Err(); err != nil {
		return nil, convertError(err)
	}
	return models, nil
}

// convertError normalizes SDK errors to *playground.ProviderError.
func convertError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return playground.NewProviderError(playground.ProviderAnthropic.String(), apiErr.StatusCode, apiErr.Error())
	}
	return fmt.Errorf("anthropic API call failed: %w", err)
}
