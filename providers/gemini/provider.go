package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	playground "github.com/haowjy/genai-playground-go"
)

// Provider implements playground.Generator for Google's Gemini API.
type Provider struct {
	client *genai.Client
}

// Option configures the underlying genai client.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(url string) Option {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPClient = client
	}
}

// NewProvider creates a Gemini provider with the given API key.
// No network call is made until the first request.
func NewProvider(ctx context.Context, apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, &playground.ConfigError{
			Field:  "GOOGLE_API_KEY",
			Reason: "not set",
			Err:    playground.ErrMissingAPIKey,
		}
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{
		client: client,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() playground.ProviderID {
	return playground.ProviderGemini
}

// SupportsModel returns true for Gemini model names, with or without the "models/" prefix.
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(strings.TrimPrefix(model, "models/"), "gemini-")
}

// Generate sends one generateContent call.
// The full conversation is resent on every call; no server-side chat state is kept.
func (p *Provider) Generate(ctx context.Context, req *playground.GenerateRequest) (*playground.RawResponse, error) {
	if !p.SupportsModel(req.Model) {
		return nil, &playground.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Gemini (must start with 'gemini-')",
			Err:      playground.ErrInvalidModel,
		}
	}

	contents, err := buildContents(req.Conversation(), req.Images)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, buildConfig(req))
	if err != nil {
		return nil, convertError(err)
	}

	return convertResponse(resp, req.Model), nil
}

// ListModels lists the models available to the API key.
func (p *Provider) ListModels(ctx context.Context) ([]playground.ModelInfo, error) {
	var models []playground.ModelInfo
	for m, err := range p.client.Models.All(ctx) {
		if err != nil {
			return nil, convertError(err)
		}
		models = append(models, convertModel(m))
	}
	return models, nil
}

func convertModel(m *genai.Model) playground.ModelInfo {
	info := playground.ModelInfo{
		Name:             strings.TrimPrefix(m.Name, "models/"),
		DisplayName:      m.DisplayName,
		OutputTokenLimit: int(m.OutputTokenLimit),
	}
	for _, action := range m.SupportedActions {
		if action == "generateContent" {
			info.SupportsGeneration = true
			break
		}
	}
	return info
}

// convertError normalizes genai API errors to *playground.ProviderError.
func convertError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return playground.NewProviderError(playground.ProviderGemini.String(), apiErr.Code, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return playground.NewProviderError(playground.ProviderGemini.String(), apiErrPtr.Code, apiErrPtr.Message)
	}
	return fmt.Errorf("gemini API call failed: %w", err)
}
