package playground

import (
	"context"
)

// Generator defines the interface that every text-generation backend implements.
// It is the only seam between the Prompt Adapter and a vendor SDK, so the
// adapter and its tests never depend on a concrete network client.
//
// Types used by this interface:
//   - GenerateRequest, Message: defined in request.go
//   - RawResponse: defined in response.go
type Generator interface {
	// Generate sends one request and blocks until the provider answers.
	// A non-nil error means the call itself failed (transport, auth, quota);
	// content-level problems (safety block, truncation) come back as a
	// RawResponse with the matching finish reason.
	Generate(ctx context.Context, req *GenerateRequest) (*RawResponse, error)

	// Name returns the provider identifier (e.g., "gemini", "anthropic", "lorem")
	Name() ProviderID

	// SupportsModel returns true if the provider can serve the given model.
	SupportsModel(model string) bool
}

// ModelLister is implemented by generators that can enumerate the models
// available to the configured credential.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// ModelInfo describes one model returned by ListModels.
type ModelInfo struct {
	// Name is the identifier to pass as GenerateRequest.Model
	Name string

	// DisplayName is a human-readable label (may be empty)
	DisplayName string

	// OutputTokenLimit is the maximum output length, 0 if unknown
	OutputTokenLimit int

	// SupportsGeneration reports whether the model accepts text generation calls
	SupportsGeneration bool
}
