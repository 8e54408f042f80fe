package lorem

import (
	"context"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	playground "github.com/haowjy/genai-playground-go"
)

// maxWords caps the length of a generated answer.
const maxWords = 120

// Provider is a mock Generator that generates lorem ipsum text.
// Used for demos and tests without requiring real API keys.
//
// The model name selects the simulated finish reason:
//
//	lorem-cutoff      MAX_TOKENS with partial text
//	lorem-safety      SAFETY, no text
//	lorem-recitation  RECITATION
//	lorem-empty       STOP, no text
//	lorem-other       OTHER
//	anything else     STOP with text
type Provider struct {
	generator *loremgen.Lorem
	delay     time.Duration
}

// Option configures a Provider.
type Option func(*Provider)

// WithDelay makes every call wait d before answering, to simulate latency.
func WithDelay(d time.Duration) Option {
	return func(p *Provider) {
		p.delay = d
	}
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		generator: loremgen.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() playground.ProviderID {
	return playground.ProviderLorem
}

// SupportsModel returns true if the model name starts with "lorem-".
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// Generate returns lorem ipsum text, or a simulated failure selected by the model name.
func (p *Provider) Generate(ctx context.Context, req *playground.GenerateRequest) (*playground.RawResponse, error) {
	// Validate model
	if !p.SupportsModel(req.Model) {
		return nil, &playground.ModelError{
			Model:    req.Model,
			Provider: p.Name().String(),
			Reason:   "model not supported by Lorem provider (must start with 'lorem-')",
			Err:      playground.ErrInvalidModel,
		}
	}

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targetWords := req.Params.GetMaxTokens(maxWords)
	if targetWords > maxWords {
		targetWords = maxWords
	}

	reason := simulatedFinishReason(req.Model)
	var parts []string
	switch reason {
	case playground.FinishReasonStop:
		if !strings.Contains(req.Model, "empty") {
			parts = []string{p.generateTextWords(targetWords)}
		}
	case playground.FinishReasonMaxTokens:
		parts = []string{p.generator.Sentence(3, 6)}
	case playground.FinishReasonRecitation:
		parts = []string{p.generator.Sentence(5, 10)}
	}

	outputTokens := 0
	for _, part := range parts {
		outputTokens += len(strings.Fields(part)) // Word count as proxy
	}

	return &playground.RawResponse{
		Candidates: []playground.Candidate{{
			FinishReason: reason,
			Parts:        parts,
		}},
		Model:        req.Model,
		InputTokens:  estimateTokens(req),
		OutputTokens: outputTokens,
		Metadata: map[string]interface{}{
			"mock":     true,
			"provider": "lorem",
		},
	}, nil
}

// ListModels returns the lorem models from the capability catalog.
func (p *Provider) ListModels(ctx context.Context) ([]playground.ModelInfo, error) {
	return playground.GetCapabilityRegistry().CatalogModels(p.Name().String()), nil
}

// simulatedFinishReason maps a model name onto the finish reason it simulates.
func simulatedFinishReason(model string) playground.FinishReason {
	switch {
	case strings.Contains(model, "cutoff"):
		return playground.FinishReasonMaxTokens
	case strings.Contains(model, "safety"):
		return playground.FinishReasonSafety
	case strings.Contains(model, "recitation"):
		return playground.FinishReasonRecitation
	case strings.Contains(model, "other"):
		return playground.FinishReasonOther
	default:
		return playground.FinishReasonStop
	}
}

// generateTextWords generates lorem ipsum text with approximately targetWords words.
func (p *Provider) generateTextWords(targetWords int) string {
	var sb strings.Builder
	wordCount := 0

	for wordCount < targetWords {
		// Generate sentence with 5-15 words
		sentence := p.generator.Sentence(5, 15)
		sb.WriteString(sentence)
		sb.WriteString(" ")

		wordCount += len(strings.Fields(sentence))
	}

	return strings.TrimSpace(sb.String())
}

// estimateTokens counts words in the request as a token estimate.
func estimateTokens(req *playground.GenerateRequest) int {
	total := 0
	if req.System != nil {
		total += len(strings.Fields(*req.System))
	}
	for _, msg := range req.Conversation() {
		total += len(strings.Fields(msg.Text))
	}
	return total
}
