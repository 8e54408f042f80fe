package playground

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// MaxVariations caps how many prompt variations one call may request.
const MaxVariations = 5

// DefaultAnalysisPrompt is used by AnalyzeImage when no prompt is given.
const DefaultAnalysisPrompt = "Describe this image"

// Adapter turns a task description into one model call and a classified Outcome.
// It holds no per-call state and is safe to reuse across calls.
type Adapter struct {
	gen       Generator
	model     string
	defaults  *GenerationParams
	system    *string
	validator *ValidationEngine
	logger    *slog.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithDefaults sets the parameters every call starts from.
func WithDefaults(params *GenerationParams) AdapterOption {
	return func(a *Adapter) {
		a.defaults = params
	}
}

// WithSystem sets a system instruction sent with every call.
func WithSystem(system string) AdapterOption {
	return func(a *Adapter) {
		if system == "" {
			a.system = nil
			return
		}
		a.system = &system
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithValidationEngine replaces the global validation engine.
func WithValidationEngine(engine *ValidationEngine) AdapterOption {
	return func(a *Adapter) {
		a.validator = engine
	}
}

// NewAdapter returns an Adapter calling gen with the given model.
func NewAdapter(gen Generator, model string, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		gen:    gen,
		model:  model,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.validator == nil {
		a.validator = GetValidationEngine()
	}
	return a
}

// Model returns the model every call is sent to.
func (a *Adapter) Model() string {
	return a.model
}

// Provider returns the identifier of the underlying generator.
func (a *Adapter) Provider() ProviderID {
	return a.gen.Name()
}

// Generator returns the underlying generator.
func (a *Adapter) Generator() Generator {
	return a.gen
}

// Defaults returns a copy of the default parameters.
func (a *Adapter) Defaults() *GenerationParams {
	return a.defaults.Merge(nil)
}

// Run builds the prompt for kind and generates a response.
// Blank input yields a TransportError outcome marked NotSent, without calling the model.
func (a *Adapter) Run(ctx context.Context, kind TaskKind, in PromptInputs) Outcome {
	prompt, err := BuildPrompt(kind, in)
	if err != nil {
		return RejectedOutcome(err)
	}
	return a.GenerateText(ctx, prompt, TaskParams(kind, in))
}

// GenerateText sends a single prompt, with overrides layered on the defaults.
func (a *Adapter) GenerateText(ctx context.Context, prompt string, overrides *GenerationParams) Outcome {
	return a.Complete(ctx, &GenerateRequest{
		Prompt: prompt,
		Params: overrides,
	})
}

// Complete sends req after filling in the adapter's model, system
// instruction and default parameters where req leaves them empty.
// req itself is not modified.
func (a *Adapter) Complete(ctx context.Context, req *GenerateRequest) Outcome {
	if req == nil {
		return RejectedOutcome(fmt.Errorf("nil request: %w", ErrInvalidRequest))
	}

	call := *req
	if call.Model == "" {
		call.Model = a.model
	}
	if call.System == nil {
		call.System = a.system
	}
	call.Params = a.defaults.Merge(req.Params)

	if err := ValidateGenerationParams(call.Params); err != nil {
		return RejectedOutcome(err)
	}
	if !hasInput(&call) {
		return RejectedOutcome(fmt.Errorf("prompt: %w", ErrEmptyInput))
	}

	provider := a.gen.Name().String()
	LogWarnings(ctx, a.logger, a.validator.Validate(provider, &call))

	start := time.Now()
	resp, err := a.gen.Generate(ctx, &call)
	outcome := ClassifyOutcome(resp, err)

	attrs := []any{
		"provider", provider,
		"model", call.Model,
		"outcome", outcome.Kind.String(),
		"duration", time.Since(start),
	}
	if resp != nil {
		if c, ok := resp.First(); ok {
			attrs = append(attrs, "finish_reason", c.FinishReason.String())
		}
		attrs = append(attrs,
			"input_tokens", resp.InputTokens,
			"output_tokens", resp.OutputTokens,
			"cost_usd", GetCapabilityRegistry().EstimateCost(provider, call.Model, resp.InputTokens, resp.OutputTokens))
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	a.logger.Debug("generate", attrs...)

	return outcome
}

// Variations asks for count variations of base, one call each, in order.
// count is clamped to 1..MaxVariations.
func (a *Adapter) Variations(ctx context.Context, base string, count int) []Outcome {
	count = ClampVariations(count)
	outcomes := make([]Outcome, 0, count)
	for i := 1; i <= count; i++ {
		outcomes = append(outcomes, a.Run(ctx, TaskImagePromptVariation, PromptInputs{Text: base, Index: i}))
	}
	return outcomes
}

// ClampVariations bounds a requested variation count to 1..MaxVariations.
func ClampVariations(count int) int {
	if count < 1 {
		return 1
	}
	if count > MaxVariations {
		return MaxVariations
	}
	return count
}

// AnalyzeImage sends image with prompt, or DefaultAnalysisPrompt if prompt is blank.
func (a *Adapter) AnalyzeImage(ctx context.Context, image ImageInput, prompt string) Outcome {
	if len(image.Data) == 0 {
		return RejectedOutcome(fmt.Errorf("image: %w", ErrEmptyInput))
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultAnalysisPrompt
	}
	return a.Complete(ctx, &GenerateRequest{
		Prompt: prompt,
		Images: []ImageInput{image},
	})
}

func hasInput(req *GenerateRequest) bool {
	for _, m := range req.Conversation() {
		if strings.TrimSpace(m.Text) != "" {
			return true
		}
	}
	return len(req.Images) > 0
}
