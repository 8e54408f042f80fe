package playground

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GenerationParams represents the generation options a request can carry.
// All fields are optional pointers to distinguish "not set" from "set to zero value".
type GenerationParams struct {
	// MaxTokens sets the maximum number of tokens to generate
	MaxTokens *int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0-2.0)
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP (nucleus sampling) - cumulative probability cutoff (0.0-1.0)
	TopP *float64 `json:"top_p,omitempty"`

	// TopK limits sampling to top K tokens
	TopK *int `json:"top_k,omitempty"`

	// Stop sequences - generation stops if any of these are generated
	Stop []string `json:"stop,omitempty"`

	// SafetyThreshold is applied to every harm category (Gemini only)
	SafetyThreshold *SafetyThreshold `json:"safety_threshold,omitempty"`
}

// SafetyThreshold is a harm block threshold level.
type SafetyThreshold string

const (
	SafetyBlockNone            SafetyThreshold = "BLOCK_NONE"
	SafetyBlockOnlyHigh        SafetyThreshold = "BLOCK_ONLY_HIGH"
	SafetyBlockMediumAndAbove  SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	SafetyBlockLowAndAbove     SafetyThreshold = "BLOCK_LOW_AND_ABOVE"
	SafetyThresholdUnspecified SafetyThreshold = "HARM_BLOCK_THRESHOLD_UNSPECIFIED"
)

// HarmCategories are the categories the safety threshold is applied to.
var HarmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// ParseSafetyThreshold accepts a threshold name in any case.
func ParseSafetyThreshold(s string) (SafetyThreshold, error) {
	t := SafetyThreshold(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case SafetyBlockNone, SafetyBlockOnlyHigh, SafetyBlockMediumAndAbove, SafetyBlockLowAndAbove, SafetyThresholdUnspecified:
		return t, nil
	default:
		return "", fmt.Errorf("unknown safety level %q: %w", s, ErrInvalidConfig)
	}
}

// ValidateGenerationParams validates parameter ranges.
func ValidateGenerationParams(params *GenerationParams) error {
	if params == nil {
		return nil // nil params is valid
	}

	if params.Temperature != nil {
		if *params.Temperature < 0.0 || *params.Temperature > 2.0 {
			return &ValidationError{Field: "temperature", Value: *params.Temperature, Reason: "must be between 0.0 and 2.0", Err: ErrInvalidRequest}
		}
	}

	if params.TopP != nil {
		if *params.TopP < 0.0 || *params.TopP > 1.0 {
			return &ValidationError{Field: "top_p", Value: *params.TopP, Reason: "must be between 0.0 and 1.0", Err: ErrInvalidRequest}
		}
	}

	if params.TopK != nil {
		if *params.TopK < 0 {
			return &ValidationError{Field: "top_k", Value: *params.TopK, Reason: "must be non-negative", Err: ErrInvalidRequest}
		}
	}

	if params.MaxTokens != nil {
		if *params.MaxTokens < 1 {
			return &ValidationError{Field: "max_tokens", Value: *params.MaxTokens, Reason: "must be positive", Err: ErrInvalidRequest}
		}
	}

	if params.SafetyThreshold != nil {
		if _, err := ParseSafetyThreshold(string(*params.SafetyThreshold)); err != nil {
			return &ValidationError{Field: "safety_threshold", Value: *params.SafetyThreshold, Reason: "unknown threshold", Err: ErrInvalidRequest}
		}
	}

	return nil
}

// ParamsFromMap decodes a name -> value mapping (e.g. {"temperature": 0.2,
// "max_tokens": 400}) into a typed GenerationParams.
func ParamsFromMap(params map[string]interface{}) (*GenerationParams, error) {
	if params == nil {
		return &GenerationParams{}, nil
	}

	jsonBytes, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	var gp GenerationParams
	if err := json.Unmarshal(jsonBytes, &gp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}

	return &gp, nil
}

// Merge returns a copy of p with every field set in overrides replacing p's value.
// The result shares no memory with either input.
func (p *GenerationParams) Merge(overrides *GenerationParams) *GenerationParams {
	merged := &GenerationParams{}
	if p != nil {
		merged.MaxTokens = clonePtr(p.MaxTokens)
		merged.Temperature = clonePtr(p.Temperature)
		merged.TopP = clonePtr(p.TopP)
		merged.TopK = clonePtr(p.TopK)
		merged.Stop = append([]string(nil), p.Stop...)
		merged.SafetyThreshold = clonePtr(p.SafetyThreshold)
	}
	if overrides == nil {
		return merged
	}
	if overrides.MaxTokens != nil {
		merged.MaxTokens = clonePtr(overrides.MaxTokens)
	}
	if overrides.Temperature != nil {
		merged.Temperature = clonePtr(overrides.Temperature)
	}
	if overrides.TopP != nil {
		merged.TopP = clonePtr(overrides.TopP)
	}
	if overrides.TopK != nil {
		merged.TopK = clonePtr(overrides.TopK)
	}
	if len(overrides.Stop) > 0 {
		merged.Stop = append([]string(nil), overrides.Stop...)
	}
	if overrides.SafetyThreshold != nil {
		merged.SafetyThreshold = clonePtr(overrides.SafetyThreshold)
	}
	return merged
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// GetMaxTokens returns max_tokens with default fallback
func (p *GenerationParams) GetMaxTokens(defaultValue int) int {
	if p != nil && p.MaxTokens != nil {
		return *p.MaxTokens
	}
	return defaultValue
}

// GetTemperature returns temperature with default fallback
func (p *GenerationParams) GetTemperature(defaultValue float64) float64 {
	if p != nil && p.Temperature != nil {
		return *p.Temperature
	}
	return defaultValue
}

// GetSafetyThreshold returns the safety threshold with default fallback
func (p *GenerationParams) GetSafetyThreshold(defaultValue SafetyThreshold) SafetyThreshold {
	if p != nil && p.SafetyThreshold != nil {
		return *p.SafetyThreshold
	}
	return defaultValue
}
