package playground

import (
	"cmp"
	"fmt"
)

// ModelValidationRule flags models and providers missing from the catalog.
type ModelValidationRule struct {
	registry *CapabilityRegistry
}

func (r *ModelValidationRule) Name() string { return "Model Validation" }

func (r *ModelValidationRule) Check(provider string, req *GenerateRequest) []ValidationWarning {
	if _, err := r.registry.GetProviderCapabilities(provider); err != nil {
		return []ValidationWarning{{
			Code:     WarningCodeCapabilityMissing,
			Category: "model",
			Field:    "provider",
			Value:    provider,
			Message:  fmt.Sprintf("no catalog entry for provider %s", provider),
			Severity: SeverityInfo,
		}}
	}
	if r.registry.SupportsModel(provider, req.Model) {
		return nil
	}
	return []ValidationWarning{{
		Code:     WarningCodeModelUnknown,
		Category: "model",
		Field:    "model",
		Value:    req.Model,
		Message:  fmt.Sprintf("model %s is not in the %s catalog; the catalog may be stale", req.Model, provider),
		Severity: SeverityWarning,
	}}
}

// VisionValidationRule flags image input sent to a text-only model.
type VisionValidationRule struct {
	registry *CapabilityRegistry
}

func (r *VisionValidationRule) Name() string { return "Vision Validation" }

func (r *VisionValidationRule) Check(provider string, req *GenerateRequest) []ValidationWarning {
	if len(req.Images) == 0 {
		return nil
	}
	modelCap, err := r.registry.GetModelCapability(provider, req.Model)
	if err != nil || modelCap.Features.Vision {
		return nil
	}
	return []ValidationWarning{{
		Code:     WarningCodeVisionUnsupported,
		Category: "vision",
		Field:    "images",
		Value:    len(req.Images),
		Message:  fmt.Sprintf("model %s may not accept image input", req.Model),
		Severity: SeverityWarning,
	}}
}

// SafetyValidationRule flags a safety threshold the provider has no setting for.
type SafetyValidationRule struct {
	registry *CapabilityRegistry
}

func (r *SafetyValidationRule) Name() string { return "Safety Validation" }

func (r *SafetyValidationRule) Check(provider string, req *GenerateRequest) []ValidationWarning {
	if req.Params == nil || req.Params.SafetyThreshold == nil {
		return nil
	}
	caps, err := r.registry.GetProviderCapabilities(provider)
	if err != nil || caps.Constraints.SafetySettings {
		return nil
	}
	return []ValidationWarning{{
		Code:     WarningCodeSafetyIgnored,
		Category: "safety",
		Field:    "safety_threshold",
		Value:    *req.Params.SafetyThreshold,
		Message:  fmt.Sprintf("provider %s has no safety settings; SAFETY_LEVEL is ignored", provider),
		Severity: SeverityInfo,
	}}
}

// ParameterValidationRule compares sampling parameters with the provider's
// ranges and max_tokens with the model's output limit.
type ParameterValidationRule struct {
	registry *CapabilityRegistry
}

func (r *ParameterValidationRule) Name() string { return "Parameter Validation" }

func (r *ParameterValidationRule) Check(provider string, req *GenerateRequest) []ValidationWarning {
	p := req.Params
	if p == nil {
		return nil
	}
	caps, err := r.registry.GetProviderCapabilities(provider)
	if err != nil {
		return nil
	}
	c := caps.Constraints

	var warnings []ValidationWarning
	if w, ok := outOfRange(WarningCodeTemperatureOutOfRange, "temperature", p.Temperature, c.TemperatureMin, c.TemperatureMax, SeverityError); ok {
		warnings = append(warnings, w)
	}
	if w, ok := outOfRange(WarningCodeTopPOutOfRange, "top_p", p.TopP, c.TopPMin, c.TopPMax, SeverityError); ok {
		warnings = append(warnings, w)
	}
	if w, ok := outOfRange(WarningCodeTopKOutOfRange, "top_k", p.TopK, c.TopKMin, c.TopKMax, SeverityWarning); ok {
		warnings = append(warnings, w)
	}

	if p.MaxTokens == nil {
		return warnings
	}
	modelCap, err := r.registry.GetModelCapability(provider, req.Model)
	if err == nil && modelCap.MaxOutputTokens > 0 && *p.MaxTokens > modelCap.MaxOutputTokens {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeMaxTokensTooHigh,
			Category: "parameter",
			Field:    "max_tokens",
			Value:    *p.MaxTokens,
			Message:  fmt.Sprintf("max_tokens %d exceeds the %s output limit of %d", *p.MaxTokens, req.Model, modelCap.MaxOutputTokens),
			Severity: SeverityWarning,
		})
	}
	return warnings
}

// outOfRange reports a warning when v is set and falls outside [lo, hi].
func outOfRange[T cmp.Ordered](code WarningCode, field string, v *T, lo, hi T, sev Severity) (ValidationWarning, bool) {
	if v == nil || (*v >= lo && *v <= hi) {
		return ValidationWarning{}, false
	}
	return ValidationWarning{
		Code:     code,
		Category: "parameter",
		Field:    field,
		Value:    *v,
		Message:  fmt.Sprintf("%s %v is outside [%v, %v]", field, *v, lo, hi),
		Severity: sev,
	}, true
}
