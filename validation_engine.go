package playground

import (
	"context"
	"log/slog"
	"sync"
)

// ValidationEngine runs an ordered set of rules over a request.
type ValidationEngine struct {
	mu    sync.RWMutex
	rules []ValidationRule
}

var (
	defaultEngine     *ValidationEngine
	defaultEngineOnce sync.Once
)

// GetValidationEngine returns the shared engine bound to the global capability registry.
func GetValidationEngine() *ValidationEngine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewValidationEngine(GetCapabilityRegistry())
	})
	return defaultEngine
}

// NewValidationEngine returns an engine with the built-in rules bound to registry.
func NewValidationEngine(registry *CapabilityRegistry) *ValidationEngine {
	return &ValidationEngine{
		rules: []ValidationRule{
			&ModelValidationRule{registry: registry},
			&ParameterValidationRule{registry: registry},
			&SafetyValidationRule{registry: registry},
			&VisionValidationRule{registry: registry},
		},
	}
}

// AddRule appends a rule; it runs after the existing ones.
func (ve *ValidationEngine) AddRule(rule ValidationRule) {
	ve.mu.Lock()
	defer ve.mu.Unlock()
	ve.rules = append(ve.rules, rule)
}

// RemoveRule drops the first rule called name and reports whether one was found.
func (ve *ValidationEngine) RemoveRule(name string) bool {
	ve.mu.Lock()
	defer ve.mu.Unlock()

	for i, rule := range ve.rules {
		if rule.Name() == name {
			ve.rules = append(ve.rules[:i:i], ve.rules[i+1:]...)
			return true
		}
	}
	return false
}

// RuleNames lists the rules in run order.
func (ve *ValidationEngine) RuleNames() []string {
	ve.mu.RLock()
	defer ve.mu.RUnlock()

	names := make([]string, len(ve.rules))
	for i, rule := range ve.rules {
		names[i] = rule.Name()
	}
	return names
}

// Validate runs every rule in order and concatenates their warnings.
func (ve *ValidationEngine) Validate(provider string, req *GenerateRequest) []ValidationWarning {
	if req == nil {
		return nil
	}

	ve.mu.RLock()
	defer ve.mu.RUnlock()

	var warnings []ValidationWarning
	for _, rule := range ve.rules {
		warnings = append(warnings, rule.Check(provider, req)...)
	}
	return warnings
}

// GetValidationWarnings validates req with the shared engine.
func GetValidationWarnings(provider string, req *GenerateRequest) []ValidationWarning {
	return GetValidationEngine().Validate(provider, req)
}

// LogWarnings reports each warning at the level matching its severity.
func LogWarnings(ctx context.Context, logger *slog.Logger, warnings []ValidationWarning) {
	for _, w := range warnings {
		logger.Log(ctx, w.Severity.logLevel(), w.Message,
			"code", string(w.Code),
			"field", w.Field,
			"value", w.Value)
	}
}

// FilterWarningsBySeverity keeps the warnings with one of severities.
func FilterWarningsBySeverity(warnings []ValidationWarning, severities ...Severity) []ValidationWarning {
	keep := make(map[Severity]bool, len(severities))
	for _, s := range severities {
		keep[s] = true
	}
	return filterWarnings(warnings, func(w ValidationWarning) bool { return keep[w.Severity] })
}

// FilterWarningsByCode keeps the warnings with one of codes.
func FilterWarningsByCode(warnings []ValidationWarning, codes ...WarningCode) []ValidationWarning {
	keep := make(map[WarningCode]bool, len(codes))
	for _, c := range codes {
		keep[c] = true
	}
	return filterWarnings(warnings, func(w ValidationWarning) bool { return keep[w.Code] })
}

func filterWarnings(warnings []ValidationWarning, keep func(ValidationWarning) bool) []ValidationWarning {
	filtered := make([]ValidationWarning, 0, len(warnings))
	for _, w := range warnings {
		if keep(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
