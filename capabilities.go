package playground

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/capabilities/*.yaml
var embeddedCapabilities embed.FS

// Capabilities are MODEL METADATA for display and warnings only.
// Provider APIs remain the source of truth; nothing here blocks a request.
//
// The catalog may lag behind vendor releases. Users can override the embedded
// data with LoadCapabilitiesFromFile (CAPABILITIES_FILE) or
// RegisterProviderCapabilities.

// ProviderCapabilities represents the full capability configuration for a provider
type ProviderCapabilities struct {
	Version     string                     `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                     `yaml:"last_updated"` // ISO 8601 date (e.g., "2025-01-15")
	Provider    string                     `yaml:"provider"`
	Models      map[string]ModelCapability `yaml:"models"`
	Constraints ProviderConstraints        `yaml:"constraints"`
}

// ModelCapability represents the capabilities of a specific model
type ModelCapability struct {
	DisplayName     string        `yaml:"display_name"`
	ContextWindow   int           `yaml:"context_window"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	Features        ModelFeatures `yaml:"features"`
	Pricing         PricingInfo   `yaml:"pricing"`
}

// ModelFeatures indicates which features a model supports
type ModelFeatures struct {
	Vision bool `yaml:"vision"`
	Chat   bool `yaml:"chat"`
}

// PricingInfo contains model pricing information (USD)
type PricingInfo struct {
	InputPer1M  float64 `yaml:"input_per_1m"`
	OutputPer1M float64 `yaml:"output_per_1m"`
}

// ProviderConstraints defines provider-wide parameter limits
type ProviderConstraints struct {
	TemperatureMin float64 `yaml:"temperature_min"`
	TemperatureMax float64 `yaml:"temperature_max"`
	TopPMin        float64 `yaml:"top_p_min"`
	TopPMax        float64 `yaml:"top_p_max"`
	TopKMin        int     `yaml:"top_k_min"`
	TopKMax        int     `yaml:"top_k_max"`
	SafetySettings bool    `yaml:"safety_settings"`
}

// CapabilityRegistry manages provider capabilities
type CapabilityRegistry struct {
	capabilities map[string]*ProviderCapabilities
	mu           sync.RWMutex
}

var (
	globalRegistry     *CapabilityRegistry
	globalRegistryOnce sync.Once
	globalRegistryErr  error
)

// GetCapabilityRegistry returns the global capability registry (singleton)
func GetCapabilityRegistry() *CapabilityRegistry {
	globalRegistryOnce.Do(func() {
		globalRegistry = NewCapabilityRegistry()
		globalRegistryErr = globalRegistry.loadEmbedded()
	})
	return globalRegistry
}

// EmbeddedCapabilitiesError returns the error, if any, from parsing the
// embedded catalog. Surfaced by the config check demo.
func EmbeddedCapabilitiesError() error {
	GetCapabilityRegistry()
	return globalRegistryErr
}

// NewCapabilityRegistry returns an empty registry.
func NewCapabilityRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{
		capabilities: make(map[string]*ProviderCapabilities),
	}
}

// loadEmbedded loads every YAML file under config/capabilities
func (r *CapabilityRegistry) loadEmbedded() error {
	entries, err := embeddedCapabilities.ReadDir("config/capabilities")
	if err != nil {
		return fmt.Errorf("failed to read embedded capabilities: %w", err)
	}

	for _, entry := range entries {
		data, err := embeddedCapabilities.ReadFile(path.Join("config/capabilities", entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		if err := r.LoadCapabilitiesYAML(data); err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return nil
}

// LoadCapabilitiesYAML parses one provider document and registers it under its provider name.
func (r *CapabilityRegistry) LoadCapabilitiesYAML(data []byte) error {
	var caps ProviderCapabilities
	if err := yaml.Unmarshal(data, &caps); err != nil {
		return fmt.Errorf("failed to unmarshal capabilities: %w", err)
	}
	if caps.Provider == "" {
		return fmt.Errorf("capabilities document has no provider field")
	}

	r.RegisterProviderCapabilities(caps.Provider, &caps)
	return nil
}

// LoadCapabilitiesFromFile loads provider capabilities from a YAML file.
// The file format matches the embedded documents.
func (r *CapabilityRegistry) LoadCapabilitiesFromFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read capabilities file: %w", err)
	}
	return r.LoadCapabilitiesYAML(data)
}

// RegisterProviderCapabilities programmatically registers provider capabilities.
func (r *CapabilityRegistry) RegisterProviderCapabilities(provider string, caps *ProviderCapabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[provider] = caps
}

// GetProviderCapabilities returns capabilities for a provider
func (r *CapabilityRegistry) GetProviderCapabilities(provider string) (*ProviderCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps, ok := r.capabilities[provider]
	if !ok {
		return nil, fmt.Errorf("no capabilities found for provider: %s", provider)
	}
	return caps, nil
}

// GetModelCapability returns capabilities for a specific model.
// Vendor prefixes ("models/") are ignored, and dated snapshots
// ("claude-haiku-4-5-20251001") resolve to the longest catalog key they start with.
func (r *CapabilityRegistry) GetModelCapability(provider, model string) (*ModelCapability, error) {
	providerCaps, err := r.GetProviderCapabilities(provider)
	if err != nil {
		return nil, err
	}

	model = strings.TrimPrefix(model, "models/")
	if modelCap, ok := providerCaps.Models[model]; ok {
		return &modelCap, nil
	}

	best := ""
	for name := range providerCaps.Models {
		if strings.HasPrefix(model, name+"-") && len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		modelCap := providerCaps.Models[best]
		return &modelCap, nil
	}
	return nil, fmt.Errorf("model %s not found for provider %s", model, provider)
}

// SupportsModel checks if a provider's catalog knows a specific model
func (r *CapabilityRegistry) SupportsModel(provider, model string) bool {
	_, err := r.GetModelCapability(provider, model)
	return err == nil
}

// SupportsVision checks if a model accepts image input
func (r *CapabilityRegistry) SupportsVision(provider, model string) bool {
	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		return false
	}
	return modelCap.Features.Vision
}

// ModelNames returns the catalog's model names for a provider, sorted.
func (r *CapabilityRegistry) ModelNames(provider string) []string {
	caps, err := r.GetProviderCapabilities(provider)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(caps.Models))
	for name := range caps.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CatalogModels returns the catalog as ModelInfo values, for providers that
// cannot list models remotely.
func (r *CapabilityRegistry) CatalogModels(provider string) []ModelInfo {
	names := r.ModelNames(provider)
	caps, err := r.GetProviderCapabilities(provider)
	if err != nil {
		return nil
	}
	infos := make([]ModelInfo, 0, len(names))
	for _, name := range names {
		m := caps.Models[name]
		infos = append(infos, ModelInfo{
			Name:               name,
			DisplayName:        m.DisplayName,
			OutputTokenLimit:   m.MaxOutputTokens,
			SupportsGeneration: true,
		})
	}
	return infos
}

// EstimateCost returns the USD cost of a call, or 0 if the model has no pricing.
func (r *CapabilityRegistry) EstimateCost(provider, model string, inputTokens, outputTokens int) float64 {
	modelCap, err := r.GetModelCapability(provider, model)
	if err != nil {
		return 0
	}
	return float64(inputTokens)/1e6*modelCap.Pricing.InputPer1M +
		float64(outputTokens)/1e6*modelCap.Pricing.OutputPer1M
}

// LoadCapabilitiesFromFile is a convenience function that calls the global registry's LoadCapabilitiesFromFile.
func LoadCapabilitiesFromFile(file string) error {
	return GetCapabilityRegistry().LoadCapabilitiesFromFile(file)
}

// RegisterProviderCapabilities is a convenience function that calls the global registry's RegisterProviderCapabilities.
func RegisterProviderCapabilities(provider string, caps *ProviderCapabilities) {
	GetCapabilityRegistry().RegisterProviderCapabilities(provider, caps)
}
