package playground

// ProviderID represents a unique provider identifier.
// Using a typed constant prevents typos and provides compile-time safety.
type ProviderID string

// Known provider identifiers
const (
	// ProviderGemini is Google's Gemini API (the default backend)
	ProviderGemini ProviderID = "gemini"

	// ProviderAnthropic is Anthropic's Claude API
	ProviderAnthropic ProviderID = "anthropic"

	// ProviderLorem is the offline Lorem provider for demos and tests
	ProviderLorem ProviderID = "lorem"
)

// String returns the string representation of the provider ID
func (p ProviderID) String() string {
	return string(p)
}

// IsValid returns true if the provider ID is a known provider
func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderGemini, ProviderAnthropic, ProviderLorem:
		return true
	default:
		return false
	}
}

// DefaultModel returns the model used when DEFAULT_MODEL is not set.
func (p ProviderID) DefaultModel() string {
	switch p {
	case ProviderAnthropic:
		return "claude-haiku-4-5"
	case ProviderLorem:
		return "lorem-fast"
	default:
		return "gemini-1.5-flash"
	}
}

// RequiresAPIKey reports whether the provider needs a credential.
func (p ProviderID) RequiresAPIKey() bool {
	return p != ProviderLorem
}
