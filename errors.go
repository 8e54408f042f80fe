package playground

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrMissingAPIKey indicates no credential was configured for the selected provider.
	// Fatal at startup.
	ErrMissingAPIKey = errors.New("playground: missing API key")

	// ErrInvalidConfig indicates a configuration value could not be used.
	ErrInvalidConfig = errors.New("playground: invalid configuration")

	// ErrInvalidModel indicates the requested model is not supported by the provider.
	ErrInvalidModel = errors.New("playground: invalid or unsupported model")

	// ErrInvalidAPIKey indicates the API key was rejected by the provider.
	ErrInvalidAPIKey = errors.New("playground: invalid API key")

	// ErrRateLimited indicates the provider's rate limit has been exceeded.
	ErrRateLimited = errors.New("playground: rate limit exceeded")

	// ErrInvalidRequest indicates the request parameters are invalid.
	ErrInvalidRequest = errors.New("playground: invalid request")

	// ErrProviderUnavailable indicates the provider service is down or unreachable.
	ErrProviderUnavailable = errors.New("playground: provider unavailable")

	// ErrEmptyInput indicates the primary user input of a prompt template was blank.
	ErrEmptyInput = errors.New("playground: empty input")

	// ErrUnknownTask indicates BuildPrompt was called with an unsupported task kind.
	ErrUnknownTask = errors.New("playground: unknown task kind")
)

// ConfigError represents a startup configuration problem.
// Missing credentials abort the program before any client is constructed.
type ConfigError struct {
	Field  string // Environment variable or flag name
	Reason string // Human-readable explanation
	Err    error  // Wrapped sentinel (ErrMissingAPIKey or ErrInvalidConfig)
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ModelError represents an error related to model validation or availability.
type ModelError struct {
	Model    string // The model that was requested
	Provider string // The provider name
	Reason   string // Human-readable explanation
	Err      error  // Wrapped error (usually ErrInvalidModel)
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model '%s' for provider '%s': %s (%v)", e.Model, e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("model '%s' for provider '%s': %s", e.Model, e.Provider, e.Reason)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// ValidationError represents an error in request parameter validation.
type ValidationError struct {
	Field  string // The parameter field that failed validation
	Value  any    // The invalid value
	Reason string // Human-readable explanation
	Err    error  // Wrapped error (usually ErrInvalidRequest)
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for '%s' (value: %v): %s (%v)", e.Field, e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("validation failed for '%s' (value: %v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ProviderError represents an error from the underlying provider API.
type ProviderError struct {
	Provider   string // The provider name
	StatusCode int    // HTTP status code (if applicable)
	Message    string // Error message from provider
	Retryable  bool   // Whether a later attempt might succeed (informational, never acted on)
	Err        error  // Wrapped sentinel error (ErrRateLimited, ErrProviderUnavailable, etc.)
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider '%s' error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider '%s' error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a ProviderError whose sentinel is derived from the HTTP status.
func NewProviderError(provider string, statusCode int, message string) *ProviderError {
	pe := &ProviderError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
	switch {
	case statusCode == 401 || statusCode == 403:
		pe.Err = ErrInvalidAPIKey
	case statusCode == 429:
		pe.Err = ErrRateLimited
		pe.Retryable = true
	case statusCode == 404:
		pe.Err = ErrInvalidModel
	case statusCode == 400 || statusCode == 422:
		pe.Err = ErrInvalidRequest
	case statusCode >= 500:
		pe.Err = ErrProviderUnavailable
		pe.Retryable = true
	default:
		pe.Err = ErrProviderUnavailable
	}
	return pe
}

// IsRetryable checks if an error is potentially retryable.
// Nothing in this module retries; the flag only shapes the message shown to users.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrProviderUnavailable)
}

// IsInvalidRequest checks if an error indicates invalid request parameters.
func IsInvalidRequest(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrInvalidModel) || errors.Is(err, ErrEmptyInput) {
		return true
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthError checks if an error is related to authentication.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidAPIKey) || errors.Is(err, ErrMissingAPIKey) {
		return true
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		// HTTP 401/403 indicate auth issues
		return providerErr.StatusCode == 401 || providerErr.StatusCode == 403
	}

	return false
}

// IsConfigError reports whether err is a startup configuration problem.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
