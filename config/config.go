// Package config resolves the playground settings from flags, environment
// variables, an optional YAML file and a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	playground "github.com/haowjy/genai-playground-go"
)

// Config holds every setting the demo programs read.
// Each field can be set by flag, by environment variable or by YAML key.
type Config struct {
	Provider         string        `yaml:"provider" kong:"help='LLM provider (gemini, anthropic, lorem)',env='LLM_PROVIDER',default='gemini',enum='gemini,anthropic,lorem'"`
	GoogleAPIKey     string        `yaml:"google_api_key" kong:"help='Gemini API key',env='GOOGLE_API_KEY'"`
	AnthropicAPIKey  string        `yaml:"anthropic_api_key" kong:"help='Anthropic API key',env='ANTHROPIC_API_KEY'"`
	Model            string        `yaml:"default_model" kong:"help='Model name (defaults per provider)',env='DEFAULT_MODEL'"`
	Temperature      float64       `yaml:"default_temperature" kong:"help='Sampling temperature',env='DEFAULT_TEMPERATURE',default='0.7'"`
	MaxTokens        int           `yaml:"default_max_tokens" kong:"help='Maximum output tokens',env='DEFAULT_MAX_TOKENS',default='1000'"`
	TopP             float64       `yaml:"default_top_p" kong:"help='Nucleus sampling cutoff',env='DEFAULT_TOP_P',default='0.8'"`
	TopK             int           `yaml:"default_top_k" kong:"help='Top-K sampling',env='DEFAULT_TOP_K',default='40'"`
	SafetyLevel      string        `yaml:"safety_level" kong:"help='Harm block threshold (Gemini only)',env='SAFETY_LEVEL',default='BLOCK_MEDIUM_AND_ABOVE'"`
	HuggingFaceToken string        `yaml:"huggingface_token" kong:"help='HuggingFace API token for image generation',env='HUGGINGFACE_TOKEN'"`
	ImageModel       string        `yaml:"image_model" kong:"help='HuggingFace text-to-image model',env='IMAGE_MODEL',default='runwayml/stable-diffusion-v1-5'"`
	OutputDir        string        `yaml:"output_dir" kong:"help='Directory for transcripts, prompts and images',env='OUTPUT_DIR',default='.'"`
	CapabilitiesFile string        `yaml:"capabilities_file" kong:"help='YAML file overriding the embedded model catalog',env='CAPABILITIES_FILE'"`
	LogLevel         string        `yaml:"log_level" kong:"help='Log level (debug, info, warn, error)',env='LOG_LEVEL',default='warn',enum='debug,info,warn,error'"`
	LoremDelay       time.Duration `yaml:"lorem_delay" kong:"help='Simulated latency of the lorem provider',env='LOREM_DELAY',default='0s'"`

	// EnvFile is the .env file that was loaded, if any. Not a setting.
	EnvFile string `yaml:"-" kong:"-"`
}

// Load parses args on top of the environment and the optional YAML files.
// Flags win over every other source. A missing YAML file is skipped.
func Load(args []string, configFiles ...string) (*Config, error) {
	cfg := &Config{}

	options := []kong.Option{
		kong.Name("playground"),
		kong.Description("Generative AI playground"),
	}
	for _, file := range configFiles {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err == nil {
			options = append(options, kong.Configuration(yamlKongLoader, file))
		}
	}

	parser, err := kong.New(cfg, options...)
	if err != nil {
		return nil, &playground.ConfigError{Field: "configuration", Reason: err.Error(), Err: playground.ErrInvalidConfig}
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, &playground.ConfigError{Field: "arguments", Reason: err.Error(), Err: playground.ErrInvalidConfig}
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Model == "" {
		cfg.Model = cfg.ProviderID().DefaultModel()
	}
	return cfg, nil
}

// ProviderID returns the configured provider.
func (c *Config) ProviderID() playground.ProviderID {
	return playground.ProviderID(c.Provider)
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	switch c.ProviderID() {
	case playground.ProviderGemini:
		return c.GoogleAPIKey
	case playground.ProviderAnthropic:
		return c.AnthropicAPIKey
	default:
		return ""
	}
}

// apiKeyVar names the environment variable holding the provider's credential.
func (c *Config) apiKeyVar() string {
	if c.ProviderID() == playground.ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "GOOGLE_API_KEY"
}

// Check validates the settings before any client is built.
// Not named Validate: kong runs Validate hooks inside Parse.
// A missing credential returns a *playground.ConfigError wrapping ErrMissingAPIKey.
func (c *Config) Check() error {
	if !c.ProviderID().IsValid() {
		return &playground.ConfigError{Field: "LLM_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", c.Provider), Err: playground.ErrInvalidConfig}
	}
	if c.ProviderID().RequiresAPIKey() && strings.TrimSpace(c.APIKey()) == "" {
		return &playground.ConfigError{Field: c.apiKeyVar(), Reason: "not set; add it to the environment or a .env file", Err: playground.ErrMissingAPIKey}
	}
	if _, err := playground.ParseSafetyThreshold(c.SafetyLevel); err != nil {
		return &playground.ConfigError{Field: "SAFETY_LEVEL", Reason: err.Error(), Err: playground.ErrInvalidConfig}
	}

	params, _ := c.GenerationParams()
	if err := playground.ValidateGenerationParams(params); err != nil {
		field := "generation parameters"
		var vErr *playground.ValidationError
		if errors.As(err, &vErr) {
			field = envNameForParam(vErr.Field)
		}
		return &playground.ConfigError{Field: field, Reason: err.Error(), Err: playground.ErrInvalidConfig}
	}
	return nil
}

func envNameForParam(field string) string {
	switch field {
	case "temperature":
		return "DEFAULT_TEMPERATURE"
	case "max_tokens":
		return "DEFAULT_MAX_TOKENS"
	case "top_p":
		return "DEFAULT_TOP_P"
	case "top_k":
		return "DEFAULT_TOP_K"
	default:
		return field
	}
}

// GenerationParams returns the configured defaults as request parameters.
// The safety threshold is left unset if SafetyLevel is invalid; Check reports that case.
func (c *Config) GenerationParams() (*playground.GenerationParams, error) {
	temperature := c.Temperature
	maxTokens := c.MaxTokens
	topP := c.TopP
	topK := c.TopK

	params := &playground.GenerationParams{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		TopP:        &topP,
		TopK:        &topK,
	}

	threshold, err := playground.ParseSafetyThreshold(c.SafetyLevel)
	if err != nil {
		return params, err
	}
	params.SafetyThreshold = &threshold
	return params, nil
}

// SlogLevel converts LogLevel to a slog level; unknown values mean warn.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Summary renders the settings for display, with credentials masked.
func (c *Config) Summary() string {
	var sb strings.Builder
	row := func(name, value string) {
		fmt.Fprintf(&sb, "  %-20s %s\n", name, value)
	}

	row("LLM_PROVIDER", c.Provider)
	row("GOOGLE_API_KEY", MaskSecret(c.GoogleAPIKey))
	row("ANTHROPIC_API_KEY", MaskSecret(c.AnthropicAPIKey))
	row("DEFAULT_MODEL", c.Model)
	row("DEFAULT_TEMPERATURE", fmt.Sprintf("%g", c.Temperature))
	row("DEFAULT_MAX_TOKENS", fmt.Sprintf("%d", c.MaxTokens))
	row("DEFAULT_TOP_P", fmt.Sprintf("%g", c.TopP))
	row("DEFAULT_TOP_K", fmt.Sprintf("%d", c.TopK))
	row("SAFETY_LEVEL", c.SafetyLevel)
	row("HUGGINGFACE_TOKEN", MaskSecret(c.HuggingFaceToken))
	row("IMAGE_MODEL", c.ImageModel)
	row("OUTPUT_DIR", c.OutputDir)
	if c.CapabilitiesFile != "" {
		row("CAPABILITIES_FILE", c.CapabilitiesFile)
	}
	row("LOG_LEVEL", c.LogLevel)
	if c.EnvFile != "" {
		row(".env", c.EnvFile)
	}
	return sb.String()
}

// MaskSecret shows the first 8 characters of a secret.
func MaskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:8] + "..."
}

// FindDotEnv walks up from dir looking for a .env file.
// Returns "" if none is found.
func FindDotEnv(dir string) string {
	for {
		envPath := filepath.Join(dir, ".env")
		if info, err := os.Stat(envPath); err == nil && !info.IsDir() {
			return envPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop
			return ""
		}
		dir = parent
	}
}

// LoadDotEnv loads the nearest .env file above the working directory.
// Variables already set in the environment win. Returns the file loaded, or "".
func LoadDotEnv() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", nil
	}
	envPath := FindDotEnv(dir)
	if envPath == "" {
		return "", nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return envPath, fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return envPath, nil
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil // Return nil resolver (no op)
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		// Flags are kebab-case; YAML keys are snake_case or the env name in lower case.
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, env := range flag.Envs {
			names = append(names, strings.ToLower(env))
		}
		for _, name := range names {
			if v, ok := values[name]; ok {
				return v, nil
			}
		}
		return nil, nil
	}

	return f, nil
}
