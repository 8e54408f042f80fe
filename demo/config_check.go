package demo

import (
	"context"
	"fmt"
	"log/slog"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/config"
	"github.com/haowjy/genai-playground-go/console"
	"github.com/haowjy/genai-playground-go/providers"
)

// RunConfigCheck prints the resolved configuration, checks the model
// catalog, builds the provider and makes two small calls. It returns the
// configuration error, if any, so the caller can exit non-zero.
func RunConfigCheck(ctx context.Context, c *console.Console, cfg *config.Config, logger *slog.Logger) error {
	c.Banner("🔧 Configuration check")

	c.Section("📋 Settings")
	c.Printf("%s", cfg.Summary())
	if cfg.EnvFile != "" {
		c.Success(".env loaded from " + cfg.EnvFile)
	} else {
		c.Info("No .env file found, using the process environment")
	}

	c.Section("📚 Model catalog")
	registry := playground.GetCapabilityRegistry()
	if err := playground.EmbeddedCapabilitiesError(); err != nil {
		c.Error("embedded catalog: " + err.Error())
	}
	names := registry.ModelNames(cfg.Provider)
	c.Printf("%d models known for %s\n", len(names), cfg.Provider)
	if registry.SupportsModel(cfg.Provider, cfg.Model) {
		c.Success(cfg.Model + " is in the catalog")
	} else {
		c.Warn(cfg.Model + " is not in the catalog (it may still work)")
	}

	c.Section("🧪 Provider")
	adapter, err := providers.NewAdapter(ctx, cfg, logger)
	if err != nil {
		c.Error(err.Error())
		return err
	}
	c.Success(fmt.Sprintf("%s provider ready (model %s)", adapter.Provider(), adapter.Model()))

	c.Section("🎯 Calls")
	maxTokens := 50
	checks := []struct {
		name    string
		outcome playground.Outcome
	}{
		{"text generation", adapter.GenerateText(ctx, "test", &playground.GenerationParams{MaxTokens: &maxTokens})},
		{"translation", adapter.Run(ctx, playground.TaskTranslate, playground.PromptInputs{Text: "Hello"})},
	}
	for _, check := range checks {
		if check.outcome.Succeeded() {
			c.Success(check.name + " works")
		} else {
			c.Warn(check.name + ": " + playground.FormatForUser(check.outcome))
		}
	}

	c.Println()
	c.Success("Configuration check finished")
	return nil
}
