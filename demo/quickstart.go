package demo

import (
	"context"

	"github.com/haowjy/genai-playground-go/providers"
)

// QuickstartPrompts are the sample prompts run by RunQuickstart.
var QuickstartPrompts = []string{
	"Write a short paragraph about the future of artificial intelligence.",
	"Write a Python function that computes the Fibonacci sequence.",
	"Write a modern poem about technology and nature living in harmony.",
}

// RunQuickstart lists the models that support text generation and runs
// the sample prompts. It returns the number of prompts that succeeded.
func RunQuickstart(ctx context.Context, env *Env) int {
	c := env.Console
	c.Banner("Quickstart: " + env.Adapter.Provider().String())

	c.Section("Available models")
	models, err := providers.ListModels(ctx, env.Adapter.Generator())
	if err != nil {
		c.Error("failed to list models: " + err.Error())
	}
	for _, m := range models {
		if m.SupportsGeneration {
			c.Println("- " + m.Name)
		}
	}

	passed := 0
	for _, prompt := range QuickstartPrompts {
		c.Println()
		c.Printf("📝 Prompt: %s\n", prompt)
		outcome := env.Adapter.GenerateText(ctx, prompt, nil)
		c.Printf("🔮 Answer: ")
		c.Outcome(outcome)
		if outcome.Succeeded() {
			passed++
		}
	}

	c.Println()
	c.Rule()
	c.Success("Examples finished")
	return passed
}
