package demo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/chat"
	"github.com/haowjy/genai-playground-go/providers"
)

// SmokeResult is the outcome of one smoke check.
type SmokeResult struct {
	Name    string
	Passed  bool
	Summary string
}

type smokeCheck struct {
	name string
	run  func(ctx context.Context) (string, error)
}

// RunSmokeTest exercises every adapter feature once and prints passed/total.
func RunSmokeTest(ctx context.Context, env *Env) []SmokeResult {
	c := env.Console
	c.Banner("🚀 Feature smoke test")

	results := make([]SmokeResult, 0)
	for _, check := range smokeChecks(env) {
		c.Section("🧪 " + check.name)
		summary, err := check.run(ctx)
		r := SmokeResult{Name: check.name, Passed: err == nil, Summary: summary}
		if err != nil {
			r.Summary = err.Error()
			c.Error(r.Summary)
		} else {
			c.Success(truncate(summary, 100))
		}
		results = append(results, r)
	}

	passed := CountPassed(results)
	c.Println()
	c.Rule()
	c.Printf("📊 Result: %d/%d passed\n", passed, len(results))
	if passed == len(results) {
		c.Success("All checks passed")
	} else {
		c.Warn(fmt.Sprintf("%d checks failed", len(results)-passed))
	}
	return results
}

// CountPassed returns how many results passed.
func CountPassed(results []SmokeResult) int {
	n := 0
	for _, r := range results {
		if r.Passed {
			n++
		}
	}
	return n
}

func smokeChecks(env *Env) []smokeCheck {
	a := env.Adapter
	outcomeCheck := func(kind playground.TaskKind, in playground.PromptInputs) func(context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			return outcomeResult(a.Run(ctx, kind, in))
		}
	}
	maxTokens := 50

	return []smokeCheck{
		{"configuration", func(context.Context) (string, error) {
			return fmt.Sprintf("%s / %s", a.Provider(), a.Model()), nil
		}},
		{"model list", func(ctx context.Context) (string, error) {
			models, err := providers.ListModels(ctx, a.Generator())
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d models", len(models)), nil
		}},
		{"text generation", func(ctx context.Context) (string, error) {
			return outcomeResult(a.GenerateText(ctx, "Hello", &playground.GenerationParams{MaxTokens: &maxTokens}))
		}},
		{"translation", outcomeCheck(playground.TaskTranslate, playground.PromptInputs{Text: "Good morning"})},
		{"summary", outcomeCheck(playground.TaskSummarize, playground.PromptInputs{Text: "Artificial intelligence is a revolutionary technology.", MaxLength: 20})},
		{"code generation", outcomeCheck(playground.TaskGenerateCode, playground.PromptInputs{Text: "print Hello World", Language: "Python"})},
		{"creative writing", outcomeCheck(playground.TaskCreativeWrite, playground.PromptInputs{Text: "sunshine", Style: "short poem"})},
		{"multi-turn chat", func(ctx context.Context) (string, error) {
			s := chat.NewSession(a, chat.WithLogger(env.logger()))
			first, err := outcomeResult(s.Send(ctx, "Hello"))
			if err != nil {
				return "", err
			}
			second, err := outcomeResult(s.Send(ctx, "My name is Ming"))
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("turn 1: %s turn 2: %s", truncate(first, 50), truncate(second, 50)), nil
		}},
	}
}

func outcomeResult(o playground.Outcome) (string, error) {
	if !o.Succeeded() {
		return "", errors.New(playground.FormatForUser(o))
	}
	return strings.TrimSpace(o.Text), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
