package demo

import (
	"context"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/chat"
	"github.com/haowjy/genai-playground-go/console"
	"github.com/haowjy/genai-playground-go/providers"
)

// AdvancedMenu is the top-level menu of RunAdvanced.
var AdvancedMenu = console.Menu{
	Title: "📋 Choose a feature",
	Items: []console.MenuItem{
		{Key: "1", Label: "📝 Text generation"},
		{Key: "2", Label: "💬 Multi-turn chat"},
		{Key: "3", Label: "🌐 Translation"},
		{Key: "4", Label: "📄 Summary"},
		{Key: "5", Label: "💻 Code generation"},
		{Key: "6", Label: "✍️  Creative writing"},
		{Key: "7", Label: "🖼️  Image analysis"},
		{Key: "8", Label: "🎨 Image studio"},
		{Key: "9", Label: "📊 Available models"},
		{Key: "10", Label: "⚙️  Current configuration"},
		{Key: "0", Label: "🚪 Exit"},
	},
}

// RunAdvanced runs the feature menu until the user picks 0 or input ends.
func RunAdvanced(ctx context.Context, env *Env) error {
	c := env.Console
	c.Banner("🚀 Advanced features")

	for {
		choice, err := c.Choose(AdvancedMenu, "\nChoose (0-10): ")
		if err != nil {
			return quitOnEOF(err)
		}

		switch choice {
		case "0":
			c.Println("👋 Bye!")
			return nil
		case "1":
			err = advancedGenerate(ctx, env)
		case "2":
			err = advancedChat(ctx, env)
		case "3":
			err = advancedTranslate(ctx, env)
		case "4":
			err = advancedSummarize(ctx, env)
		case "5":
			err = advancedCode(ctx, env)
		case "6":
			err = advancedCreative(ctx, env)
		case "7":
			err = advancedAnalyzeImage(ctx, env)
		case "8":
			err = RunImageStudio(ctx, env)
		case "9":
			listModels(ctx, env)
		case "10":
			showConfig(env)
		default:
			c.Error("Invalid option, try again")
		}
		if err != nil {
			return quitOnEOF(err)
		}
	}
}

func advancedGenerate(ctx context.Context, env *Env) error {
	prompt, err := env.Console.Ask("Prompt: ")
	if err != nil {
		return err
	}
	showResult(env, "🔮 Result", env.Adapter.GenerateText(ctx, prompt, nil))
	return nil
}

func advancedChat(ctx context.Context, env *Env) error {
	c := env.Console
	session := chat.NewSession(env.Adapter, chat.WithLogger(env.logger()), chat.WithClock(env.now))

	path, err := c.Ask("Load a saved chat history (path, blank to skip): ")
	if err != nil {
		return err
	}
	if path != "" {
		if err := session.Load(path); err != nil {
			c.Error("could not load history: " + err.Error())
		} else {
			c.Success("History loaded from " + path)
		}
	}

	c.Info("💬 Multi-turn chat: 'quit' leaves, 'save' writes a JSON history")
	return chatLoop(ctx, env, session, session.SaveJSON)
}

func advancedTranslate(ctx context.Context, env *Env) error {
	c := env.Console
	text, err := c.Ask("Text to translate: ")
	if err != nil {
		return err
	}
	lang, err := c.AskDefault("Target language (default: "+playground.DefaultTargetLanguage+"): ", playground.DefaultTargetLanguage)
	if err != nil {
		return err
	}
	showResult(env, "🌐 Translation", env.Adapter.Run(ctx, playground.TaskTranslate, playground.PromptInputs{Text: text, TargetLanguage: lang}))
	return nil
}

func advancedSummarize(ctx context.Context, env *Env) error {
	text, err := env.Console.Ask("Text to summarize: ")
	if err != nil {
		return err
	}
	showResult(env, "📄 Summary", env.Adapter.Run(ctx, playground.TaskSummarize, playground.PromptInputs{Text: text}))
	return nil
}

func advancedCode(ctx context.Context, env *Env) error {
	c := env.Console
	desc, err := c.Ask("Describe the functionality: ")
	if err != nil {
		return err
	}
	lang, err := c.AskDefault("Programming language (default: "+playground.DefaultCodeLanguage+"): ", playground.DefaultCodeLanguage)
	if err != nil {
		return err
	}
	showResult(env, "💻 Code", env.Adapter.Run(ctx, playground.TaskGenerateCode, playground.PromptInputs{Text: desc, Language: lang}))
	return nil
}

func advancedCreative(ctx context.Context, env *Env) error {
	c := env.Console
	topic, err := c.Ask("Topic: ")
	if err != nil {
		return err
	}
	style, err := c.AskDefault("Style (default: "+playground.DefaultWritingStyle+"): ", playground.DefaultWritingStyle)
	if err != nil {
		return err
	}
	showResult(env, "✍️  Writing", env.Adapter.Run(ctx, playground.TaskCreativeWrite, playground.PromptInputs{Text: topic, Style: style}))
	return nil
}

func advancedAnalyzeImage(ctx context.Context, env *Env) error {
	c := env.Console
	path, err := c.Ask("Image path: ")
	if err != nil {
		return err
	}
	prompt, err := c.AskDefault("Question (default: "+playground.DefaultAnalysisPrompt+"): ", playground.DefaultAnalysisPrompt)
	if err != nil {
		return err
	}

	img, err := playground.LoadImage(path)
	if err != nil {
		c.Error("image analysis failed: " + err.Error())
		return nil
	}
	showResult(env, "🖼️  Analysis", env.Adapter.AnalyzeImage(ctx, img, prompt))
	return nil
}

func listModels(ctx context.Context, env *Env) {
	c := env.Console
	c.Section("🤖 Available models")
	models, err := providers.ListModels(ctx, env.Adapter.Generator())
	if err != nil {
		c.Error("failed to list models: " + err.Error())
		return
	}
	for _, m := range models {
		if !m.SupportsGeneration {
			continue
		}
		if m.DisplayName != "" && m.DisplayName != m.Name {
			c.Printf("  • %s (%s)\n", m.Name, m.DisplayName)
		} else {
			c.Printf("  • %s\n", m.Name)
		}
	}
}

func showConfig(env *Env) {
	c := env.Console
	c.Section("⚙️  Current configuration")
	if env.Config != nil {
		c.Printf("%s", env.Config.Summary())
	}
	c.Printf("  %-20s %s\n", "provider", env.Adapter.Provider())
	c.Printf("  %-20s %s\n", "model", env.Adapter.Model())
}

// showResult prints a titled outcome.
func showResult(env *Env, title string, outcome playground.Outcome) {
	env.Console.Println()
	env.Console.Println(title + ":")
	env.Console.Outcome(outcome)
}
