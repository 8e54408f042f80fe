package demo

import (
	"context"
	"strings"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/console"
	"github.com/haowjy/genai-playground-go/imagegen"
)

// ImageStudioMenu is the menu of RunImageStudio.
var ImageStudioMenu = console.Menu{
	Title: "🎯 Choose a feature",
	Items: []console.MenuItem{
		{Key: "1", Label: "🎨 Generate an image prompt"},
		{Key: "2", Label: "✨ Enhance a prompt"},
		{Key: "3", Label: "🚫 Generate a negative prompt"},
		{Key: "4", Label: "🖼️  Generate an image (Hugging Face)"},
		{Key: "5", Label: "📚 Create an image story"},
		{Key: "6", Label: "🔍 Analyze a generated image"},
		{Key: "7", Label: "🎭 Style suggestions"},
		{Key: "8", Label: "💡 Tips"},
		{Key: "0", Label: "🚪 Back"},
	},
}

// HuggingFaceSetup explains how to enable image generation.
var HuggingFaceSetup = []string{
	"1. Visit https://huggingface.co/settings/tokens",
	"2. Create a new token",
	"3. Set HUGGINGFACE_TOKEN in the environment or .env",
}

// ImageTips is the static advice shown by menu item 8.
var ImageTips = []string{
	"🎯 Prompt tips:",
	"   • Prefer concrete descriptions to abstract ideas",
	"   • Name an artist or an art style",
	"   • Add quality modifiers ('highly detailed', 'masterpiece')",
	"   • Specify resolution and aspect ratio",
	"   • Use a negative prompt to exclude unwanted elements",
	"",
	"🔧 Parameters:",
	"   • steps: 20-50 (quality vs speed)",
	"   • guidance_scale: 7-15 (how closely the prompt is followed)",
	"   • resolution: 512x512, 768x768, 1024x1024",
	"",
	"🎨 Common styles:",
	"   • realism: photorealistic, hyperrealistic",
	"   • art: oil painting, watercolor, digital art",
	"   • anime: anime, manga, studio ghibli style",
	"   • concept: concept art, matte painting",
}

// RunImageStudio runs the image helper menu until 0 or end of input.
func RunImageStudio(ctx context.Context, env *Env) error {
	c := env.Console
	c.Banner("🎨 Image studio",
		"Generate and refine image prompts",
		"Render images with Hugging Face",
		"Analyze the results")

	for {
		choice, err := c.Choose(ImageStudioMenu, "\nChoose (0-8): ")
		if err != nil {
			return quitOnEOF(err)
		}

		switch choice {
		case "0":
			c.Println("👋 Leaving the image studio")
			return nil
		case "1":
			err = studioDetailedPrompt(ctx, env)
		case "2":
			err = studioEnhance(ctx, env)
		case "3":
			err = studioNegative(ctx, env)
		case "4":
			err = studioGenerateImage(ctx, env)
		case "5":
			err = studioStory(ctx, env)
		case "6":
			err = studioAnalyze(ctx, env)
		case "7":
			err = studioStyles(ctx, env)
		case "8":
			c.Section("💡 Tips")
			printLines(c, ImageTips)
		default:
			c.Error("Invalid option, try again")
		}
		if err != nil {
			return quitOnEOF(err)
		}
	}
}

func studioDetailedPrompt(ctx context.Context, env *Env) error {
	c := env.Console
	desc, err := c.Ask("Describe the image: ")
	if err != nil {
		return err
	}
	style, err := c.AskDefault("Art style (default: "+playground.DefaultImageStyle+"): ", playground.DefaultImageStyle)
	if err != nil {
		return err
	}
	quality, err := c.AskDefault("Quality (default: "+playground.DefaultImageQuality+"): ", playground.DefaultImageQuality)
	if err != nil {
		return err
	}
	lang, err := c.AskDefault("Prompt language (default: "+playground.DefaultOutputLanguage+"): ", playground.DefaultOutputLanguage)
	if err != nil {
		return err
	}

	outcome := env.Adapter.Run(ctx, playground.TaskDetailedImagePrompt, playground.PromptInputs{
		Text:           desc,
		Style:          style,
		Quality:        quality,
		OutputLanguage: lang,
	})
	showResult(env, "✨ Prompt", outcome)
	return nil
}

// studioEnhance shows the original prompt when enhancing fails.
func studioEnhance(ctx context.Context, env *Env) error {
	c := env.Console
	basic, err := c.Ask("Prompt to enhance: ")
	if err != nil {
		return err
	}

	outcome := env.Adapter.Run(ctx, playground.TaskEnhancePrompt, playground.PromptInputs{Text: basic})
	if !outcome.Succeeded() {
		c.Warn(playground.FormatForUser(outcome))
	}
	c.Println()
	c.Println("🚀 Enhanced prompt:")
	c.Println(strings.TrimSpace(outcome.TextOr(basic)))
	return nil
}

// studioNegative falls back to a fixed list when generation fails.
func studioNegative(ctx context.Context, env *Env) error {
	c := env.Console
	positive, err := c.Ask("Positive prompt: ")
	if err != nil {
		return err
	}

	outcome := env.Adapter.Run(ctx, playground.TaskNegativePrompt, playground.PromptInputs{Text: positive})
	if !outcome.Succeeded() {
		c.Warn(playground.FormatForUser(outcome))
	}
	c.Println()
	c.Println("⛔ Negative prompt:")
	c.Println(strings.TrimSpace(outcome.TextOr(playground.FallbackNegativePrompt)))
	return nil
}

func studioGenerateImage(ctx context.Context, env *Env) error {
	c := env.Console
	if env.Images == nil {
		c.Error("HUGGINGFACE_TOKEN is not set")
		for _, l := range HuggingFaceSetup {
			c.Println("   " + l)
		}
		return nil
	}

	prompt, err := c.Ask("Image prompt: ")
	if err != nil {
		return err
	}
	model, err := c.AskDefault("Model (default: "+env.Images.Model()+"): ", env.Images.Model())
	if err != nil {
		return err
	}

	c.Info("🎨 Generating, this can take a minute...")
	img, err := env.Images.Generate(ctx, prompt, model)
	if err != nil {
		c.Error("image generation failed: " + err.Error())
		return nil
	}

	path, err := imagegen.Save(img, env.outputDir(), env.now())
	if err != nil {
		c.Error("could not save image: " + err.Error())
		return nil
	}
	env.logger().Info("image saved", "path", path, "model", img.Model, "bytes", len(img.Data))

	c.Success("Image generated")
	c.Println("📁 File: " + path)
	c.Println("🎯 Prompt: " + img.Prompt)
	return nil
}

func studioStory(ctx context.Context, env *Env) error {
	c := env.Console
	theme, err := c.Ask("Story theme: ")
	if err != nil {
		return err
	}
	count, err := c.AskInt("Number of images (default: 4): ", playground.DefaultStoryImageCount, 1, 10)
	if err != nil {
		return err
	}
	showResult(env, "📖 Story", env.Adapter.Run(ctx, playground.TaskImageStory, playground.PromptInputs{Text: theme, Count: count}))
	return nil
}

func studioAnalyze(ctx context.Context, env *Env) error {
	c := env.Console
	path, err := c.Ask("Image path: ")
	if err != nil {
		return err
	}

	img, err := playground.LoadImage(path)
	if err != nil {
		c.Error(err.Error())
		return nil
	}
	prompt, err := playground.BuildPrompt(playground.TaskImageAnalysis, playground.PromptInputs{})
	if err != nil {
		return err
	}
	showResult(env, "📊 Analysis", env.Adapter.AnalyzeImage(ctx, img, prompt))
	return nil
}

func studioStyles(ctx context.Context, env *Env) error {
	contentType, err := env.Console.Ask("Content type (portrait, landscape, architecture...): ")
	if err != nil {
		return err
	}
	showResult(env, "🎨 Styles", env.Adapter.Run(ctx, playground.TaskStyleSuggestions, playground.PromptInputs{Text: contentType}))
	return nil
}
