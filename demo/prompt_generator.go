package demo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	playground "github.com/haowjy/genai-playground-go"
	"github.com/haowjy/genai-playground-go/console"
	"github.com/haowjy/genai-playground-go/transcript"
)

const promptsTitle = "AI image prompts"

// PromptGeneratorMenu is the menu of RunPromptGenerator.
var PromptGeneratorMenu = console.Menu{
	Title: "🎯 Choose a feature",
	Items: []console.MenuItem{
		{Key: "1", Label: "📝 Generate an image prompt"},
		{Key: "2", Label: "🔄 Create prompt variations"},
		{Key: "3", Label: "💡 Prompt advice"},
		{Key: "4", Label: "📋 Style reference"},
		{Key: "0", Label: "🚪 Exit"},
	},
}

// StylePresets maps the style menu keys to styles. Key 7 asks for a custom style.
var StylePresets = []console.MenuItem{
	{Key: "1", Label: "photorealistic"},
	{Key: "2", Label: "digital art"},
	{Key: "3", Label: "oil painting"},
	{Key: "4", Label: "anime style"},
	{Key: "5", Label: "concept art"},
	{Key: "6", Label: "watercolor"},
}

const customStyleKey = "7"

// DefaultVariationCount is used when the count answer is empty or invalid.
const DefaultVariationCount = 3

var promptAdvice = []string{
	"🎯 A good prompt has:",
	"   • Subject: what exactly to draw",
	"   • Details: clothing, expression, pose",
	"   • Setting: background, scene, mood",
	"   • Style: realistic, cartoon, oil painting",
	"   • Quality terms: high quality, detailed, masterpiece",
	"   • Technical terms: 8k, HDR, professional lighting",
	"",
	"🚫 Common negative prompt terms:",
	"   • low quality, blurry, distorted",
	"   • bad anatomy, deformed, ugly",
	"   • watermark, signature, text",
	"",
	"📝 Structure:",
	`   "subject, details, setting, style, quality"`,
	"   e.g. beautiful woman, long hair, sunset beach,",
	"        photorealistic, high quality, 8k resolution",
}

var styleReference = []string{
	"🖼️  Art styles:",
	"   • realism: photorealistic, hyperrealistic, lifelike",
	"   • digital: digital art, CGI, 3D render",
	"   • painting: oil painting, watercolor, acrylic painting",
	"   • illustration: illustration, cartoon, comic book style",
	"   • anime: anime, manga, studio ghibli style",
	"",
	"📷 Photography:",
	"   • portrait photography, headshot",
	"   • landscape photography, nature",
	"   • street photography, urban",
	"   • fashion photography, editorial",
	"",
	"🎨 Effects:",
	"   • lighting: dramatic lighting, golden hour, neon lights",
	"   • color: monochrome, vibrant colors, pastel colors",
	"   • view: close-up, wide angle, bird's eye view",
}

// RunPromptGenerator runs the image prompt generator until 0 or end of input.
func RunPromptGenerator(ctx context.Context, env *Env) error {
	c := env.Console
	c.Banner("🎨 Image prompt generator", "Professional prompts for AI image generation")

	for {
		choice, err := c.Choose(PromptGeneratorMenu, "\nChoose (0-4): ")
		if err != nil {
			return quitOnEOF(err)
		}

		switch choice {
		case "0":
			c.Println("👋 Bye!")
			return nil
		case "1":
			err = generatorPrompt(ctx, env)
		case "2":
			err = generatorVariations(ctx, env)
		case "3":
			c.Section("💡 Prompt advice")
			printLines(c, promptAdvice)
		case "4":
			c.Section("📋 Style reference")
			printLines(c, styleReference)
		default:
			c.Error("Invalid option, try again")
		}
		if err != nil {
			return quitOnEOF(err)
		}
	}
}

func generatorPrompt(ctx context.Context, env *Env) error {
	c := env.Console
	desc, err := c.Ask("Describe the image in detail: ")
	if err != nil {
		return err
	}
	if desc == "" {
		c.Error("Please enter a description")
		return nil
	}

	style, err := chooseStyle(c)
	if err != nil {
		return err
	}

	c.Info(fmt.Sprintf("🔄 Generating prompt (style: %s)...", style))
	outcome := env.Adapter.Run(ctx, playground.TaskImagePrompt, playground.PromptInputs{Text: desc, Style: style})
	c.Println()
	c.Println("✨ Prompt:")
	c.Println(strings.Repeat("-", 50))
	c.Outcome(outcome)
	c.Println(strings.Repeat("-", 50))
	if !outcome.Succeeded() {
		return nil
	}

	return offerSave(env, "💾 Save the prompt?", []transcript.Section{
		{Title: "Description", Body: desc},
		{Title: "Style", Body: style},
		{Title: "Prompt", Body: strings.TrimSpace(outcome.Text)},
	})
}

// chooseStyle shows the presets. Unknown answers mean photorealistic.
func chooseStyle(c *console.Console) (string, error) {
	items := append(append([]console.MenuItem{}, StylePresets...), console.MenuItem{Key: customStyleKey, Label: "custom"})
	choice, err := c.Choose(console.Menu{Title: "🎨 Style", Items: items}, "Choose a style (1-7): ")
	if err != nil {
		return "", err
	}

	for _, p := range StylePresets {
		if p.Key == choice {
			return p.Label, nil
		}
	}
	if choice == customStyleKey {
		custom, err := c.Ask("Custom style: ")
		if err != nil {
			return "", err
		}
		if custom != "" {
			return custom, nil
		}
	}
	return playground.DefaultImageStyle, nil
}

func generatorVariations(ctx context.Context, env *Env) error {
	c := env.Console
	base, err := c.Ask("Base prompt: ")
	if err != nil {
		return err
	}
	if base == "" {
		c.Error("Please enter a prompt")
		return nil
	}
	count, err := c.AskInt(fmt.Sprintf("Number of variations (default %d): ", DefaultVariationCount), DefaultVariationCount, 1, playground.MaxVariations)
	if err != nil {
		return err
	}

	c.Info(fmt.Sprintf("🔄 Generating %d variations...", count))
	outcomes := env.Adapter.Variations(ctx, base, count)

	sections := []transcript.Section{{Title: "Base prompt", Body: base}}
	c.Rule()
	for i, o := range outcomes {
		c.Println()
		c.Printf("Variation %d:\n", i+1)
		c.Println(strings.Repeat("-", 30))
		c.Outcome(o)
		sections = append(sections, transcript.Section{
			Title: fmt.Sprintf("Variation %d", i+1),
			Body:  strings.TrimSpace(playground.FormatForUser(o)),
		})
	}
	c.Rule()

	return offerSave(env, "💾 Save all variations?", sections)
}

func offerSave(env *Env, question string, sections []transcript.Section) error {
	c := env.Console
	save, err := c.Confirm("\n" + question)
	if err != nil || !save {
		return err
	}

	now := env.now()
	path := filepath.Join(env.outputDir(), transcript.PromptsFileName(now))
	if err := transcript.SavePrompts(path, promptsTitle, sections, now); err != nil {
		c.Error("save failed: " + err.Error())
		return nil
	}
	env.logger().Info("prompts saved", "path", path, "sections", len(sections))
	c.Success("Prompts saved to " + path)
	return nil
}

func printLines(c *console.Console, lines []string) {
	for _, l := range lines {
		c.Println(l)
	}
}
