package playground

import (
	"fmt"
	"strings"
)

// TaskKind selects a prompt template.
type TaskKind string

const (
	TaskTranslate            TaskKind = "translate"
	TaskSummarize            TaskKind = "summarize"
	TaskGenerateCode         TaskKind = "generate-code"
	TaskCreativeWrite        TaskKind = "creative-write"
	TaskImagePrompt          TaskKind = "image-prompt"
	TaskImagePromptVariation TaskKind = "image-prompt-variation"
	TaskNegativePrompt       TaskKind = "negative-prompt"
	TaskDetailedImagePrompt  TaskKind = "detailed-image-prompt"
	TaskEnhancePrompt        TaskKind = "enhance-prompt"
	TaskImageStory           TaskKind = "image-story"
	TaskStyleSuggestions     TaskKind = "style-suggestions"
	TaskImageAnalysis        TaskKind = "image-analysis"
)

// Defaults applied when the corresponding PromptInputs field is empty.
const (
	DefaultTargetLanguage  = "Chinese"
	DefaultCodeLanguage    = "Python"
	DefaultWritingStyle    = "modern prose"
	DefaultImageStyle      = "photorealistic"
	DefaultImageQuality    = "high quality"
	DefaultOutputLanguage  = "English"
	DefaultSummaryLength   = 200
	DefaultStoryImageCount = 4
)

// FallbackNegativePrompt is shown when negative prompt generation fails.
const FallbackNegativePrompt = "low quality, blurry, distorted, ugly, bad anatomy"

// PromptInputs carries the user-supplied values for a template.
// Text is the primary input for every kind; the other fields are optional
// and fall back to the package defaults.
type PromptInputs struct {
	Text           string // text to translate/summarize, description, topic, theme, base prompt...
	TargetLanguage string // translate
	MaxLength      int    // summarize (characters)
	Language       string // generate-code
	Style          string // creative-write, image-prompt, detailed-image-prompt
	Quality        string // detailed-image-prompt
	OutputLanguage string // detailed-image-prompt
	Index          int    // image-prompt-variation (1-based)
	Count          int    // image-story
}

// TaskKinds lists every supported kind in menu order.
func TaskKinds() []TaskKind {
	return []TaskKind{
		TaskTranslate,
		TaskSummarize,
		TaskGenerateCode,
		TaskCreativeWrite,
		TaskImagePrompt,
		TaskImagePromptVariation,
		TaskNegativePrompt,
		TaskDetailedImagePrompt,
		TaskEnhancePrompt,
		TaskImageStory,
		TaskStyleSuggestions,
		TaskImageAnalysis,
	}
}

// BuildPrompt fills the template selected by kind.
// The only check is that the primary input is not blank (image-analysis has no
// primary input). User text is inserted verbatim.
func BuildPrompt(kind TaskKind, in PromptInputs) (string, error) {
	if kind != TaskImageAnalysis && strings.TrimSpace(in.Text) == "" {
		return "", fmt.Errorf("%s: %w", kind, ErrEmptyInput)
	}

	switch kind {
	case TaskTranslate:
		return fmt.Sprintf("Translate the following text into %s:\n\n%s",
			orDefault(in.TargetLanguage, DefaultTargetLanguage), in.Text), nil

	case TaskSummarize:
		return fmt.Sprintf("Summarize the following text in no more than %d characters:\n\n%s",
			summaryLength(in), in.Text), nil

	case TaskGenerateCode:
		return fmt.Sprintf("Write %s code that implements the following:\n\n%s\n\n"+
			"Provide complete, runnable code with the necessary comments.",
			orDefault(in.Language, DefaultCodeLanguage), in.Text), nil

	case TaskCreativeWrite:
		return fmt.Sprintf("Write a piece about '%s' in the style of %s.",
			in.Text, orDefault(in.Style, DefaultWritingStyle)), nil

	case TaskImagePrompt:
		return fmt.Sprintf(`Create a professional AI image generation prompt (in English) from the description below.

Description: %s
Style: %s

Requirements:
1. Use professional art and photography terminology
2. Include a detailed visual description
3. Add quality modifiers
4. Make sure the prompt suits AI image generation
5. Output only the English prompt, no explanation

Format: subject, details, art style, quality terms, technical parameters`,
			in.Text, orDefault(in.Style, DefaultImageStyle)), nil

	case TaskImagePromptVariation:
		index := in.Index
		if index < 1 {
			index = 1
		}
		return fmt.Sprintf(`Create a variation of the following image prompt.

Original prompt: %s

Variation requirements:
- Keep the core content unchanged
- Adjust the art style or perspective
- Add different descriptive details
- Output only the English prompt

Variation %d:`, in.Text, index), nil

	case TaskNegativePrompt:
		return fmt.Sprintf(`Based on the positive prompt below, write the matching negative prompt.

Positive prompt: %s

Write an English negative prompt that excludes unwanted elements such as:
- low quality, blur, distortion
- inappropriate content
- technical defects
- inconsistent elements

Output only the negative prompt:`, in.Text), nil

	case TaskDetailedImagePrompt:
		return fmt.Sprintf(`Create a detailed image generation prompt from the description below.

Description: %s
Style: %s
Quality: %s
Output language: %s

The prompt should cover:
1. Main subject
2. Art style
3. Lighting and color
4. Quality modifiers
5. Suggested technical parameters

Output only the prompt, without explanation.`,
			in.Text,
			orDefault(in.Style, DefaultImageStyle),
			orDefault(in.Quality, DefaultImageQuality),
			orDefault(in.OutputLanguage, DefaultOutputLanguage)), nil

	case TaskEnhancePrompt:
		return fmt.Sprintf(`Improve the following image generation prompt so it is more professional and detailed.

Original prompt: %s

Add:
- professional art terminology
- detailed visual description
- quality and style modifiers
- suitable technical parameters

Output the improved English prompt:`, in.Text), nil

	case TaskImageStory:
		count := in.Count
		if count < 1 {
			count = DefaultStoryImageCount
		}
		return fmt.Sprintf(`Create a visual story of %d images on the theme "%s".

For each image provide:
1. A scene description
2. A detailed English prompt
3. Its role in the story

Answer in JSON with this structure:
{
  "story_title": "title",
  "story_description": "overall description",
  "images": [
    {
      "sequence": 1,
      "scene_description": "scene",
      "prompt": "English prompt",
      "role": "role in the story"
    }
  ]
}`, count, in.Text), nil

	case TaskStyleSuggestions:
		return fmt.Sprintf(`Recommend art styles for "%s" images.

Include:
1. Traditional styles (oil painting, watercolor, ...)
2. Modern styles (abstract, minimalism, ...)
3. Digital styles (cyberpunk, vaporwave, ...)
4. Photography styles (documentary, portrait, ...)
5. Animation styles (anime, Disney, ...)

Give a short description and typical use for each style.`, in.Text), nil

	case TaskImageAnalysis:
		return `Analyze this image in detail, covering:
1. Main content and composition
2. Art style and technique
3. Color and lighting
4. Overall quality
5. Possible improvements`, nil

	default:
		return "", fmt.Errorf("%q: %w", kind, ErrUnknownTask)
	}
}

// TaskParams returns per-task parameter overrides layered on top of the
// configured defaults. Summaries cap output at twice the requested length.
func TaskParams(kind TaskKind, in PromptInputs) *GenerationParams {
	if kind == TaskSummarize {
		maxTokens := summaryLength(in) * 2
		return &GenerationParams{MaxTokens: &maxTokens}
	}
	return nil
}

func summaryLength(in PromptInputs) int {
	if in.MaxLength > 0 {
		return in.MaxLength
	}
	return DefaultSummaryLength
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
