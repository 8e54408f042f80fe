package playground

import (
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// GenerateRequest contains the parameters for a single generation call.
// It is built fresh per call and must not be modified after Generate is invoked.
type GenerateRequest struct {
	// Prompt is the instruction text for single-shot calls.
	// Ignored when Messages is non-empty.
	Prompt string

	// Messages contains the conversation history for multi-turn calls.
	// The last message is expected to be from RoleUser.
	Messages []Message

	// System is an optional system instruction (chat role setting)
	System *string

	// Images are attached to the final user turn (image analysis)
	Images []ImageInput

	// Model is the model identifier (e.g., "gemini-1.5-flash")
	Model string

	// Params contains the generation options. Providers take what they support.
	Params *GenerationParams
}

// Message represents a single message in the conversation.
type Message struct {
	Role Role
	Text string
}

// ImageInput is an inline image sent alongside the prompt.
type ImageInput struct {
	MIMEType string
	Data     []byte
}

// Conversation returns the request as a message list.
// Single-shot requests become one user message holding Prompt.
func (r *GenerateRequest) Conversation() []Message {
	if len(r.Messages) > 0 {
		return r.Messages
	}
	return []Message{{Role: RoleUser, Text: r.Prompt}}
}

// LoadImage reads an image file for AnalyzeImage, detecting its MIME type
// from the content.
func LoadImage(path string) (ImageInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageInput{}, fmt.Errorf("failed to read image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return ImageInput{}, &ValidationError{Field: "image", Value: path, Reason: "not an image (" + mimeType + ")", Err: ErrInvalidRequest}
	}
	return ImageInput{MIMEType: mimeType, Data: data}, nil
}
