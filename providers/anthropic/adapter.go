package anthropic

import (
	"encoding/base64"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	playground "github.com/haowjy/genai-playground-go"
)

// convertToAnthropicMessages converts library messages to Anthropic SDK format.
// Images are attached to the final user message, ahead of its text.
// Consecutive messages with the same role are merged, since the API
// requires alternating turns.
func convertToAnthropicMessages(messages []playground.Message, images []playground.ImageInput) ([]anthropic.MessageParam, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages")
	}

	merged := mergeConsecutiveSameRoleMessages(messages)
	last := len(merged) - 1
	if merged[last].Role != playground.RoleUser {
		return nil, fmt.Errorf("last message must be from the user, got %s", merged[last].Role)
	}

	result := make([]anthropic.MessageParam, 0, len(merged))
	for i, msg := range merged {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.texts)+len(images))

		if i == last {
			for _, img := range images {
				blocks = append(blocks, anthropic.NewImageBlockBase64(img.MIMEType, base64.StdEncoding.EncodeToString(img.Data)))
			}
		}
		for _, text := range msg.texts {
			blocks = append(blocks, anthropic.NewTextBlock(text))
		}

		switch msg.Role {
		case playground.RoleUser:
			result = append(result, anthropic.NewUserMessage(blocks...))
		case playground.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(blocks...))
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", i, msg.Role)
		}
	}
	return result, nil
}

// roleTurn is one API turn: a role and the texts merged into it.
type roleTurn struct {
	Role  playground.Role
	texts []string
}

func mergeConsecutiveSameRoleMessages(messages []playground.Message) []roleTurn {
	turns := make([]roleTurn, 0, len(messages))
	for _, msg := range messages {
		if n := len(turns); n > 0 && turns[n-1].Role == msg.Role {
			turns[n-1].texts = append(turns[n-1].texts, msg.Text)
			continue
		}
		turns = append(turns, roleTurn{Role: msg.Role, texts: []string{msg.Text}})
	}
	return turns
}

// mapStopReason maps Anthropic stop reasons onto the shared finish-reason codes.
func mapStopReason(reason anthropic.StopReason) playground.FinishReason {
	switch reason {
	case anthropic.StopReasonEndTurn, anthropic.StopReasonStopSequence:
		return playground.FinishReasonStop
	case anthropic.StopReasonMaxTokens:
		return playground.FinishReasonMaxTokens
	case "refusal":
		return playground.FinishReasonSafety
	case "":
		return playground.FinishReasonUnspecified
	default:
		return playground.FinishReasonOther
	}
}

// convertFromAnthropicResponse turns a Message into the provider-neutral form.
// Non-text blocks are skipped.
func convertFromAnthropicResponse(msg *anthropic.Message) *playground.RawResponse {
	parts := make([]string, 0, len(msg.Content))
	for _, content := range msg.Content {
		if content.Type == "text" && content.Text != "" {
			parts = append(parts, content.Text)
		}
	}

	metadata := map[string]interface{}{
		"stop_reason": string(msg.StopReason),
	}
	if msg.StopSequence != "" {
		metadata["stop_sequence"] = msg.StopSequence
	}
	if msg.ID != "" {
		metadata["message_id"] = msg.ID
	}

	return &playground.RawResponse{
		Candidates: []playground.Candidate{{
			FinishReason: mapStopReason(msg.StopReason),
			Parts:        parts,
		}},
		Model:        string(msg.Model),
		InputTokens:  int(msg.Usage.InputTokens),
		OutputTokens: int(msg.Usage.OutputTokens),
		Metadata:     metadata,
	}
}
