package anthropic

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	playground "github.com/haowjy/genai-playground-go"
)

// defaultMaxTokens applies when the request has no max_tokens; the Messages API requires one.
const defaultMaxTokens = 1000

// buildMessageParams maps a GenerateRequest onto the Messages API.
//
// Current Claude models reject temperature and top_p in the same call, so
// top_p is only sent when no temperature is set. The safety threshold has
// no Anthropic counterpart and is not sent.
func buildMessageParams(req *playground.GenerateRequest) (anthropic.MessageNewParams, error) {
	messages, err := convertToAnthropicMessages(req.Conversation(), req.Images)
	if err != nil {
		return anthropic.MessageNewParams{}, fmt.Errorf("failed to convert messages: %w", err)
	}

	p := req.Params
	if p == nil {
		p = &playground.GenerationParams{}
	}

	out := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		Messages:  messages,
		MaxTokens: int64(p.GetMaxTokens(defaultMaxTokens)),
	}

	switch {
	case p.Temperature != nil:
		out.Temperature = anthropic.Float(*p.Temperature)
	case p.TopP != nil:
		out.TopP = anthropic.Float(*p.TopP)
	}
	if p.TopK != nil {
		out.TopK = anthropic.Int(int64(*p.TopK))
	}
	if len(p.Stop) > 0 {
		out.StopSequences = p.Stop
	}
	if req.System != nil && *req.System != "" {
		out.System = []anthropic.TextBlockParam{{Text: *req.System}}
	}

	return out, nil
}
