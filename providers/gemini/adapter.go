package gemini

import (
	"fmt"

	"google.golang.org/genai"

	playground "github.com/haowjy/genai-playground-go"
)

// buildContents converts the conversation to genai contents.
// Images are attached to the last message, ahead of its text.
func buildContents(messages []playground.Message, images []playground.ImageInput) ([]*genai.Content, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages")
	}

	contents := make([]*genai.Content, 0, len(messages))
	last := len(messages) - 1
	for i, msg := range messages {
		var role genai.Role
		switch msg.Role {
		case playground.RoleUser:
			role = genai.RoleUser
		case playground.RoleAssistant:
			role = genai.RoleModel
		default:
			return nil, fmt.Errorf("message %d: unsupported role %q", i, msg.Role)
		}

		parts := make([]*genai.Part, 0, 1+len(images))
		if i == last {
			for _, img := range images {
				parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
			}
		}
		parts = append(parts, genai.NewPartFromText(msg.Text))
		contents = append(contents, genai.NewContentFromParts(parts, role))
	}
	return contents, nil
}

// buildConfig maps GenerationParams onto a GenerateContentConfig.
// The safety threshold is applied to every category in playground.HarmCategories.
func buildConfig(req *playground.GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if req.System != nil && *req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(*req.System, genai.RoleUser)
	}

	params := req.Params
	if params == nil {
		return cfg
	}

	if params.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*params.Temperature))
	}
	if params.TopP != nil {
		cfg.TopP = genai.Ptr(float32(*params.TopP))
	}
	if params.TopK != nil {
		cfg.TopK = genai.Ptr(float32(*params.TopK))
	}
	if params.MaxTokens != nil {
		cfg.MaxOutputTokens = int32(*params.MaxTokens)
	}
	if len(params.Stop) > 0 {
		cfg.StopSequences = params.Stop
	}
	if params.SafetyThreshold != nil {
		threshold := genai.HarmBlockThreshold(*params.SafetyThreshold)
		for _, category := range playground.HarmCategories {
			cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
				Category:  genai.HarmCategory(category),
				Threshold: threshold,
			})
		}
	}

	return cfg
}

// mapFinishReason converts the vendor enum name to its code.
// Names this module does not know yet map to FinishReasonOther.
func mapFinishReason(reason genai.FinishReason) playground.FinishReason {
	if reason == "" {
		return playground.FinishReasonUnspecified
	}
	code := playground.ParseFinishReason(string(reason))
	if code == playground.FinishReasonUnspecified && string(reason) != playground.FinishReasonUnspecified.String() {
		return playground.FinishReasonOther
	}
	return code
}

// convertResponse turns a genai response into the provider-neutral form.
// A prompt blocked before generation has no candidates; it is reported
// as a single SAFETY candidate so callers see the block.
func convertResponse(resp *genai.GenerateContentResponse, model string) *playground.RawResponse {
	raw := &playground.RawResponse{
		Model:    model,
		Metadata: make(map[string]interface{}),
	}
	if resp == nil {
		return raw
	}

	if resp.ModelVersion != "" {
		raw.Model = resp.ModelVersion
	}
	if resp.UsageMetadata != nil {
		raw.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		raw.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		candidate := playground.Candidate{FinishReason: mapFinishReason(c.FinishReason)}
		if c.Content != nil {
			for _, part := range c.Content.Parts {
				if part == nil || part.Thought || part.Text == "" {
					continue
				}
				candidate.Parts = append(candidate.Parts, part.Text)
			}
		}
		raw.Candidates = append(raw.Candidates, candidate)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		raw.Metadata["finish_reason"] = string(resp.Candidates[0].FinishReason)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		raw.Metadata["block_reason"] = string(resp.PromptFeedback.BlockReason)
		if len(raw.Candidates) == 0 {
			raw.Candidates = []playground.Candidate{{FinishReason: playground.FinishReasonSafety}}
		}
	}

	return raw
}
