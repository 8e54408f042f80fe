package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"

	playground "github.com/haowjy/genai-playground-go"
)

func TestBuildContents_Roles(t *testing.T) {
	messages := []playground.Message{
		{Role: playground.RoleUser, Text: "hi"},
		{Role: playground.RoleAssistant, Text: "hello"},
		{Role: playground.RoleUser, Text: "what is Go?"},
	}

	contents, err := buildContents(messages, nil)
	if err != nil {
		t.Fatalf("buildContents() error = %v", err)
	}
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}

	wantRoles := []string{"user", "model", "user"}
	for i, want := range wantRoles {
		if contents[i].Role != want {
			t.Errorf("content %d role = %q, want %q", i, contents[i].Role, want)
		}
		if len(contents[i].Parts) != 1 || contents[i].Parts[0].Text != messages[i].Text {
			t.Errorf("content %d parts = %+v", i, contents[i].Parts)
		}
	}
}

func TestBuildContents_Image(t *testing.T) {
	contents, err := buildContents(
		[]playground.Message{{Role: playground.RoleUser, Text: "Describe this image"}},
		[]playground.ImageInput{{MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}},
	)
	if err != nil {
		t.Fatal(err)
	}

	parts := contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected image + text parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "image/jpeg" {
		t.Errorf("first part should be inline image, got %+v", parts[0])
	}
	if parts[1].Text != "Describe this image" {
		t.Errorf("second part text = %q", parts[1].Text)
	}
}

func TestBuildContents_Errors(t *testing.T) {
	if _, err := buildContents(nil, nil); err == nil {
		t.Error("expected error for no messages")
	}
	if _, err := buildContents([]playground.Message{{Role: "tool", Text: "x"}}, nil); err == nil {
		t.Error("expected error for unsupported role")
	}
}

func TestBuildConfig(t *testing.T) {
	system := "Be brief."
	maxTokens := 1000
	temperature := 0.7
	topP := 0.8
	topK := 40
	threshold := playground.SafetyBlockMediumAndAbove

	cfg := buildConfig(&playground.GenerateRequest{
		System: &system,
		Params: &playground.GenerationParams{
			MaxTokens:       &maxTokens,
			Temperature:     &temperature,
			TopP:            &topP,
			TopK:            &topK,
			Stop:            []string{"END"},
			SafetyThreshold: &threshold,
		},
	})

	if cfg.MaxOutputTokens != 1000 {
		t.Errorf("MaxOutputTokens = %d", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Errorf("Temperature = %v", cfg.Temperature)
	}
	if cfg.TopP == nil || *cfg.TopP != float32(0.8) {
		t.Errorf("TopP = %v", cfg.TopP)
	}
	if cfg.TopK == nil || *cfg.TopK != 40 {
		t.Errorf("TopK = %v", cfg.TopK)
	}
	if len(cfg.StopSequences) != 1 {
		t.Errorf("StopSequences = %v", cfg.StopSequences)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != system {
		t.Error("system instruction not set")
	}

	if len(cfg.SafetySettings) != len(playground.HarmCategories) {
		t.Fatalf("expected %d safety settings, got %d", len(playground.HarmCategories), len(cfg.SafetySettings))
	}
	for i, s := range cfg.SafetySettings {
		if string(s.Category) != playground.HarmCategories[i] {
			t.Errorf("setting %d category = %s", i, s.Category)
		}
		if string(s.Threshold) != "BLOCK_MEDIUM_AND_ABOVE" {
			t.Errorf("setting %d threshold = %s", i, s.Threshold)
		}
	}
}

func TestBuildConfig_NoParams(t *testing.T) {
	cfg := buildConfig(&playground.GenerateRequest{Prompt: "hi"})
	if cfg.Temperature != nil || cfg.MaxOutputTokens != 0 || len(cfg.SafetySettings) != 0 || cfg.SystemInstruction != nil {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestMapFinishReason(t *testing.T) {
	tests := []struct {
		reason genai.FinishReason
		want   playground.FinishReason
	}{
		{"STOP", playground.FinishReasonStop},
		{"MAX_TOKENS", playground.FinishReasonMaxTokens},
		{"SAFETY", playground.FinishReasonSafety},
		{"RECITATION", playground.FinishReasonRecitation},
		{"OTHER", playground.FinishReasonOther},
		{"BLOCKLIST", playground.FinishReasonBlocklist},
		{"FINISH_REASON_UNSPECIFIED", playground.FinishReasonUnspecified},
		{"", playground.FinishReasonUnspecified},
		{"SOMETHING_NEW", playground.FinishReasonOther},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			if got := mapFinishReason(tt.reason); got != tt.want {
				t.Errorf("mapFinishReason(%q) = %v, want %v", tt.reason, got, tt.want)
			}
		})
	}
}

func TestConvertResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role: "model",
				Parts: []*genai.Part{
					{Text: "thinking...", Thought: true},
					{Text: "Hello"},
					{Text: ", world"},
				},
			},
			FinishReason: genai.FinishReason("STOP"),
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     7,
			CandidatesTokenCount: 3,
		},
		ModelVersion: "gemini-1.5-flash-002",
	}

	raw := convertResponse(resp, "gemini-1.5-flash")

	outcome := playground.ClassifyOutcome(raw, nil)
	if outcome.Kind != playground.OutcomeSuccess || outcome.Text != "Hello, world" {
		t.Fatalf("outcome = %+v", outcome)
	}
	if raw.InputTokens != 7 || raw.OutputTokens != 3 {
		t.Errorf("tokens = %d/%d", raw.InputTokens, raw.OutputTokens)
	}
	if raw.Model != "gemini-1.5-flash-002" {
		t.Errorf("Model = %q", raw.Model)
	}
	if raw.Metadata["finish_reason"] != "STOP" {
		t.Errorf("metadata = %v", raw.Metadata)
	}
}

func TestConvertResponse_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want playground.OutcomeKind
	}{
		{
			name: "nil response",
			resp: nil,
			want: playground.OutcomeEmptyResponse,
		},
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
			want: playground.OutcomeEmptyResponse,
		},
		{
			name: "prompt blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReason("SAFETY")},
			},
			want: playground.OutcomeBlockedBySafety,
		},
		{
			name: "stop without parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReason("STOP")}},
			},
			want: playground.OutcomeEmptyResponse,
		},
		{
			name: "max tokens",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content:      &genai.Content{Parts: []*genai.Part{{Text: "part"}}},
					FinishReason: genai.FinishReason("MAX_TOKENS"),
				}},
			},
			want: playground.OutcomeTruncatedByLength,
		},
		{
			name: "safety",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReason("SAFETY")}},
			},
			want: playground.OutcomeBlockedBySafety,
		},
		{
			name: "recitation",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReason("RECITATION")}},
			},
			want: playground.OutcomeBlockedByRepetition,
		},
		{
			name: "language",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReason("LANGUAGE")}},
			},
			want: playground.OutcomeUnknownTerminationReason,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := playground.ClassifyOutcome(convertResponse(tt.resp, "gemini-1.5-flash"), nil)
			if got.Kind != tt.want {
				t.Errorf("outcome = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestConvertModel(t *testing.T) {
	info := convertModel(&genai.Model{
		Name:             "models/gemini-1.5-flash",
		DisplayName:      "Gemini 1.5 Flash",
		OutputTokenLimit: 8192,
		SupportedActions: []string{"countTokens", "generateContent"},
	})
	if info.Name != "gemini-1.5-flash" || info.OutputTokenLimit != 8192 || !info.SupportsGeneration {
		t.Errorf("convertModel = %+v", info)
	}

	embed := convertModel(&genai.Model{Name: "models/text-embedding-004", SupportedActions: []string{"embedContent"}})
	if embed.SupportsGeneration {
		t.Error("embedding model should not support generation")
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(context.Background(), "")
	if !errors.Is(err, playground.ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if !playground.IsConfigError(err) {
		t.Error("missing key should be a ConfigError")
	}
}

func TestProvider_SupportsModel(t *testing.T) {
	provider := &Provider{}
	for model, want := range map[string]bool{
		"gemini-1.5-flash":        true,
		"models/gemini-2.5-pro":   true,
		"claude-haiku-4-5":        false,
		"lorem-fast":              false,
		"models/text-embedding-4": false,
	} {
		if got := provider.SupportsModel(model); got != want {
			t.Errorf("SupportsModel(%q) = %v, want %v", model, got, want)
		}
	}
}

func TestProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "gemini-1.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "Go is a programming language."}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 4, "candidatesTokenCount": 6}
		}`))
	}))
	defer server.Close()

	provider, err := NewProvider(context.Background(), "test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}

	resp, err := provider.Generate(context.Background(), &playground.GenerateRequest{
		Prompt: "What is Go?",
		Model:  "gemini-1.5-flash",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	outcome := playground.ClassifyOutcome(resp, nil)
	if outcome.Text != "Go is a programming language." {
		t.Errorf("outcome = %+v", outcome)
	}
	if resp.InputTokens != 4 || resp.OutputTokens != 6 {
		t.Errorf("tokens = %d/%d", resp.InputTokens, resp.OutputTokens)
	}
}

func TestProvider_GenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid.", "status": "INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	provider, err := NewProvider(context.Background(), "bad-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}

	_, err = provider.Generate(context.Background(), &playground.GenerateRequest{
		Prompt: "hi",
		Model:  "gemini-1.5-flash",
	})

	var providerErr *playground.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if providerErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", providerErr.StatusCode)
	}
	if !strings.Contains(providerErr.Message, "API key not valid") {
		t.Errorf("Message = %q", providerErr.Message)
	}

	outcome := playground.ClassifyOutcome(nil, err)
	if outcome.Kind != playground.OutcomeTransportError {
		t.Errorf("outcome = %v", outcome.Kind)
	}
}
