package playground

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyOutcome_FinishReasons(t *testing.T) {
	tests := []struct {
		name     string
		resp     *RawResponse
		err      error
		wantKind OutcomeKind
		wantText string
		wantCode FinishReason
	}{
		{
			name:     "stop with content",
			resp:     textResponse(FinishReasonStop, "Hello", " world"),
			wantKind: OutcomeSuccess,
			wantText: "Hello world",
		},
		{
			name:     "stop without parts",
			resp:     textResponse(FinishReasonStop),
			wantKind: OutcomeEmptyResponse,
		},
		{
			name:     "stop with only empty parts",
			resp:     textResponse(FinishReasonStop, "", ""),
			wantKind: OutcomeEmptyResponse,
		},
		{
			name:     "max tokens",
			resp:     textResponse(FinishReasonMaxTokens, "partial"),
			wantKind: OutcomeTruncatedByLength,
		},
		{
			name:     "safety",
			resp:     textResponse(FinishReasonSafety),
			wantKind: OutcomeBlockedBySafety,
		},
		{
			name:     "recitation",
			resp:     textResponse(FinishReasonRecitation, "repeated"),
			wantKind: OutcomeBlockedByRepetition,
		},
		{
			name:     "unspecified",
			resp:     textResponse(FinishReasonUnspecified, "text"),
			wantKind: OutcomeUnknownTerminationReason,
			wantCode: FinishReasonUnspecified,
		},
		{
			name:     "other",
			resp:     textResponse(FinishReasonOther),
			wantKind: OutcomeUnknownTerminationReason,
			wantCode: FinishReasonOther,
		},
		{
			name:     "prohibited content",
			resp:     textResponse(FinishReasonProhibitedContent),
			wantKind: OutcomeUnknownTerminationReason,
			wantCode: FinishReasonProhibitedContent,
		},
		{
			name:     "unmapped vendor code",
			resp:     textResponse(FinishReason(42), "text"),
			wantKind: OutcomeUnknownTerminationReason,
			wantCode: FinishReason(42),
		},
		{
			name:     "no candidates",
			resp:     &RawResponse{},
			wantKind: OutcomeEmptyResponse,
		},
		{
			name:     "nil response",
			resp:     nil,
			wantKind: OutcomeEmptyResponse,
		},
		{
			name:     "call error wins over response",
			resp:     textResponse(FinishReasonStop, "ignored"),
			err:      errors.New("connection refused"),
			wantKind: OutcomeTransportError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyOutcome(tt.resp, tt.err)
			if got.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", got.Code, tt.wantCode)
			}
		})
	}
}

func TestClassifyOutcome_UsesFirstCandidate(t *testing.T) {
	resp := &RawResponse{
		Candidates: []Candidate{
			{FinishReason: FinishReasonSafety},
			{FinishReason: FinishReasonStop, Parts: []string{"second"}},
		},
	}
	if got := ClassifyOutcome(resp, nil); got.Kind != OutcomeBlockedBySafety {
		t.Errorf("Kind = %v, want blocked_by_safety", got.Kind)
	}
}

func TestClassifyOutcome_TransportMessage(t *testing.T) {
	got := ClassifyOutcome(nil, &ProviderError{Provider: "gemini", StatusCode: 503, Message: "overloaded", Err: ErrProviderUnavailable})
	if got.Kind != OutcomeTransportError {
		t.Fatalf("Kind = %v, want transport_error", got.Kind)
	}
	if !strings.Contains(got.Message, "overloaded") {
		t.Errorf("Message %q should carry the provider message", got.Message)
	}
}

func TestFormatForUser_Success(t *testing.T) {
	if got := FormatForUser(Outcome{Kind: OutcomeSuccess, Text: "hi"}); got != "hi" {
		t.Errorf("FormatForUser(Success(hi)) = %q, want %q", got, "hi")
	}
}

func TestFormatForUser_Markers(t *testing.T) {
	tests := []struct {
		outcome Outcome
		marker  string
	}{
		{Outcome{Kind: OutcomeEmptyResponse}, MarkerEmptyResponse},
		{Outcome{Kind: OutcomeTruncatedByLength}, MarkerTruncated},
		{Outcome{Kind: OutcomeBlockedBySafety}, MarkerSafety},
		{Outcome{Kind: OutcomeBlockedByRepetition}, MarkerRepetition},
		{Outcome{Kind: OutcomeUnknownTerminationReason, Code: FinishReasonOther}, MarkerUnknownReason},
		{Outcome{Kind: OutcomeTransportError, Message: "boom"}, MarkerTransport},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.Kind.String(), func(t *testing.T) {
			got := FormatForUser(tt.outcome)
			if !strings.Contains(got, tt.marker) {
				t.Errorf("FormatForUser() = %q, missing marker %q", got, tt.marker)
			}
			if !strings.Contains(got, MarkerFailed) {
				t.Errorf("FormatForUser() = %q, missing %q", got, MarkerFailed)
			}
			if got != tt.outcome.String() {
				t.Error("String() should match FormatForUser()")
			}
		})
	}
}

func TestFormatForUser_Details(t *testing.T) {
	unknown := FormatForUser(Outcome{Kind: OutcomeUnknownTerminationReason, Code: FinishReasonOther})
	if !strings.Contains(unknown, "5") || !strings.Contains(unknown, "OTHER") {
		t.Errorf("unknown reason diagnostic %q should include code and name", unknown)
	}

	transport := FormatForUser(Outcome{Kind: OutcomeTransportError, Message: "dial tcp: timeout"})
	if !strings.Contains(transport, "dial tcp: timeout") {
		t.Errorf("transport diagnostic %q should include the error message", transport)
	}
}

func TestOutcome_TextOr(t *testing.T) {
	ok := Outcome{Kind: OutcomeSuccess, Text: "enhanced"}
	if got := ok.TextOr("fallback"); got != "enhanced" {
		t.Errorf("TextOr on success = %q", got)
	}
	failed := Outcome{Kind: OutcomeBlockedBySafety}
	if got := failed.TextOr("fallback"); got != "fallback" {
		t.Errorf("TextOr on failure = %q", got)
	}
}

func TestFinishReason_ParseAndString(t *testing.T) {
	for code := FinishReasonUnspecified; code <= FinishReasonImageSafety; code++ {
		if got := ParseFinishReason(code.String()); got != code {
			t.Errorf("ParseFinishReason(%q) = %v, want %v", code.String(), got, code)
		}
	}
	if got := ParseFinishReason("SOMETHING_NEW"); got != FinishReasonUnspecified {
		t.Errorf("unknown name should map to unspecified, got %v", got)
	}
	if got := FinishReason(99).String(); got != "FinishReason(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestOutcome_Hint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", NewProviderError("gemini", 401, "bad key"), "API key"},
		{"missing key", &ConfigError{Field: "GOOGLE_API_KEY", Reason: "not set", Err: ErrMissingAPIKey}, "API key"},
		{"rate limited", NewProviderError("anthropic", 429, "slow down"), "try again"},
		{"unavailable", fmt.Errorf("call: %w", ErrProviderUnavailable), "try again"},
		{"empty input", fmt.Errorf("prompt: %w", ErrEmptyInput), "check the input"},
		{"unclassified", fmt.Errorf("dial tcp: i/o timeout"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ClassifyOutcome(nil, tt.err).Hint()
			if tt.want == "" {
				if hint != "" {
					t.Errorf("Hint() = %q, want empty", hint)
				}
				return
			}
			if !strings.Contains(hint, tt.want) {
				t.Errorf("Hint() = %q, want it to contain %q", hint, tt.want)
			}
		})
	}

	if hint := (Outcome{Kind: OutcomeBlockedBySafety}).Hint(); hint != "" {
		t.Errorf("non-transport outcome hint = %q", hint)
	}
}

func TestFormatForUser_NotSent(t *testing.T) {
	rejected := FormatForUser(RejectedOutcome(fmt.Errorf("prompt: %w", ErrEmptyInput)))
	if !strings.Contains(rejected, MarkerTransport) || !strings.Contains(rejected, MarkerNotSent) {
		t.Errorf("rejected = %q", rejected)
	}
	if !strings.Contains(rejected, "empty input") {
		t.Errorf("rejected should carry the cause: %q", rejected)
	}

	sent := FormatForUser(ClassifyOutcome(nil, errors.New("connection reset")))
	if strings.Contains(sent, MarkerNotSent) {
		t.Errorf("transport failure marked not sent: %q", sent)
	}
}
