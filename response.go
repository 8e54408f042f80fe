package playground

import "strings"

// RawResponse is the provider-neutral form of a vendor response.
// Providers fill it in; ClassifyOutcome turns it into an Outcome.
type RawResponse struct {
	// Candidates holds the generated alternatives. Only the first one is used.
	Candidates []Candidate

	// Model is the model that was used (may differ from request if aliased)
	Model string

	// InputTokens is the number of tokens in the input
	InputTokens int

	// OutputTokens is the number of tokens in the output
	OutputTokens int

	// Metadata contains provider-specific response data
	// Examples: the vendor's raw finish reason string, prompt block reason
	Metadata map[string]interface{}
}

// Candidate is one generated alternative.
type Candidate struct {
	// FinishReason is the normalized stop code (see finish_reason.go)
	FinishReason FinishReason

	// Parts are the text parts in order
	Parts []string
}

// HasContent reports whether the candidate carries at least one non-empty part.
func (c Candidate) HasContent() bool {
	for _, p := range c.Parts {
		if p != "" {
			return true
		}
	}
	return false
}

// Text joins the candidate's parts.
func (c Candidate) Text() string {
	return strings.Join(c.Parts, "")
}

// First returns the first candidate, if any.
func (r *RawResponse) First() (Candidate, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}
