package playground

import (
	"fmt"
)

// OutcomeKind tags the case of an Outcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmptyResponse
	OutcomeTruncatedByLength
	OutcomeBlockedBySafety
	OutcomeBlockedByRepetition
	OutcomeUnknownTerminationReason
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmptyResponse:
		return "empty_response"
	case OutcomeTruncatedByLength:
		return "truncated_by_length"
	case OutcomeBlockedBySafety:
		return "blocked_by_safety"
	case OutcomeBlockedByRepetition:
		return "blocked_by_repetition"
	case OutcomeUnknownTerminationReason:
		return "unknown_termination_reason"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Marker substrings contained in every non-success diagnostic.
// Callers and tests match on these rather than on the full sentence.
const (
	MarkerFailed        = "generation failed"
	MarkerEmptyResponse = "empty response"
	MarkerTruncated     = "max token limit reached"
	MarkerSafety        = "blocked by safety filter"
	MarkerRepetition    = "repeated content detected"
	MarkerUnknownReason = "unknown finish reason"
	MarkerTransport     = "request error"
	MarkerNotSent       = "not sent"
)

// Outcome is the classified result of one generation call.
// Exactly one Kind applies; Text is set only for OutcomeSuccess, Code only for
// OutcomeUnknownTerminationReason and Message, Err and NotSent only for
// OutcomeTransportError.
type Outcome struct {
	Kind    OutcomeKind
	Text    string
	Code    FinishReason
	Message string
	Err     error
	NotSent bool // rejected locally; the model was never called
}

// Succeeded reports whether the outcome carries generated text.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

// String implements fmt.Stringer using FormatForUser.
func (o Outcome) String() string {
	return FormatForUser(o)
}

// ClassifyOutcome derives an Outcome from a provider response or call error.
//
// Mapping (first candidate):
//
//	call error                 -> TransportError(message)
//	no candidates              -> EmptyResponse
//	STOP (1) with content      -> Success(text)
//	STOP (1) without content   -> EmptyResponse
//	MAX_TOKENS (2)             -> TruncatedByLength
//	SAFETY (3)                 -> BlockedBySafety
//	RECITATION (4)             -> BlockedByRepetition
//	anything else              -> UnknownTerminationReason(code)
func ClassifyOutcome(resp *RawResponse, err error) Outcome {
	if err != nil {
		return Outcome{Kind: OutcomeTransportError, Message: err.Error(), Err: err}
	}

	candidate, ok := resp.First()
	if !ok {
		return Outcome{Kind: OutcomeEmptyResponse}
	}

	switch candidate.FinishReason {
	case FinishReasonStop:
		if candidate.HasContent() {
			return Outcome{Kind: OutcomeSuccess, Text: candidate.Text()}
		}
		return Outcome{Kind: OutcomeEmptyResponse}
	case FinishReasonMaxTokens:
		return Outcome{Kind: OutcomeTruncatedByLength}
	case FinishReasonSafety:
		return Outcome{Kind: OutcomeBlockedBySafety}
	case FinishReasonRecitation:
		return Outcome{Kind: OutcomeBlockedByRepetition}
	default:
		return Outcome{Kind: OutcomeUnknownTerminationReason, Code: candidate.FinishReason}
	}
}

// RejectedOutcome reports a request refused before any model call, such as
// blank input or invalid parameters.
func RejectedOutcome(err error) Outcome {
	o := ClassifyOutcome(nil, err)
	o.NotSent = true
	return o
}

// FormatForUser renders an Outcome for display.
// Success returns the generated text unchanged; every other case returns a
// fixed diagnostic naming the cause.
func FormatForUser(o Outcome) string {
	switch o.Kind {
	case OutcomeSuccess:
		return o.Text
	case OutcomeEmptyResponse:
		return "❌ " + MarkerFailed + ": " + MarkerEmptyResponse
	case OutcomeTruncatedByLength:
		return "❌ " + MarkerFailed + ": " + MarkerTruncated + ", increase DEFAULT_MAX_TOKENS"
	case OutcomeBlockedBySafety:
		return "❌ " + MarkerFailed + ": " + MarkerSafety + ", try rephrasing the prompt"
	case OutcomeBlockedByRepetition:
		return "❌ " + MarkerFailed + ": " + MarkerRepetition
	case OutcomeUnknownTerminationReason:
		return fmt.Sprintf("❌ %s: %s: %d (%s)", MarkerFailed, MarkerUnknownReason, int(o.Code), o.Code)
	case OutcomeTransportError:
		if o.NotSent {
			return fmt.Sprintf("❌ %s: %s (%s): %s", MarkerFailed, MarkerTransport, MarkerNotSent, o.Message)
		}
		return fmt.Sprintf("❌ %s: %s: %s", MarkerFailed, MarkerTransport, o.Message)
	default:
		return fmt.Sprintf("❌ %s: %s", MarkerFailed, o.Kind)
	}
}

// TextOr returns the generated text on success, otherwise fallback.
// Used where a demo prefers a canned answer over a diagnostic.
func (o Outcome) TextOr(fallback string) string {
	if o.Succeeded() {
		return o.Text
	}
	return fallback
}

// Hint suggests what the user can change after a failed call, or "" if
// nothing obvious applies.
func (o Outcome) Hint() string {
	switch {
	case o.Kind != OutcomeTransportError || o.Err == nil:
		return ""
	case IsAuthError(o.Err):
		return "check the API key for this provider"
	case IsRetryable(o.Err):
		return "the provider may be busy; try again in a moment"
	case IsInvalidRequest(o.Err):
		return "check the input and generation settings"
	default:
		return ""
	}
}
