package playground

import "fmt"

// FinishReason is the vendor-supplied code explaining why generation stopped.
// Values follow the Gemini API enum so that codes printed to users match the
// vendor documentation; other providers map onto the same numbers.
type FinishReason int

const (
	FinishReasonUnspecified           FinishReason = 0
	FinishReasonStop                  FinishReason = 1 // natural stop or stop sequence
	FinishReasonMaxTokens             FinishReason = 2
	FinishReasonSafety                FinishReason = 3
	FinishReasonRecitation            FinishReason = 4 // repetition / recitation detector
	FinishReasonOther                 FinishReason = 5
	FinishReasonLanguage              FinishReason = 6
	FinishReasonBlocklist             FinishReason = 7
	FinishReasonProhibitedContent     FinishReason = 8
	FinishReasonSPII                  FinishReason = 9
	FinishReasonMalformedFunctionCall FinishReason = 10
	FinishReasonImageSafety           FinishReason = 11
)

var finishReasonNames = map[FinishReason]string{
	FinishReasonUnspecified:           "FINISH_REASON_UNSPECIFIED",
	FinishReasonStop:                  "STOP",
	FinishReasonMaxTokens:             "MAX_TOKENS",
	FinishReasonSafety:                "SAFETY",
	FinishReasonRecitation:            "RECITATION",
	FinishReasonOther:                 "OTHER",
	FinishReasonLanguage:              "LANGUAGE",
	FinishReasonBlocklist:             "BLOCKLIST",
	FinishReasonProhibitedContent:     "PROHIBITED_CONTENT",
	FinishReasonSPII:                  "SPII",
	FinishReasonMalformedFunctionCall: "MALFORMED_FUNCTION_CALL",
	FinishReasonImageSafety:           "IMAGE_SAFETY",
}

// String returns the vendor enum name, or the bare number for unknown codes.
func (f FinishReason) String() string {
	if name, ok := finishReasonNames[f]; ok {
		return name
	}
	return fmt.Sprintf("FinishReason(%d)", int(f))
}

// ParseFinishReason maps a vendor enum name to its code.
// Unknown names map to FinishReasonUnspecified.
func ParseFinishReason(name string) FinishReason {
	for code, n := range finishReasonNames {
		if n == name {
			return code
		}
	}
	return FinishReasonUnspecified
}
