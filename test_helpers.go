package playground

import "os"

// Test helper functions shared across test files

func intPtr(i int) *int {
	return &i
}

func float64Ptr(f float64) *float64 {
	return &f
}

func thresholdPtr(t SafetyThreshold) *SafetyThreshold {
	return &t
}

// textResponse returns a single-candidate response.
func textResponse(reason FinishReason, parts ...string) *RawResponse {
	return &RawResponse{
		Candidates: []Candidate{{FinishReason: reason, Parts: parts}},
		Model:      "test-model",
	}
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
