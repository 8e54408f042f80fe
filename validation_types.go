package playground

import (
	"fmt"
	"log/slog"
)

// Severity ranks a validation warning. No severity stops a request;
// the provider stays the judge of what it accepts.
type Severity string

const (
	SeverityInfo    Severity = "info"    // expected for this provider, e.g. an ignored setting
	SeverityWarning Severity = "warning" // the call may misbehave
	SeverityError   Severity = "error"   // the provider will most likely reject the call
)

// logLevel maps a severity onto the slog level it is reported at.
func (s Severity) logLevel() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// WarningCode identifies a warning for programs.
type WarningCode string

const (
	WarningCodeModelUnknown      WarningCode = "MODEL_UNKNOWN"
	WarningCodeCapabilityMissing WarningCode = "CAPABILITY_MISSING"

	WarningCodeVisionUnsupported WarningCode = "VISION_UNSUPPORTED"

	WarningCodeSafetyIgnored WarningCode = "SAFETY_SETTINGS_IGNORED"

	WarningCodeTemperatureOutOfRange WarningCode = "TEMPERATURE_OUT_OF_RANGE"
	WarningCodeTopPOutOfRange        WarningCode = "TOP_P_OUT_OF_RANGE"
	WarningCodeTopKOutOfRange        WarningCode = "TOP_K_OUT_OF_RANGE"
	WarningCodeMaxTokensTooHigh      WarningCode = "MAX_TOKENS_TOO_HIGH"
)

// ValidationWarning describes one doubt about a request, judged against
// the capability catalog.
type ValidationWarning struct {
	Code     WarningCode
	Category string // model, parameter, safety or vision
	Field    string
	Value    any
	Message  string
	Severity Severity
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Severity, w.Code, w.Message)
}

// ValidationRule inspects a request for one class of problem.
type ValidationRule interface {
	Name() string
	Check(provider string, req *GenerateRequest) []ValidationWarning
}
