package issue

import "fmt"

// Severity defines the urgency of an issue. Values are ordered: a higher
// value is more urgent, so comparisons like sev >= SevError work for
// thresholds.
type Severity uint8

const (
	// SevSuggestion is for optional improvements.
	SevSuggestion Severity = iota
	// SevNote is for neutral informational records.
	SevNote
	// SevHint is for likely-but-not-certain problems.
	SevHint
	SevWarning
	SevError
	// SevFatal is for problems that abort the surrounding operation.
	SevFatal
	// SevBug is for defects in the pipeline itself.
	SevBug
)

func (s Severity) String() string {
	switch s {
	case SevBug:
		return "bug"
	case SevFatal:
		return "fatal"
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	case SevHint:
		return "hint"
	case SevNote:
		return "note"
	case SevSuggestion:
		return "suggestion"
	}
	return "unknown"
}

// ParseSeverity converts a lowercase severity name into its value.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "bug":
		return SevBug, nil
	case "fatal":
		return SevFatal, nil
	case "error":
		return SevError, nil
	case "warning":
		return SevWarning, nil
	case "hint":
		return SevHint, nil
	case "note":
		return SevNote, nil
	case "suggestion":
		return SevSuggestion, nil
	}
	return SevNote, fmt.Errorf("unknown severity %q", name)
}
