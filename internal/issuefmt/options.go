package issuefmt

import "wayfind/internal/issue"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) name() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Opts configures pretty-printing of issues.
type Opts struct {
	Color       bool
	PathMode    PathMode
	Width       uint16 // maximum header width, 0 = unlimited
	ShowPath    bool   // render processing path traces
	MinSeverity issue.Severity
}
