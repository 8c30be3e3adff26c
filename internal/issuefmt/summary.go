package issuefmt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wayfind/internal/issue"
)

var summaryStyles = map[issue.Severity]lipgloss.Style{
	issue.SevBug:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	issue.SevFatal:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	issue.SevError:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	issue.SevWarning:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	issue.SevHint:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	issue.SevNote:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	issue.SevSuggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}

// severityOrder lists severities most urgent first, for stable summaries.
var severityOrder = []issue.Severity{
	issue.SevBug, issue.SevFatal, issue.SevError,
	issue.SevWarning, issue.SevHint, issue.SevNote, issue.SevSuggestion,
}

// Summary renders one line of per-severity counts, most urgent first,
// e.g. "2 errors, 1 warning, 1 note". Returns "no issues" for an empty
// map.
func Summary(counts map[issue.Severity]int, colored bool) string {
	parts := make([]string, 0, len(counts))
	for _, sev := range severityOrder {
		n := counts[sev]
		if n == 0 {
			continue
		}
		label := sev.String()
		if n != 1 {
			label += "s"
		}
		part := fmt.Sprintf("%d %s", n, label)
		if colored {
			part = summaryStyles[sev].Render(part)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}
