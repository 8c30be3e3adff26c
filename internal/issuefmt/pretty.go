package issuefmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"wayfind/internal/issue"
	"wayfind/internal/source"
)

var severityColors = map[issue.Severity]*color.Color{
	issue.SevBug:        color.New(color.FgMagenta, color.Bold),
	issue.SevFatal:      color.New(color.FgRed, color.Bold),
	issue.SevError:      color.New(color.FgRed),
	issue.SevWarning:    color.New(color.FgYellow),
	issue.SevHint:       color.New(color.FgCyan),
	issue.SevNote:       color.New(color.FgBlue),
	issue.SevSuggestion: color.New(color.FgGreen),
}

// Pretty renders issues in the textual contract other tooling relies on
// for snapshot testing:
//
//	<severity> - <category>: <title> at <context>[:line:col]
//	<description>
//	<detail, verbatim, embedded and trailing newlines preserved>
//	<doc link, when non-empty>
//	<sub-issues, recursively, indented two spaces>
//
// Only the header line is colored and width-clamped; detail text is never
// touched. Issues below opts.MinSeverity are skipped.
func Pretty(w io.Writer, issues []issue.Issue, fs *source.FileSet, opts Opts) {
	first := true
	for _, is := range issues {
		if is.Severity < opts.MinSeverity {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		io.WriteString(w, renderIssue(is, fs, opts))
	}
}

// RenderIssue renders a single issue without severity filtering.
func RenderIssue(is issue.Issue, fs *source.FileSet, opts Opts) string {
	return renderIssue(is, fs, opts)
}

func renderIssue(is issue.Issue, fs *source.FileSet, opts Opts) string {
	var b strings.Builder

	b.WriteString(header(is, fs, opts))
	b.WriteByte('\n')

	if is.Description != "" {
		b.WriteString(is.Description)
		b.WriteByte('\n')
	}
	if is.Detail != "" {
		b.WriteString(is.Detail)
		if !strings.HasSuffix(is.Detail, "\n") {
			b.WriteByte('\n')
		}
	}
	if is.DocLink != "" {
		b.WriteString(is.DocLink)
		b.WriteByte('\n')
	}
	if opts.ShowPath && is.Path.Len() > 0 {
		for _, step := range is.Path.Steps() {
			fmt.Fprintf(&b, "  tried %s %q at %s\n", step.Kind, step.Request, step.Location)
		}
	}
	for _, sub := range is.SubIssues {
		b.WriteString(indent(renderIssue(sub, fs, opts)))
	}
	return b.String()
}

func header(is issue.Issue, fs *source.FileSet, opts Opts) string {
	line := fmt.Sprintf("%s - %s: %s at %s", is.Severity, is.Category, is.Title, contextPath(is.Context, fs, opts))
	if loc := spanSuffix(is.Source, fs); loc != "" {
		line += loc
	}
	if opts.Width > 0 {
		line = runewidth.Truncate(line, int(opts.Width), "…")
	}
	if opts.Color {
		if c, ok := severityColors[is.Severity]; ok {
			return c.Sprint(line)
		}
	}
	return line
}

// contextPath reformats the context anchor when it names a file the set
// knows about; unknown anchors are printed as reported.
func contextPath(context string, fs *source.FileSet, opts Opts) string {
	if opts.PathMode == PathModeAuto || fs == nil {
		return context
	}
	id, ok := fs.GetLatest(context)
	if !ok {
		return context
	}
	return fs.Get(id).FormatPath(opts.PathMode.name(), fs.BaseDir())
}

func spanSuffix(sp source.Span, fs *source.FileSet) string {
	if sp.IsZero() || fs == nil {
		return ""
	}
	start, _, ok := fs.Resolve(sp)
	if !ok {
		return ""
	}
	return fmt.Sprintf(":%d:%d", start.Line, start.Col)
}

// indent prefixes every non-empty line with two spaces. Used for
// sub-issue nesting; the sub-issue's own detail lines shift with it.
func indent(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if line != "" {
			b.WriteString("  ")
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
