package issue

import "wayfind/internal/source"

// ReportBuilder accumulates issue fields before emitting to a Sink.
// Producers chain With* calls and finish with Emit, which fires exactly
// once.
type ReportBuilder struct {
	sink    *Sink
	tok     PassToken
	issue   Issue
	emitted bool
}

// NewReport constructs a builder bound to a sink and pass token.
func NewReport(s *Sink, tok PassToken, sev Severity, context, category, title, description string) *ReportBuilder {
	return &ReportBuilder{
		sink:  s,
		tok:   tok,
		issue: New(sev, context, category, title, description),
	}
}

// ReportError is a shortcut for SevError issues.
func ReportError(s *Sink, tok PassToken, context, category, title, description string) *ReportBuilder {
	return NewReport(s, tok, SevError, context, category, title, description)
}

// ReportWarning is a shortcut for SevWarning issues.
func ReportWarning(s *Sink, tok PassToken, context, category, title, description string) *ReportBuilder {
	return NewReport(s, tok, SevWarning, context, category, title, description)
}

func (b *ReportBuilder) WithDetail(detail string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.issue = b.issue.WithDetail(detail)
	return b
}

func (b *ReportBuilder) WithDocLink(url string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.issue = b.issue.WithDocLink(url)
	return b
}

func (b *ReportBuilder) WithSource(sp source.Span) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.issue = b.issue.WithSource(sp)
	return b
}

func (b *ReportBuilder) WithSub(subs ...Issue) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.issue = b.issue.WithSub(subs...)
	return b
}

func (b *ReportBuilder) WithPath(p *ProcessingPath) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.issue = b.issue.WithPath(p)
	return b
}

// Emit sends the accumulated issue to the sink exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.sink != nil {
		b.sink.Report(b.tok, b.issue)
	}
	b.emitted = true
}

// Issue returns the accumulated issue without emitting.
func (b *ReportBuilder) Issue() Issue {
	if b == nil {
		return Issue{}
	}
	return b.issue
}
