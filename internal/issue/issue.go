package issue

import (
	"fmt"

	"wayfind/internal/source"
)

// Key identifies "the same" issue across repeated reports. Two issues with
// equal keys are merged rather than stored twice.
type Key struct {
	Category string
	Context  string
	Title    string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Category, k.Context, k.Title)
}

// Issue is one diagnostic record. It is a pure value: construct it, hand
// it to a Sink, and treat it as immutable afterwards.
type Issue struct {
	Severity    Severity
	Context     string // anchor for grouping, typically the absolute path of the file being processed
	Category    string // subsystem tag, e.g. "resolve"
	Title       string // stable per failure class
	Description string // one line, may interpolate the failing request
	Detail      string // free-form multi-line elaboration, may be empty
	DocLink     string // optional URL, empty means absent
	Source      source.Span
	SubIssues   []Issue
	// Path is nil when the producer never instrumented the attempt and
	// non-nil with zero steps when it instrumented but recorded nothing.
	Path *ProcessingPath
}

// New constructs an issue from the required fields. Optional fields are
// attached with the With* methods.
func New(sev Severity, context, category, title, description string) Issue {
	return Issue{
		Severity:    sev,
		Context:     context,
		Category:    category,
		Title:       title,
		Description: description,
	}
}

func (is Issue) WithDetail(detail string) Issue {
	is.Detail = detail
	return is
}

func (is Issue) WithDocLink(url string) Issue {
	is.DocLink = url
	return is
}

func (is Issue) WithSource(sp source.Span) Issue {
	is.Source = sp
	return is
}

func (is Issue) WithPath(p *ProcessingPath) Issue {
	is.Path = p
	return is
}

// WithSub attaches child issues and promotes the parent severity so the
// rollup invariant holds.
func (is Issue) WithSub(subs ...Issue) Issue {
	is.SubIssues = append(is.SubIssues, subs...)
	out, _ := is.Normalize()
	return out
}

// Key returns the dedup key (category, context, title).
func (is Issue) Key() Key {
	return Key{Category: is.Category, Context: is.Context, Title: is.Title}
}

func maxSubSeverity(subs []Issue) (Severity, bool) {
	if len(subs) == 0 {
		return 0, false
	}
	maxSev := subs[0].Severity
	for _, sub := range subs[1:] {
		if sub.Severity > maxSev {
			maxSev = sub.Severity
		}
	}
	return maxSev, true
}

// Normalize enforces the severity rollup invariant: a parent must be at
// least as urgent as its most urgent sub-issue. Violations are repaired by
// promoting the parent (never by rejecting the issue, since reporting must
// not fail). The second result reports whether a promotion happened.
func (is Issue) Normalize() (Issue, bool) {
	maxSev, ok := maxSubSeverity(is.SubIssues)
	if !ok || is.Severity >= maxSev {
		return is, false
	}
	is.Severity = maxSev
	return is, true
}

// Merge combines another report of the same issue into this one:
// severities take the max, the first non-empty detail, doc link, source
// and path win (receiver first), and sub-issues become the key-deduped
// union in first-seen order with the receiver's children leading.
// Merging issues with different keys is a programmer error.
func (is Issue) Merge(other Issue) Issue {
	if is.Key() != other.Key() {
		panic(fmt.Errorf("issue: merge with mismatched dedup key: %s vs %s", is.Key(), other.Key()))
	}

	out := is
	if other.Severity > out.Severity {
		out.Severity = other.Severity
	}
	if out.Detail == "" {
		out.Detail = other.Detail
	}
	if out.DocLink == "" {
		out.DocLink = other.DocLink
	}
	if out.Source.IsZero() {
		out.Source = other.Source
	}
	if out.Path == nil {
		out.Path = other.Path
	}
	out.SubIssues = mergeSubIssues(is.SubIssues, other.SubIssues)
	out, _ = out.Normalize()
	return out
}

// mergeSubIssues unions two child sequences by key, preserving first-seen
// order and recursively merging children that collide.
func mergeSubIssues(a, b []Issue) []Issue {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]Issue, 0, len(a)+len(b))
	index := make(map[Key]int, len(a)+len(b))
	for _, seq := range [2][]Issue{a, b} {
		for _, sub := range seq {
			key := sub.Key()
			if at, seen := index[key]; seen {
				out[at] = out[at].Merge(sub)
				continue
			}
			index[key] = len(out)
			out = append(out, sub)
		}
	}
	return out
}
