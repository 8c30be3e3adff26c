package snapshot

import (
	"wayfind/internal/issue"
)

// Record is a flattened issue suitable for msgpack serialization. Source
// spans are dropped: FileIDs are meaningless across processes.
type Record struct {
	Severity    uint8
	Context     string
	Category    string
	Title       string
	Description string
	Detail      string
	DocLink     string
	HasPath     bool // keeps nil vs empty processing path distinct
	Steps       []StepRecord
	Subs        []Record
}

// StepRecord is one serialized processing-path step.
type StepRecord struct {
	Request  string
	Kind     uint8
	Location string
}

// FromIssues converts a pass snapshot into serializable records.
func FromIssues(issues []issue.Issue) []Record {
	if len(issues) == 0 {
		return nil
	}
	out := make([]Record, len(issues))
	for i, is := range issues {
		out[i] = fromIssue(is)
	}
	return out
}

func fromIssue(is issue.Issue) Record {
	rec := Record{
		Severity:    uint8(is.Severity),
		Context:     is.Context,
		Category:    is.Category,
		Title:       is.Title,
		Description: is.Description,
		Detail:      is.Detail,
		DocLink:     is.DocLink,
		Subs:        FromIssues(is.SubIssues),
	}
	if is.Path != nil {
		rec.HasPath = true
		steps := is.Path.Steps()
		rec.Steps = make([]StepRecord, len(steps))
		for i, s := range steps {
			rec.Steps[i] = StepRecord{Request: s.Request, Kind: uint8(s.Kind), Location: s.Location}
		}
	}
	return rec
}

// Key returns the dedup key of the recorded issue.
func (r Record) Key() issue.Key {
	return issue.Key{Category: r.Category, Context: r.Context, Title: r.Title}
}

// Diff compares two snapshots by dedup key. Added holds keys present only
// in the new snapshot, Removed keys present only in the old one, both in
// the order of their snapshot.
type Diff struct {
	Added   []issue.Key
	Removed []issue.Key
}

// Compare diffs a saved baseline against a fresh pass.
func Compare(baseline, current []Record) Diff {
	old := make(map[issue.Key]bool, len(baseline))
	for _, r := range baseline {
		old[r.Key()] = true
	}
	cur := make(map[issue.Key]bool, len(current))
	for _, r := range current {
		cur[r.Key()] = true
	}

	var d Diff
	for _, r := range current {
		if !old[r.Key()] {
			d.Added = append(d.Added, r.Key())
		}
	}
	for _, r := range baseline {
		if !cur[r.Key()] {
			d.Removed = append(d.Removed, r.Key())
		}
	}
	return d
}

// Empty reports whether the diff found no changes.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}
