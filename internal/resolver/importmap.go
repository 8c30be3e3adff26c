package resolver

import (
	"fmt"
	"strings"
)

// MapOutcome is the result of consulting the import map for a request.
type MapOutcome uint8

const (
	MapNoEntry MapOutcome = iota
	MapRewritten
	MapExcluded
)

// Rule rewrites requests matching a prefix. An empty To excludes the
// request entirely (the bundler treats it as external).
type Rule struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// ImportMap is an ordered list of prefix rules consulted before the
// filesystem. First match wins.
type ImportMap struct {
	rules []Rule
}

// NewImportMap builds a map from ordered rules. Rules with an empty From
// are dropped.
func NewImportMap(rules []Rule) *ImportMap {
	kept := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.From != "" {
			kept = append(kept, r)
		}
	}
	return &ImportMap{rules: kept}
}

// Lookup consults the map. For MapRewritten the second result is the
// rewritten request; otherwise it is empty.
func (m *ImportMap) Lookup(request string) (MapOutcome, string) {
	if m == nil {
		return MapNoEntry, ""
	}
	for _, r := range m.rules {
		if request == r.From {
			if r.To == "" {
				return MapExcluded, ""
			}
			return MapRewritten, r.To
		}
		if strings.HasSuffix(r.From, "/") && strings.HasPrefix(request, r.From) {
			if r.To == "" {
				return MapExcluded, ""
			}
			return MapRewritten, r.To + request[len(r.From):]
		}
	}
	return MapNoEntry, ""
}

// describe renders the lookup outcome for the issue detail line.
func describeOutcome(outcome MapOutcome, rewritten string) string {
	switch outcome {
	case MapRewritten:
		return fmt.Sprintf("rewritten to %q", rewritten)
	case MapExcluded:
		return "excluded by import map"
	default:
		return "no import map entry"
	}
}
