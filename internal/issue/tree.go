package issue

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Tree owns all issues collected during one resolution pass. Entries are
// keyed by their dedup key: inserting a key twice merges instead of
// duplicating, while distinct keys keep insertion order. All methods are
// safe for concurrent use; insert-or-merge is atomic per key.
type Tree struct {
	mu      sync.Mutex
	items   []Issue
	index   map[Key]int
	max     uint16
	dropped uint32
}

// NewTree creates a tree that holds at most max distinct issues. Inserts
// beyond the cap for new keys are counted as dropped; merges into existing
// entries always succeed.
func NewTree(max int) *Tree {
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		panic(fmt.Errorf("tree capacity overflow: %w", err))
	}
	return &Tree{
		items: make([]Issue, 0, max),
		index: make(map[Key]int, max),
		max:   capped,
	}
}

// Insert adds an issue, merging with an existing entry when the dedup key
// matches. Returns false when a new entry was dropped due to the cap.
func (t *Tree) Insert(is Issue) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(is)
}

func (t *Tree) insertLocked(is Issue) bool {
	key := is.Key()
	if at, ok := t.index[key]; ok {
		t.items[at] = t.items[at].Merge(is)
		return true
	}
	if len(t.items) >= int(t.max) {
		t.dropped++
		return false
	}
	t.index[key] = len(t.items)
	t.items = append(t.items, is)
	return true
}

func (t *Tree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

// Dropped returns how many new entries were rejected by the cap.
func (t *Tree) Dropped() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.dropped)
}

// Items returns a snapshot of all issues in insertion order.
func (t *Tree) Items() []Issue {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Issue, len(t.items))
	copy(out, t.items)
	return out
}

// ForEach walks issues in insertion order, visiting only those at or above
// min. The walk observes the tree as of the call; fn returning false stops
// early. fn must not call back into the tree.
func (t *Tree) ForEach(min Severity, fn func(Issue) bool) {
	t.mu.Lock()
	snapshot := make([]Issue, len(t.items))
	copy(snapshot, t.items)
	t.mu.Unlock()

	for _, is := range snapshot {
		if is.Severity < min {
			continue
		}
		if !fn(is) {
			return
		}
	}
}

// HasErrors reports whether any issue is at Error urgency or above.
func (t *Tree) HasErrors() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.items {
		if t.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// CountBySeverity tallies top-level issues per severity for summary
// reporting. Sub-issues are not counted separately.
func (t *Tree) CountBySeverity() map[Severity]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[Severity]int, 8)
	for i := range t.items {
		out[t.items[i].Severity]++
	}
	return out
}

// Clear drops all issues. Called at the boundary between passes.
func (t *Tree) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = t.items[:0]
	t.index = make(map[Key]int, t.max)
	t.dropped = 0
}
