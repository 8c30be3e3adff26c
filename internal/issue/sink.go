package issue

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// PassToken ties reports to the pass they belong to. Workers receive the
// token from BeginPass and pass it with every Report; reports carrying a
// superseded token are dropped so an aborted pass cannot leak issues into
// its successor.
type PassToken struct {
	gen uint64
}

// Sink is the entry point producers push issues into. A single
// coordinator brackets each resolution pass with BeginPass/EndPass; any
// number of workers may call Report concurrently in between.
type Sink struct {
	mu         sync.Mutex
	tree       *Tree
	gen        uint64
	collecting bool

	staleDropped atomic.Uint64
	promoted     atomic.Uint64
}

// NewSink wraps the given tree. The tree is cleared on every BeginPass.
func NewSink(tree *Tree) *Sink {
	return &Sink{tree: tree}
}

// BeginPass starts a new pass: the previous pass (finished or not) is
// superseded, the tree is cleared and a fresh token is issued.
func (s *Sink) BeginPass() PassToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.collecting = true
	s.tree.Clear()
	s.staleDropped.Store(0)
	return PassToken{gen: s.gen}
}

// Report inserts an issue into the current pass. It never fails: rollup
// violations are repaired by promotion plus a secondary internal
// consistency note, and reports from superseded passes are silently
// dropped. Reporting on a pass that was ended (not superseded) is a
// coordination bug and panics.
func (s *Sink) Report(tok PassToken, is Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.gen != s.gen {
		s.staleDropped.Add(1)
		return
	}
	if !s.collecting {
		panic(fmt.Errorf("issue: report on pass %d outside begin/end bracket", tok.gen))
	}

	normalized, didPromote := is.Normalize()
	s.tree.Insert(normalized)
	if didPromote {
		s.promoted.Add(1)
		s.tree.Insert(promotionNote(is, normalized.Severity))
	}
}

// promotionNote records that a reported issue violated the severity
// rollup invariant and was repaired.
func promotionNote(original Issue, promoted Severity) Issue {
	return Issue{
		Severity: SevNote,
		Context:  original.Context,
		Category: "internal",
		Title:    "Issue severity promoted to satisfy sub-issue rollup",
		Description: fmt.Sprintf("severity of %q raised from %s to %s to cover its sub-issues",
			original.Title, original.Severity, promoted),
	}
}

// EndPass finishes the pass identified by tok and returns the ordered
// snapshot of everything it collected. Ending a superseded pass returns
// nil; its issues are gone.
func (s *Sink) EndPass(tok PassToken) []Issue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok.gen != s.gen {
		return nil
	}
	s.collecting = false
	return s.tree.Items()
}

// Tree exposes the underlying tree for consumers that want filtered
// traversal or severity counts mid-pass.
func (s *Sink) Tree() *Tree {
	return s.tree
}

// StaleDropped returns how many reports from superseded passes were
// dropped since the current pass began.
func (s *Sink) StaleDropped() uint64 {
	return s.staleDropped.Load()
}

// Promoted returns how many reports needed severity promotion since the
// sink was created.
func (s *Sink) Promoted() uint64 {
	return s.promoted.Load()
}
