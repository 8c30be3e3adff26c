package issue

import (
	"sync"
	"testing"
)

func TestTreeInsertIdempotent(t *testing.T) {
	tree := NewTree(10)
	is := makeIssue(SevError, "same")

	tree.Insert(is)
	tree.Insert(is)

	if tree.Len() != 1 {
		t.Fatalf("len = %d, want 1 after duplicate insert", tree.Len())
	}
	counts := tree.CountBySeverity()
	if counts[SevError] != 1 {
		t.Fatalf("count[error] = %d, want 1", counts[SevError])
	}
}

func TestTreeInsertionOrder(t *testing.T) {
	tree := NewTree(10)
	tree.Insert(makeIssue(SevNote, "first"))
	tree.Insert(makeIssue(SevError, "second"))
	tree.Insert(makeIssue(SevWarning, "third"))
	tree.Insert(makeIssue(SevBug, "first")) // merges into slot 0

	items := tree.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	for i, want := range []string{"first", "second", "third"} {
		if items[i].Title != want {
			t.Fatalf("items[%d] = %q, want %q", i, items[i].Title, want)
		}
	}
	if items[0].Severity != SevBug {
		t.Fatalf("merge did not take max severity: %s", items[0].Severity)
	}
}

func TestTreeForEachSeverityFilter(t *testing.T) {
	tree := NewTree(10)
	tree.Insert(makeIssue(SevNote, "a"))
	tree.Insert(makeIssue(SevError, "b"))
	tree.Insert(makeIssue(SevWarning, "c"))
	tree.Insert(makeIssue(SevFatal, "d"))

	var got []string
	tree.ForEach(SevWarning, func(is Issue) bool {
		got = append(got, is.Title)
		return true
	})

	want := []string{"b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTreeForEachEarlyStop(t *testing.T) {
	tree := NewTree(10)
	tree.Insert(makeIssue(SevError, "a"))
	tree.Insert(makeIssue(SevError, "b"))

	visits := 0
	tree.ForEach(SevSuggestion, func(Issue) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Fatalf("visits = %d, want 1", visits)
	}
}

func TestTreeCap(t *testing.T) {
	tree := NewTree(2)
	tree.Insert(makeIssue(SevError, "a"))
	tree.Insert(makeIssue(SevError, "b"))
	if ok := tree.Insert(makeIssue(SevError, "c")); ok {
		t.Fatalf("insert over cap should report false")
	}
	if tree.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", tree.Dropped())
	}
	// merges into existing keys still succeed at the cap
	if ok := tree.Insert(makeIssue(SevFatal, "a")); !ok {
		t.Fatalf("merge at cap should succeed")
	}
}

func TestTreeClear(t *testing.T) {
	tree := NewTree(10)
	tree.Insert(makeIssue(SevError, "a"))
	tree.Clear()
	if tree.Len() != 0 {
		t.Fatalf("len = %d after clear", tree.Len())
	}
	tree.Insert(makeIssue(SevError, "a"))
	if tree.Len() != 1 {
		t.Fatalf("tree unusable after clear")
	}
}

func TestTreeHasErrors(t *testing.T) {
	tree := NewTree(10)
	tree.Insert(makeIssue(SevWarning, "w"))
	if tree.HasErrors() {
		t.Fatalf("warning alone should not count as error")
	}
	tree.Insert(makeIssue(SevError, "e"))
	if !tree.HasErrors() {
		t.Fatalf("expected HasErrors after error insert")
	}
}

func TestTreeConcurrentSameKeyMerge(t *testing.T) {
	tree := NewTree(100)

	var wg sync.WaitGroup
	for _, title := range []string{"sub-a", "sub-b"} {
		sub := makeIssue(SevError, title)
		wg.Add(1)
		go func(sub Issue) {
			defer wg.Done()
			tree.Insert(makeIssue(SevError, "same").WithSub(sub))
		}(sub)
	}
	wg.Wait()

	items := tree.Items()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1 merged entry", len(items))
	}
	if len(items[0].SubIssues) != 2 {
		t.Fatalf("sub issues = %d, want union of 2", len(items[0].SubIssues))
	}
	if total := tree.CountBySeverity()[SevError]; total != 1 {
		t.Fatalf("count = %d, want 1", total)
	}
}
