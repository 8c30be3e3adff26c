package snapshot

import (
	"testing"

	"wayfind/internal/issue"
)

func sampleIssues() []issue.Issue {
	trace := issue.NewPathBuilder().
		Append(issue.Step{Request: "./m", Kind: issue.RequestCommonJS, Location: "/p/m.js"}).
		Finalize()
	return []issue.Issue{
		issue.New(issue.SevError, "/p/index.js", "resolve", "Error resolving commonjs request",
			`unable to resolve relative "./m"`).
			WithDetail("four\nlines\nof\ndetail\n").
			WithPath(trace),
		issue.New(issue.SevWarning, "/p/other.js", "resolve", "w", "d").
			WithPath(issue.EmptyPath()),
		issue.New(issue.SevNote, "/p/third.js", "internal", "n", "d"),
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	cache, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key := Key("/p")
	records := FromIssues(sampleIssues())
	if err := cache.Save(key, &Payload{Dir: "/p", Issues: records}); err != nil {
		t.Fatal(err)
	}

	loaded, ok, err := cache.Load(key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("saved baseline not found")
	}
	if loaded.Dir != "/p" || len(loaded.Issues) != 3 {
		t.Fatalf("payload = %+v", loaded)
	}

	first := loaded.Issues[0]
	if first.Detail != "four\nlines\nof\ndetail\n" {
		t.Fatalf("detail lost newlines: %q", first.Detail)
	}
	if !first.HasPath || len(first.Steps) != 1 {
		t.Fatalf("processing path not preserved: %+v", first)
	}

	// nil vs empty path survives serialization
	if second := loaded.Issues[1]; !second.HasPath || len(second.Steps) != 0 {
		t.Fatalf("empty path collapsed: %+v", second)
	}
	if third := loaded.Issues[2]; third.HasPath {
		t.Fatalf("absent path gained steps: %+v", third)
	}
}

func TestLoadMissing(t *testing.T) {
	cache, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := cache.Load(Key("/nowhere"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("missing baseline reported as found")
	}
}

func TestCompare(t *testing.T) {
	baseline := FromIssues(sampleIssues())
	current := FromIssues(sampleIssues()[1:]) // first issue fixed
	current = append(current, FromIssues([]issue.Issue{
		issue.New(issue.SevError, "/p/new.js", "resolve", "fresh", "d"),
	})...)

	diff := Compare(baseline, current)
	if len(diff.Removed) != 1 || diff.Removed[0].Context != "/p/index.js" {
		t.Fatalf("removed = %+v", diff.Removed)
	}
	if len(diff.Added) != 1 || diff.Added[0].Context != "/p/new.js" {
		t.Fatalf("added = %+v", diff.Added)
	}
	if diff.Empty() {
		t.Fatalf("diff with changes reported empty")
	}

	if d := Compare(baseline, baseline); !d.Empty() {
		t.Fatalf("identical snapshots should diff empty: %+v", d)
	}
}

func TestKeyStable(t *testing.T) {
	if Key("/a") != Key("/a") {
		t.Fatalf("key not deterministic")
	}
	if Key("/a") == Key("/b") {
		t.Fatalf("distinct dirs share a key")
	}
}
