package issue

import "testing"

func TestPathBuilderFinalize(t *testing.T) {
	b := NewPathBuilder()
	b.Append(Step{Request: "./a", Kind: RequestCommonJS, Location: "/p/a.js"})
	b.Append(Step{Request: "./a", Kind: RequestCommonJS, Location: "/p/a/index.js"})

	p := b.Finalize()
	if p.Len() != 2 {
		t.Fatalf("len = %d, want 2", p.Len())
	}
	steps := p.Steps()
	if steps[0].Location != "/p/a.js" || steps[1].Location != "/p/a/index.js" {
		t.Fatalf("steps out of order: %+v", steps)
	}
}

func TestPathBuilderAppendAfterFinalizePanics(t *testing.T) {
	b := NewPathBuilder()
	b.Finalize()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic appending to finalized builder")
		}
	}()
	b.Append(Step{Request: "./x"})
}

func TestPathThreeStates(t *testing.T) {
	// absent: resolver never instrumented the attempt
	absent := New(SevError, "/f.js", "resolve", "t", "d")
	if absent.Path != nil {
		t.Fatalf("expected nil path")
	}

	// attempted but no steps recorded
	empty := absent.WithPath(EmptyPath())
	if empty.Path == nil {
		t.Fatalf("expected non-nil empty path")
	}
	if empty.Path.Len() != 0 {
		t.Fatalf("expected zero steps, got %d", empty.Path.Len())
	}

	// populated
	populated := absent.WithPath(NewPathBuilder().Append(Step{Request: "./x"}).Finalize())
	if populated.Path.Len() != 1 {
		t.Fatalf("expected one step, got %d", populated.Path.Len())
	}
}

func TestFinalizeCopiesSteps(t *testing.T) {
	b := NewPathBuilder()
	b.Append(Step{Request: "./a", Location: "one"})
	p := b.Finalize()

	// mutating the builder's backing array must not leak into the path
	b.steps[0].Location = "tampered"
	if p.Steps()[0].Location != "one" {
		t.Fatalf("finalized path shares builder storage")
	}
}

func TestRequestKindString(t *testing.T) {
	cases := map[RequestKind]string{
		RequestCommonJS:  "commonjs",
		RequestESM:       "esm",
		RequestCSSImport: "css",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("kind %d = %q, want %q", kind, got, want)
		}
	}
}
