package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaselineKeyNormalizesDir(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "app")
	if err := os.Mkdir(abs, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(root)

	relKey, err := baselineKey("app")
	if err != nil {
		t.Fatal(err)
	}
	absKey, err := baselineKey(abs)
	if err != nil {
		t.Fatal(err)
	}
	if relKey != absKey {
		t.Fatalf("relative and absolute spellings disagree: %q vs %q", relKey, absKey)
	}

	dotKey, err := baselineKey("./app")
	if err != nil {
		t.Fatal(err)
	}
	if dotKey != absKey {
		t.Fatalf("./ spelling got its own key: %q vs %q", dotKey, absKey)
	}
}
