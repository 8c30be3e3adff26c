package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"wayfind/internal/issue"
	"wayfind/internal/resolver"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCheckDirSingleFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "input", "index.js"),
		"const a = require(\"./dep\");\nconst b = require(\"./not-existing-file\");\n")
	writeFile(t, filepath.Join(dir, "input", "dep.js"), "")

	result, err := CheckDir(context.Background(), dir, Options{TracePaths: true})
	if err != nil {
		t.Fatal(err)
	}

	if result.Files != 2 || result.Requests != 2 || result.Failed != 1 {
		t.Fatalf("files=%d requests=%d failed=%d", result.Files, result.Requests, result.Failed)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(result.Issues))
	}

	is := result.Issues[0]
	from := filepath.Join(dir, "input", "index.js")
	wantKey := issue.Key{Category: "resolve", Context: from, Title: "Error resolving commonjs request"}
	if is.Key() != wantKey {
		t.Fatalf("key = %+v, want %+v", is.Key(), wantKey)
	}
	if is.Source.IsZero() {
		t.Fatalf("scanned request should carry a source span")
	}
	if is.Path == nil {
		t.Fatalf("traced pass should attach processing paths")
	}
	if !result.HasErrors() {
		t.Fatalf("HasErrors should be true")
	}
}

func TestCheckDirDeduplicatesRepeatedRequest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.js"),
		"require(\"./missing\");\nrequire(\"./missing\");\n")

	result, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Requests != 2 || result.Failed != 2 {
		t.Fatalf("requests=%d failed=%d", result.Requests, result.Failed)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("identical failures must merge into one issue, got %d", len(result.Issues))
	}
}

func TestCheckDirDistinctContextsStaySeparate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "require(\"./missing\");\n")
	writeFile(t, filepath.Join(dir, "b.js"), "require(\"./missing\");\n")

	result, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("issues = %d, want one per importing file", len(result.Issues))
	}
	// insertion order follows the sorted file list
	if result.Issues[0].Context >= result.Issues[1].Context {
		t.Fatalf("issues out of order: %q then %q", result.Issues[0].Context, result.Issues[1].Context)
	}
}

func TestCheckDirImportMap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.js"), "import util from \"lib/util\";\n")
	writeFile(t, filepath.Join(dir, "src", "lib", "util.js"), "")

	result, err := CheckDir(context.Background(), dir, Options{
		ImportMap: resolver.NewImportMap([]resolver.Rule{{From: "lib/", To: "./src/lib/"}}),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("import-map rewrite should resolve: %+v", result.Issues)
	}
}

func TestCheckDirSkipsNodeModules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.js"), "")
	writeFile(t, filepath.Join(dir, "node_modules", "dep", "index.js"), "require(\"./broken\");\n")
	writeFile(t, filepath.Join(dir, ".hidden", "x.js"), "require(\"./broken\");\n")

	result, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Files != 1 || len(result.Issues) != 0 {
		t.Fatalf("vendored/hidden files were scanned: files=%d issues=%d", result.Files, len(result.Issues))
	}
}

func TestCheckDirCSS(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.css"), "@import \"./theme.css\";\n@import \"./missing.css\";\n")
	writeFile(t, filepath.Join(dir, "theme.css"), "")

	result, err := CheckDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(result.Issues))
	}
	if result.Issues[0].Title != "Error resolving css request" {
		t.Fatalf("title = %q", result.Issues[0].Title)
	}
}

func TestCheckDirMaxIssuesCap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "require(\"./m1\");\n")
	writeFile(t, filepath.Join(dir, "b.js"), "require(\"./m2\");\n")
	writeFile(t, filepath.Join(dir, "c.js"), "require(\"./m3\");\n")

	result, err := CheckDir(context.Background(), dir, Options{MaxIssues: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Issues) != 2 {
		t.Fatalf("issues = %d, want capped 2", len(result.Issues))
	}
	if result.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", result.Dropped)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	result, err := CheckDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Files != 0 || len(result.Issues) != 0 || result.HasErrors() {
		t.Fatalf("unexpected result for empty dir: %+v", result)
	}
}
