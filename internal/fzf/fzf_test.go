package fzf

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q) returned %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) returned %v", path, err)
	}
}

func TestCollectListsDirectoriesNaturally(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mustMkdirAll(t, filepath.Join(root, "src", "v10"))
	mustMkdirAll(t, filepath.Join(root, "src", "v2"))
	mustMkdirAll(t, filepath.Join(root, ".git", "objects"))
	mustMkdirAll(t, filepath.Join(root, "docs"))
	mustWriteFile(t, filepath.Join(root, "README.md"), "x")

	f := NewFuzzyFinder(root, "")
	got, err := f.Collect()
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	want := []string{"docs", "src", "src/v2", "src/v10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Collect = %q, want %q", got, want)
	}

	f.ShowHidden = true
	got, err = f.Collect()
	if err != nil {
		t.Fatalf("Collect returned %v", err)
	}
	if len(got) != 6 || got[0] != ".git" {
		t.Fatalf("expected hidden directories, got %q", got)
	}
}

func TestListingAndResolve(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mustMkdirAll(t, filepath.Join(root, "pkg", "inner"))
	mustWriteFile(t, filepath.Join(root, "pkg", "a.go"), "x")
	mustWriteFile(t, filepath.Join(root, "pkg", "b.go"), "x")

	f := NewFuzzyFinder(root, "")
	if _, err := f.Collect(); err != nil {
		t.Fatalf("Collect returned %v", err)
	}

	if got := f.Resolve(0); got != filepath.Join(root, "pkg") {
		t.Fatalf("Resolve(0) = %q", got)
	}
	if got := f.Listing(0, 2); got != "inner/\na.go" {
		t.Fatalf("Listing = %q", got)
	}
	if got := f.Listing(1, 10); got != "(empty)" {
		t.Fatalf("Listing(empty) = %q", got)
	}
}
