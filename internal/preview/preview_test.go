package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/fx/internal/catalog"
)

func mustWriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile(%q) returned %v", path, err)
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q) returned %v", path, err)
	}
}

func TestClassifyPriority(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustMkdirAll(t, filepath.Join(dir, "x.png"))
	mustWriteFile(t, filepath.Join(dir, "photo.jpg"), []byte("not really a jpeg"))
	mustWriteFile(t, filepath.Join(dir, "main.go"), []byte("package main\n\tfunc main() {}\n"))
	mustWriteFile(t, filepath.Join(dir, "blob.bin"), []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0, 0, 0, 0, 0})
	if err := os.Symlink(filepath.Join(dir, "nowhere"), filepath.Join(dir, "dangling")); err != nil {
		t.Fatalf("Symlink returned %v", err)
	}

	c := NewClassifier(nil)
	tests := []struct {
		name string
		item catalog.Item
		want catalog.PreviewKind
	}{
		{"image-named directory", catalog.Stat(filepath.Join(dir, "x.png")), catalog.PreviewDirectory},
		{"image extension", catalog.Stat(filepath.Join(dir, "photo.jpg")), catalog.PreviewImage},
		{"source file", catalog.Stat(filepath.Join(dir, "main.go")), catalog.PreviewText},
		{"elf header", catalog.Stat(filepath.Join(dir, "blob.bin")), catalog.PreviewBinary},
		{"broken symlink", catalog.Stat(filepath.Join(dir, "dangling")), catalog.PreviewNotReadable},
	}
	for _, tt := range tests {
		item := tt.item
		if got := c.Classify(&item); got != tt.want {
			t.Fatalf("%s: Classify = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassifyTooBigWinsOverDirectory(t *testing.T) {
	t.Parallel()

	item := catalog.Item{Kind: catalog.Dir, Path: t.TempDir(), Size: 1_000_000_001}
	if got := NewClassifier(nil).Classify(&item); got != catalog.PreviewTooBig {
		t.Fatalf("Classify = %v, want TooBig", got)
	}
}

func TestClassifyTextExpandsTabs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	mustWriteFile(t, path, []byte("a\tb"))

	item := catalog.Stat(path)
	NewClassifier(nil).Classify(&item)
	if item.Preview.Text != "a    b" {
		t.Fatalf("Text = %q, want tabs expanded to four spaces", item.Preview.Text)
	}
}

func TestClassifyUsesInjectedSniffer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plain.txt")
	mustWriteFile(t, path, []byte("hello"))

	item := catalog.Stat(path)
	c := NewClassifier(SnifferFunc(func([]byte) bool { return false }))
	if got := c.Classify(&item); got != catalog.PreviewBinary {
		t.Fatalf("Classify = %v, want Binary from injected sniffer", got)
	}
}

func TestClassifyDirectoryListsChildren(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, ".hidden"), nil)
	mustWriteFile(t, filepath.Join(dir, "b"), nil)
	mustMkdirAll(t, filepath.Join(dir, "a", "nested"))

	c := NewClassifier(nil)
	c.SetShowHidden(false)
	item := catalog.Stat(dir)
	c.Classify(&item)

	got := catalog.Names(item.Preview.Entries)
	if strings.Join(got, ",") != "a/,b" {
		t.Fatalf("directory entries = %v, want [a/ b]", got)
	}
}

func TestClassifyKeepsScroll(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	mustWriteFile(t, path, []byte("x"))
	item := catalog.Stat(path)
	item.Preview = &catalog.Preview{Scroll: 3}

	NewClassifier(nil).Classify(&item)
	if item.Preview.Scroll != 3 {
		t.Fatalf("Scroll = %d, want 3", item.Preview.Scroll)
	}
}

func TestRenderPlainTextScrollsAndClips(t *testing.T) {
	t.Parallel()

	item := catalog.Item{
		Name: "f.txt",
		Path: "/virtual/f.txt",
		Ext:  "txt",
		Preview: &catalog.Preview{
			Kind:   catalog.PreviewText,
			Text:   "one\ntwo\nthree\nfour",
			Scroll: 1,
		},
	}

	r := NewRenderer(RenderOptions{})
	got := r.Render(item, 80, 2)
	if got != "two\nthree" {
		t.Fatalf("Render = %q, want %q", got, "two\nthree")
	}

	item.Preview.Scroll = 99
	if got := r.Render(item, 80, 5); got != "four" {
		t.Fatalf("Render past end = %q, want last line", got)
	}
}

func TestRenderDirectoryMarksDirs(t *testing.T) {
	t.Parallel()

	item := catalog.Item{
		Kind: catalog.Dir,
		Preview: &catalog.Preview{
			Kind: catalog.PreviewDirectory,
			Entries: []catalog.Item{
				{Name: "src", Kind: catalog.Dir},
				{Name: "go.mod", Kind: catalog.File},
			},
		},
	}

	got := NewRenderer(RenderOptions{}).Render(item, 40, 10)
	if !strings.Contains(got, "src/") || !strings.Contains(got, "go.mod") {
		t.Fatalf("Render = %q, want both entries", got)
	}
}

func TestLineCount(t *testing.T) {
	t.Parallel()

	if got := LineCount(&catalog.Preview{Kind: catalog.PreviewText, Text: "a\nb\nc"}); got != 3 {
		t.Fatalf("LineCount(text) = %d, want 3", got)
	}
	if got := LineCount(&catalog.Preview{Kind: catalog.PreviewDirectory, Entries: make([]catalog.Item, 4)}); got != 4 {
		t.Fatalf("LineCount(dir) = %d, want 4", got)
	}
	if got := LineCount(nil); got != 0 {
		t.Fatalf("LineCount(nil) = %d, want 0", got)
	}
}

func TestMimeSniffer(t *testing.T) {
	t.Parallel()

	var s MimeSniffer
	if !s.IsText([]byte(`{"json": true}`)) {
		t.Fatalf("expected JSON to sniff as text")
	}
	if s.IsText([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}) {
		t.Fatalf("expected PNG header to sniff as binary")
	}
}
