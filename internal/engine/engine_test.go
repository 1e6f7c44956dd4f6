package engine

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/oplog"
	"github.com/Paintersrp/fx/internal/trash"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%q) returned %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%q) returned %v", path, err)
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q) returned %v", path, err)
	}
}

func mustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q) returned %v", path, err)
	}
	return string(data)
}

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	vault, err := trash.New(filepath.Join(t.TempDir(), "trash"), trash.Options{
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return time.Unix(1700000000, 0) },
	})
	if err != nil {
		t.Fatalf("trash.New returned %v", err)
	}
	e, err := New(Options{
		Dir:        dir,
		ShowHidden: true,
		Rows:       10,
		Vault:      vault,
		Logger:     zerolog.Nop(),
		Clipboard:  func(string) error { return nil },
	})
	if err != nil {
		t.Fatalf("New returned %v", err)
	}
	return e
}

func names(e *Engine) []string {
	return catalog.Names(e.Items())
}

func focus(t *testing.T, e *Engine, name string) {
	t.Helper()
	idx := catalog.IndexOf(e.Items(), name)
	if idx < 0 {
		t.Fatalf("%s not in catalog %v", name, names(e))
	}
	for e.Cursor().Index < idx {
		e.Down()
	}
	for e.Cursor().Index > idx {
		e.Up()
	}
}

func TestDeleteUndoEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "b.txt"), "bee")
	mustMkdirAll(t, filepath.Join(dir, "A"))

	e := newEngine(t, dir)
	if got, want := names(e), []string{"A/", "b.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}
	before := names(e)

	focus(t, e, "b.txt")
	n, err := e.Delete()
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v", n, err)
	}
	if got, want := names(e), []string{"A/"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after delete = %v, want %v", got, want)
	}
	trashed := filepath.Join(e.Vault().Dir(), "1700000000_b.txt")
	if got := mustReadFile(t, trashed); got != "bee" {
		t.Fatalf("trash content = %q, want bee", got)
	}

	op, err := e.Undo()
	if err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if _, ok := op.(oplog.Delete); !ok {
		t.Fatalf("Undo returned %T, want oplog.Delete", op)
	}
	if got := names(e); !reflect.DeepEqual(got, before) {
		t.Fatalf("catalog after undo = %v, want %v", got, before)
	}
	if got := mustReadFile(t, filepath.Join(dir, "b.txt")); got != "bee" {
		t.Fatalf("restored content = %q, want bee", got)
	}

	if _, err := e.Redo(); err != nil {
		t.Fatalf("Redo returned %v", err)
	}
	if got, want := names(e), []string{"A/"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after redo = %v, want %v", got, want)
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("second Undo returned %v", err)
	}
	if got := names(e); !reflect.DeepEqual(got, before) {
		t.Fatalf("catalog after second undo = %v, want %v", got, before)
	}
}

func TestUndoDeleteUsesOriginalNameAfterVaultCollision(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "b.txt")
	mustWriteFile(t, path, "first")

	e := newEngine(t, dir)
	if _, err := e.Delete(); err != nil {
		t.Fatalf("first Delete returned %v", err)
	}

	mustWriteFile(t, path, "second")
	if err := e.Refresh(); err != nil {
		t.Fatalf("Refresh returned %v", err)
	}
	if _, err := e.Delete(); err != nil {
		t.Fatalf("second Delete returned %v", err)
	}
	collided := filepath.Join(e.Vault().Dir(), "1700000000_b_copied.txt")
	if got := mustReadFile(t, collided); got != "second" {
		t.Fatalf("vault entry %s = %q, want second", collided, got)
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if got, want := names(e), []string{"b.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after undo = %v, want %v", got, want)
	}
	if got := mustReadFile(t, path); got != "second" {
		t.Fatalf("restored content = %q, want second", got)
	}
}

func TestDeleteDirectoryUndoRestoresSubtree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "pkg", "a.go"), "package a")
	mustWriteFile(t, filepath.Join(dir, "pkg", "sub", "b.go"), "package sub")
	mustMkdirAll(t, filepath.Join(dir, "pkg", "empty"))

	e := newEngine(t, dir)
	before, err := trash.Walk(filepath.Join(dir, "pkg"))
	if err != nil {
		t.Fatalf("Walk returned %v", err)
	}

	if _, err := e.Delete(); err != nil {
		t.Fatalf("Delete returned %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "pkg")); !os.IsNotExist(err) {
		t.Fatalf("expected pkg to be gone, stat err = %v", err)
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	after, err := trash.Walk(filepath.Join(dir, "pkg"))
	if err != nil {
		t.Fatalf("Walk returned %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("restored subtree has %d entries, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].Rel != before[i].Rel || after[i].Kind != before[i].Kind {
			t.Fatalf("entry %d = %+v, want %+v", i, after[i], before[i])
		}
	}
	if got := mustReadFile(t, filepath.Join(dir, "pkg", "sub", "b.go")); got != "package sub" {
		t.Fatalf("restored content = %q", got)
	}
}

func TestYankPutTwice(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	mustWriteFile(t, filepath.Join(src, "note.txt"), "n")

	e := newEngine(t, src)
	if n, err := e.Yank(); err != nil || n != 1 {
		t.Fatalf("Yank = %d, %v", n, err)
	}
	if _, err := e.Put(); err != nil {
		t.Fatalf("Put returned %v", err)
	}
	if _, err := e.Put(); err != nil {
		t.Fatalf("Put returned %v", err)
	}

	want := []string{"note.txt", "note_copied.txt", "note_copied_copied.txt"}
	if got := names(e); !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if got := names(e); !reflect.DeepEqual(got, want[:2]) {
		t.Fatalf("catalog after undo = %v, want %v", got, want[:2])
	}
	if _, err := e.Redo(); err != nil {
		t.Fatalf("Redo returned %v", err)
	}
	if got := names(e); !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after redo = %v, want %v", got, want)
	}
}

func TestPutAfterDeleteRestoresOriginalName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "report.pdf"), "pdf")
	mustMkdirAll(t, filepath.Join(dir, "archive"))

	e := newEngine(t, dir)
	focus(t, e, "report.pdf")
	if _, err := e.Delete(); err != nil {
		t.Fatalf("Delete returned %v", err)
	}
	if reg := e.Register(); !reg.FromTrash || len(reg.Items) != 1 {
		t.Fatalf("register = %+v, want one trash item", reg)
	}

	focus(t, e, "archive")
	if _, err := e.Enter(); err != nil {
		t.Fatalf("Enter returned %v", err)
	}
	if _, err := e.Put(); err != nil {
		t.Fatalf("Put returned %v", err)
	}
	if got, want := names(e), []string{"report.pdf"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}
}

func TestPartialBatchIsStillUndoable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "a"), "a")
	mustWriteFile(t, filepath.Join(dir, "b"), "b")
	mustWriteFile(t, filepath.Join(dir, "c"), "c")

	e := newEngine(t, dir)
	e.ToggleSelectMode()
	e.Down()
	if e.Selected() != 2 {
		t.Fatalf("Selected = %d, want 2", e.Selected())
	}

	if err := os.Remove(filepath.Join(dir, "b")); err != nil {
		t.Fatalf("Remove returned %v", err)
	}

	n, err := e.Delete()
	if fxerr.KindOf(err) != fxerr.RemoveItem {
		t.Fatalf("Delete error = %v, want RemoveItem", err)
	}
	if n != 1 {
		t.Fatalf("Delete completed %d, want 1", n)
	}
	if got, want := names(e), []string{"c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if got, want := names(e), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after undo = %v, want %v", got, want)
	}
}

func TestRenameUndoRedo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "old.txt"), "x")
	mustWriteFile(t, filepath.Join(dir, "taken.txt"), "y")

	e := newEngine(t, dir)
	focus(t, e, "old.txt")

	if err := e.Rename("taken.txt"); err == nil {
		t.Fatalf("Rename onto an existing file must fail")
	}
	if err := e.Rename("a/b"); err == nil {
		t.Fatalf("Rename with a separator must fail")
	}
	if err := e.Rename("new.txt"); err != nil {
		t.Fatalf("Rename returned %v", err)
	}
	if cur, _ := e.Current(); cur.Name != "new.txt" {
		t.Fatalf("cursor on %q, want new.txt", cur.Name)
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if got, want := names(e), []string{"old.txt", "taken.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after undo = %v, want %v", got, want)
	}
	if _, err := e.Redo(); err != nil {
		t.Fatalf("Redo returned %v", err)
	}
	if got, want := names(e), []string{"new.txt", "taken.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after redo = %v, want %v", got, want)
	}
}

func TestUndoRedoOnEmptyHistory(t *testing.T) {
	t.Parallel()

	e := newEngine(t, t.TempDir())
	if _, err := e.Undo(); !errors.Is(err, fxerr.ErrNothingToUndo) {
		t.Fatalf("Undo = %v, want ErrNothingToUndo", err)
	}
	if _, err := e.Redo(); !errors.Is(err, fxerr.ErrNothingToRedo) {
		t.Fatalf("Redo = %v, want ErrNothingToRedo", err)
	}
	if _, err := e.Current(); fxerr.KindOf(err) != fxerr.ItemNotFound {
		t.Fatalf("Current on empty dir = %v, want ItemNotFound", err)
	}
}

func TestBackFocusesDirectoryJustLeft(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d"} {
		mustMkdirAll(t, filepath.Join(root, name))
	}
	mustWriteFile(t, filepath.Join(root, "c", "x"), "")
	mustWriteFile(t, filepath.Join(root, "c", "y"), "")

	e := newEngine(t, filepath.Join(root, "c"))
	if err := e.Back(); err != nil {
		t.Fatalf("Back returned %v", err)
	}
	if cur, _ := e.Current(); cur.Name != "c" {
		t.Fatalf("cursor on %q after Back, want c", cur.Name)
	}

	if _, err := e.Enter(); err != nil {
		t.Fatalf("Enter returned %v", err)
	}
	e.Down()
	if err := e.Back(); err != nil {
		t.Fatalf("Back returned %v", err)
	}
	if _, err := e.Enter(); err != nil {
		t.Fatalf("Enter returned %v", err)
	}
	if cur, _ := e.Current(); cur.Name != "y" {
		t.Fatalf("cursor on %q after retracing, want y", cur.Name)
	}
}

func TestEnterFileReturnsPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "f.txt"), "")

	e := newEngine(t, dir)
	path, err := e.Enter()
	if err != nil {
		t.Fatalf("Enter returned %v", err)
	}
	if path != filepath.Join(dir, "f.txt") {
		t.Fatalf("Enter = %q, want file path", path)
	}
	if e.Dir() != dir {
		t.Fatalf("Dir changed to %q", e.Dir())
	}
}

func TestFailedOpenKeepsState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "a"), "")
	mustWriteFile(t, filepath.Join(dir, "b"), "")

	e := newEngine(t, dir)
	e.Down()
	if err := e.Jump(filepath.Join(dir, "missing")); fxerr.KindOf(err) != fxerr.IOKind {
		t.Fatalf("Jump error = %v, want IO", err)
	}
	if e.Dir() != dir || e.Cursor().Index != 1 || len(e.Items()) != 2 {
		t.Fatalf("state changed after failed Jump: dir=%s cursor=%+v", e.Dir(), e.Cursor())
	}
}

func TestToggleHiddenKeepsCursorName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, ".env"), "")
	mustWriteFile(t, filepath.Join(dir, "main.go"), "")
	mustWriteFile(t, filepath.Join(dir, "zz"), "")

	e := newEngine(t, dir)
	focus(t, e, "zz")
	if err := e.ToggleHidden(); err != nil {
		t.Fatalf("ToggleHidden returned %v", err)
	}
	if got, want := names(e), []string{"main.go", "zz"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}
	if cur, _ := e.Current(); cur.Name != "zz" {
		t.Fatalf("cursor on %q, want zz", cur.Name)
	}
}

func TestSearchAndCycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"alpha.go", "beta.md", "gamma.go", "delta.txt"} {
		mustWriteFile(t, filepath.Join(dir, name), "")
	}

	e := newEngine(t, dir)
	if n := e.Search(".go"); n != 2 {
		t.Fatalf("Search matched %d, want 2", n)
	}
	if cur, _ := e.Current(); cur.Name != "alpha.go" {
		t.Fatalf("cursor on %q, want alpha.go", cur.Name)
	}
	e.NextMatch()
	if cur, _ := e.Current(); cur.Name != "gamma.go" {
		t.Fatalf("cursor on %q, want gamma.go", cur.Name)
	}
	e.NextMatch()
	if cur, _ := e.Current(); cur.Name != "alpha.go" {
		t.Fatalf("NextMatch did not wrap, cursor on %q", cur.Name)
	}
	e.PrevMatch()
	if cur, _ := e.Current(); cur.Name != "gamma.go" {
		t.Fatalf("PrevMatch did not wrap, cursor on %q", cur.Name)
	}

	e.ClearSearch()
	for _, item := range e.Items() {
		if item.Matches {
			t.Fatalf("ClearSearch left %s flagged", item.Name)
		}
	}
}

func TestSearchNormalizesNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	decomposed := "cafe\u0301.txt"
	mustWriteFile(t, filepath.Join(dir, decomposed), "")
	mustWriteFile(t, filepath.Join(dir, "other"), "")

	e := newEngine(t, dir)
	if n := e.Search("caf\u00e9"); n != 1 {
		t.Fatalf("Search matched %d, want 1", n)
	}
}

func TestPreviewScrollIsBounded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "f.txt"), "1\n2\n3")

	e := newEngine(t, dir)
	item, err := e.Preview()
	if err != nil {
		t.Fatalf("Preview returned %v", err)
	}
	if item.Preview == nil || item.Preview.Kind != catalog.PreviewText {
		t.Fatalf("Preview = %+v, want text", item.Preview)
	}

	e.ScrollPreview(10)
	if item, _ := e.Preview(); item.Preview.Scroll != 2 {
		t.Fatalf("Scroll = %d, want 2", item.Preview.Scroll)
	}
	e.ScrollPreview(-10)
	if item, _ := e.Preview(); item.Preview.Scroll != 0 {
		t.Fatalf("Scroll = %d, want 0", item.Preview.Scroll)
	}
}

func TestCopyPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "f"), "")

	var copied string
	e := newEngine(t, dir)
	e.clipboard = func(s string) error {
		copied = s
		return nil
	}

	path, err := e.CopyPath()
	if err != nil {
		t.Fatalf("CopyPath returned %v", err)
	}
	if copied != filepath.Join(dir, "f") || path != copied {
		t.Fatalf("copied %q, want %q", copied, filepath.Join(dir, "f"))
	}
}

func TestMkdirAndTouch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := newEngine(t, dir)

	if err := e.Mkdir("sub"); err != nil {
		t.Fatalf("Mkdir returned %v", err)
	}
	if err := e.Touch("file"); err != nil {
		t.Fatalf("Touch returned %v", err)
	}
	if err := e.Touch("file"); err == nil {
		t.Fatalf("Touch on an existing name must fail")
	}
	if got, want := names(e), []string{"sub/", "file"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}
	if cur, _ := e.Current(); cur.Name != "file" {
		t.Fatalf("cursor on %q, want file", cur.Name)
	}
	if e.CanUndo() {
		t.Fatalf("Mkdir and Touch must not be recorded")
	}
}

func TestEmptyTrashDropsHistoryThatNeedsTheTrash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "x.txt"), "")
	mustWriteFile(t, filepath.Join(dir, "z.txt"), "")

	e := newEngine(t, dir)
	focus(t, e, "x.txt")
	if err := e.Rename("y.txt"); err != nil {
		t.Fatalf("Rename returned %v", err)
	}
	focus(t, e, "z.txt")
	if _, err := e.Delete(); err != nil {
		t.Fatalf("Delete returned %v", err)
	}

	if n, err := e.EmptyTrash(); err != nil || n != 1 {
		t.Fatalf("EmptyTrash = %d, %v", n, err)
	}
	if total, undone := e.HistoryLen(); total != 1 || undone != 0 {
		t.Fatalf("history = %d/%d, want only the rename", total, undone)
	}
	if len(e.Register().Items) != 0 {
		t.Fatalf("register still holds %d emptied items", len(e.Register().Items))
	}
	if n, err := e.Put(); err != nil || n != 0 {
		t.Fatalf("Put after empty = %d, %v", n, err)
	}

	op, err := e.Undo()
	if err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if _, ok := op.(oplog.Rename); !ok {
		t.Fatalf("Undo returned %T, want oplog.Rename", op)
	}
	if got, want := names(e), []string{"x.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog after undo = %v, want %v", got, want)
	}
	if _, err := e.Undo(); !errors.Is(err, fxerr.ErrNothingToUndo) {
		t.Fatalf("second Undo = %v, want ErrNothingToUndo", err)
	}
}

func TestEmptyTrash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "a"), "")

	e := newEngine(t, dir)
	if _, err := e.Delete(); err != nil {
		t.Fatalf("Delete returned %v", err)
	}
	if err := e.TrashDir(); err != nil {
		t.Fatalf("TrashDir returned %v", err)
	}
	if len(e.Items()) != 1 {
		t.Fatalf("trash listing = %v, want one entry", names(e))
	}

	n, err := e.EmptyTrash()
	if err != nil || n != 1 {
		t.Fatalf("EmptyTrash = %d, %v", n, err)
	}
	if len(e.Items()) != 0 {
		t.Fatalf("trash listing after empty = %v", names(e))
	}
}
