package oplog

import (
	"errors"
	"testing"

	"github.com/Paintersrp/fx/internal/fxerr"
)

func TestBranchDiscard(t *testing.T) {
	t.Parallel()

	log := New()
	log.Push(Rename{From: "a", To: "A"})
	log.Push(Rename{From: "b", To: "B"})

	op, err := log.Undo()
	if err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if got := op.(Rename); got.From != "b" {
		t.Fatalf("Undo returned %+v, want rename of b", got)
	}

	log.Push(Rename{From: "c", To: "C"})

	if _, err := log.Redo(); !errors.Is(err, fxerr.ErrNothingToRedo) {
		t.Fatalf("Redo after branch = %v, want ErrNothingToRedo", err)
	}
	if log.Len() != 2 {
		t.Fatalf("Len = %d, want 2", log.Len())
	}

	op, _ = log.Undo()
	if got := op.(Rename); got.From != "c" {
		t.Fatalf("first undo after branch = %+v, want c", got)
	}
	op, _ = log.Undo()
	if got := op.(Rename); got.From != "a" {
		t.Fatalf("second undo after branch = %+v, want a", got)
	}
}

func TestUndoRedoWalk(t *testing.T) {
	t.Parallel()

	log := New()
	if _, err := log.Undo(); !errors.Is(err, fxerr.ErrNothingToUndo) {
		t.Fatalf("Undo on empty log = %v, want ErrNothingToUndo", err)
	}
	if _, err := log.Redo(); !errors.Is(err, fxerr.ErrNothingToRedo) {
		t.Fatalf("Redo on empty log = %v, want ErrNothingToRedo", err)
	}

	log.Push(Rename{From: "1"})
	log.Push(Rename{From: "2"})
	log.Push(Rename{From: "3"})

	for _, want := range []string{"3", "2", "1"} {
		op, err := log.Undo()
		if err != nil {
			t.Fatalf("Undo returned %v", err)
		}
		if got := op.(Rename).From; got != want {
			t.Fatalf("Undo returned %s, want %s", got, want)
		}
	}
	if _, err := log.Undo(); !errors.Is(err, fxerr.ErrNothingToUndo) {
		t.Fatalf("Undo past start = %v, want ErrNothingToUndo", err)
	}

	for _, want := range []string{"1", "2", "3"} {
		op, err := log.Redo()
		if err != nil {
			t.Fatalf("Redo returned %v", err)
		}
		if got := op.(Rename).From; got != want {
			t.Fatalf("Redo returned %s, want %s", got, want)
		}
	}
	if log.Pos() != 0 || log.CanRedo() {
		t.Fatalf("expected to be back at head, pos = %d", log.Pos())
	}
}

func TestAmendReplacesTouchedOperation(t *testing.T) {
	t.Parallel()

	log := New()
	log.Push(Delete{TrashPaths: []string{"/trash/1_a"}, SourceDir: "/src"})
	log.Push(Rename{From: "x", To: "y"})

	log.Amend(Rename{From: "ignored"})
	if op, _ := log.Undo(); op.(Rename).From != "x" {
		t.Fatalf("Amend before any undo must be a no-op")
	}

	op, _ := log.Undo()
	del := op.(Delete)
	del.Items = nil
	del.TrashPaths = []string{"/trash/2_a"}
	log.Amend(del)

	op, _ = log.Redo()
	if got := op.(Delete).TrashPaths[0]; got != "/trash/2_a" {
		t.Fatalf("Redo after Amend returned trash path %s", got)
	}
}

func TestDropKeepsUndonePosition(t *testing.T) {
	t.Parallel()

	log := New()
	log.Push(Rename{From: "a", To: "A"})
	log.Push(Delete{SourceDir: "/d"})
	log.Push(Rename{From: "b", To: "B"})
	log.Push(Delete{SourceDir: "/e"})
	if _, err := log.Undo(); err != nil {
		t.Fatalf("Undo returned %v", err)
	}
	if _, err := log.Undo(); err != nil {
		t.Fatalf("Undo returned %v", err)
	}

	dropped := log.Drop(func(op Operation) bool {
		_, ok := op.(Delete)
		return ok
	})
	if dropped != 2 || log.Len() != 2 || log.Pos() != 1 {
		t.Fatalf("after Drop: dropped=%d len=%d pos=%d, want 2 2 1", dropped, log.Len(), log.Pos())
	}

	op, err := log.Redo()
	if err != nil {
		t.Fatalf("Redo returned %v", err)
	}
	if got := op.(Rename); got.From != "b" {
		t.Fatalf("Redo returned %+v, want rename of b", got)
	}
	_, _ = log.Undo()
	op, _ = log.Undo()
	if got := op.(Rename); got.From != "a" {
		t.Fatalf("Undo returned %+v, want rename of a", got)
	}
}
