// Package oplog keeps the linear undo/redo history of destructive
// operations. It is bookkeeping only and never touches the filesystem.
package oplog

import (
	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/fxerr"
)

// Operation is one reversible action: Rename, Put or Delete.
type Operation interface {
	operation()
	Name() string
}

// Rename moved From to To within the same filesystem.
type Rename struct {
	From string
	To   string
}

// Put copied Items into TargetDir, landing at Results. FromTrash marks
// items taken from the trash, whose names still carry the timestamp
// prefix.
type Put struct {
	Items     []catalog.Item
	FromTrash bool
	Results   []string
	TargetDir string
}

// Delete moved Items from SourceDir into the trash at TrashPaths. An empty
// trash path marks an item that could not be kept.
type Delete struct {
	Items      []catalog.Item
	TrashPaths []string
	SourceDir  string
}

func (Rename) operation() {}
func (Put) operation()    {}
func (Delete) operation() {}

func (Rename) Name() string { return "rename" }
func (Put) Name() string    { return "put" }
func (Delete) Name() string { return "delete" }

// Log is the history plus a position counted from the newest entry;
// pos == 0 means nothing has been undone.
type Log struct {
	ops     []Operation
	pos     int
	touched int
}

func New() *Log {
	return &Log{touched: -1}
}

// Push records op, discarding every operation that had been undone.
func (l *Log) Push(op Operation) {
	if l.pos != 0 {
		l.ops = l.ops[:len(l.ops)-l.pos]
	}
	l.ops = append(l.ops, op)
	l.pos = 0
	l.touched = -1
}

// Undo returns the operation to reverse and steps back past it.
func (l *Log) Undo() (Operation, error) {
	if !l.CanUndo() {
		return nil, fxerr.ErrNothingToUndo
	}
	idx := len(l.ops) - 1 - l.pos
	l.pos++
	l.touched = idx
	return l.ops[idx], nil
}

// Redo returns the operation to re-apply and steps forward past it.
func (l *Log) Redo() (Operation, error) {
	if !l.CanRedo() {
		return nil, fxerr.ErrNothingToRedo
	}
	idx := len(l.ops) - l.pos
	l.pos--
	l.touched = idx
	return l.ops[idx], nil
}

// Amend replaces the operation last returned by Undo or Redo, recording
// where its items ended up after the inverse action.
func (l *Log) Amend(op Operation) {
	if l.touched < 0 || l.touched >= len(l.ops) {
		return
	}
	l.ops[l.touched] = op
}

// Drop removes every operation for which drop returns true and returns how
// many were removed. Undone operations stay undone.
func (l *Log) Drop(drop func(Operation) bool) int {
	kept := l.ops[:0]
	pos := 0
	undoneFrom := len(l.ops) - l.pos
	for i, op := range l.ops {
		if drop(op) {
			continue
		}
		kept = append(kept, op)
		if i >= undoneFrom {
			pos++
		}
	}
	removed := len(l.ops) - len(kept)
	for i := len(kept); i < len(l.ops); i++ {
		l.ops[i] = nil
	}
	l.ops = kept
	l.pos = pos
	l.touched = -1
	return removed
}

func (l *Log) Len() int { return len(l.ops) }

func (l *Log) Pos() int { return l.pos }

func (l *Log) CanUndo() bool { return l.pos < len(l.ops) }

func (l *Log) CanRedo() bool { return l.pos > 0 }
