package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/oplog"
	"github.com/Paintersrp/fx/internal/selection"
)

// Delete moves the selection, or the current item, into the trash. The
// batch stops at the first failure; whatever was already moved is still
// recorded as one undoable operation and kept in the register.
func (e *Engine) Delete() (int, error) {
	targets := selection.Targets(e.items, e.cur.Index)
	if len(targets) == 0 {
		return 0, fxerr.NotFound(e.cur.Index)
	}

	op := oplog.Delete{SourceDir: e.dir}
	reg := Register{FromTrash: true}
	var batchErr error
	for _, item := range targets {
		trashPath, err := e.vault.Delete(item)
		if err != nil {
			batchErr = err
			break
		}
		op.Items = append(op.Items, item)
		op.TrashPaths = append(op.TrashPaths, trashPath)
		if trashPath != "" {
			reg.Items = append(reg.Items, catalog.Stat(trashPath))
		}
	}

	if len(op.Items) > 0 {
		e.log.Push(op)
		e.register = reg
		e.logger.Info().Int("items", len(op.Items)).Str("dir", e.dir).Msg("deleted")
	}
	if batchErr != nil {
		e.logger.Error().Err(batchErr).Int("completed", len(op.Items)).Msg("delete aborted")
	}

	return len(op.Items), e.afterMutation(batchErr)
}

// Yank captures the selection, or the current item, in the register.
func (e *Engine) Yank() (int, error) {
	targets := selection.Targets(e.items, e.cur.Index)
	if len(targets) == 0 {
		return 0, fxerr.NotFound(e.cur.Index)
	}
	e.register = Register{Items: targets}
	e.sel.Clear(e.items)
	return len(targets), nil
}

// Put copies the register into the current directory under collision-free
// names. Items taken by a delete are restored without their trash prefix.
func (e *Engine) Put() (int, error) {
	if len(e.register.Items) == 0 {
		return 0, nil
	}

	op := oplog.Put{FromTrash: e.register.FromTrash, TargetDir: e.dir}
	results, putErr := e.putItems(e.register.Items, e.register.FromTrash, e.dir)
	op.Items = e.register.Items[:len(results)]
	op.Results = results

	if len(results) > 0 {
		e.log.Push(op)
		e.logger.Info().Int("items", len(results)).Str("dir", e.dir).Msg("put")
	}
	if putErr != nil {
		e.logger.Error().Err(putErr).Int("completed", len(results)).Msg("put aborted")
	}

	err := e.afterMutation(putErr)
	if len(results) > 0 {
		e.focusName(filepath.Base(results[0]))
	}
	return len(results), err
}

func (e *Engine) putItems(items []catalog.Item, fromTrash bool, dir string) ([]string, error) {
	var results []string
	for _, item := range items {
		var (
			dst string
			err error
		)
		if fromTrash {
			dst, err = e.vault.Restore(item.Path, dir)
		} else {
			dst, err = e.vault.Put(item.Path, dir)
		}
		if err != nil {
			return results, err
		}
		results = append(results, dst)
	}
	return results, nil
}

// Rename renames the current item within the current directory. An
// existing destination is never overwritten.
func (e *Engine) Rename(newName string) error {
	item, err := e.Current()
	if err != nil {
		return err
	}
	if err := validName(newName); err != nil {
		return err
	}
	if newName == item.Name {
		return nil
	}

	to := filepath.Join(e.dir, newName)
	if err := renameNoClobber(item.Path, to); err != nil {
		return err
	}

	e.log.Push(oplog.Rename{From: item.Path, To: to})
	e.logger.Info().Str("from", item.Path).Str("to", to).Msg("renamed")

	err = e.Refresh()
	e.focusName(newName)
	return err
}

// Mkdir creates a directory in the current directory. It is not recorded
// in the undo log.
func (e *Engine) Mkdir(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	path := filepath.Join(e.dir, name)
	if err := os.Mkdir(path, 0o755); err != nil {
		return fxerr.IOPath(path, err)
	}
	err := e.Refresh()
	e.focusName(name)
	return err
}

// Touch creates an empty file in the current directory. It is not recorded
// in the undo log.
func (e *Engine) Touch(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	path := filepath.Join(e.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fxerr.IOPath(path, err)
	}
	if err := f.Close(); err != nil {
		return fxerr.IOPath(path, err)
	}
	err = e.Refresh()
	e.focusName(name)
	return err
}

// Undo reverses the most recent operation that has not been undone.
func (e *Engine) Undo() (oplog.Operation, error) {
	op, err := e.log.Undo()
	if err != nil {
		return nil, err
	}

	var opErr error
	switch op := op.(type) {
	case oplog.Rename:
		opErr = renameNoClobber(op.To, op.From)
	case oplog.Put:
		for _, p := range op.Results {
			if err := os.RemoveAll(p); err != nil {
				opErr = fxerr.Remove(p, err)
				break
			}
		}
	case oplog.Delete:
		opErr = e.undoDelete(op)
	}

	e.logger.Info().Str("op", op.Name()).Err(opErr).Msg("undo")
	return op, e.afterMutation(opErr)
}

// undoDelete restores every recoverable item and amends the log entry so a
// redo deletes the restored paths.
func (e *Engine) undoDelete(op oplog.Delete) error {
	amended := oplog.Delete{SourceDir: op.SourceDir}
	var restoreErr error
	for i, trashPath := range op.TrashPaths {
		if trashPath == "" {
			continue
		}
		restored, err := e.vault.RestoreAs(trashPath, op.Items[i].Name, op.SourceDir)
		if err != nil {
			restoreErr = err
			break
		}
		amended.Items = append(amended.Items, catalog.Stat(restored))
		amended.TrashPaths = append(amended.TrashPaths, op.TrashPaths[i])
	}
	e.log.Amend(amended)
	return restoreErr
}

// Redo re-applies the most recently undone operation.
func (e *Engine) Redo() (oplog.Operation, error) {
	op, err := e.log.Redo()
	if err != nil {
		return nil, err
	}

	var opErr error
	switch op := op.(type) {
	case oplog.Rename:
		opErr = renameNoClobber(op.From, op.To)
	case oplog.Put:
		results, err := e.putItems(op.Items, op.FromTrash, op.TargetDir)
		op.Results = results
		e.log.Amend(op)
		opErr = err
	case oplog.Delete:
		amended := oplog.Delete{SourceDir: op.SourceDir}
		for _, item := range op.Items {
			trashPath, err := e.vault.Delete(catalog.Stat(item.Path))
			if err != nil {
				opErr = err
				break
			}
			amended.Items = append(amended.Items, item)
			amended.TrashPaths = append(amended.TrashPaths, trashPath)
		}
		e.log.Amend(amended)
	}

	e.logger.Info().Str("op", op.Name()).Err(opErr).Msg("redo")
	return op, e.afterMutation(opErr)
}

// afterMutation rebuilds the catalog and returns opErr if set, otherwise
// the rebuild error.
func (e *Engine) afterMutation(opErr error) error {
	refreshErr := e.Refresh()
	if opErr != nil {
		return opErr
	}
	return refreshErr
}

// EmptyTrash permanently removes every vault entry. History entries and a
// register that depend on removed entries are dropped with them.
func (e *Engine) EmptyTrash() (int, error) {
	n, err := e.vault.Empty(time.Time{})
	if n > 0 {
		e.forgetTrash()
	}
	if e.dir == e.vault.Dir() {
		return n, e.afterMutation(err)
	}
	return n, err
}

func (e *Engine) forgetTrash() {
	dropped := e.log.Drop(func(op oplog.Operation) bool {
		switch op := op.(type) {
		case oplog.Delete:
			return anyMissing(op.TrashPaths)
		case oplog.Put:
			return op.FromTrash && anyMissing(itemPaths(op.Items))
		}
		return false
	})
	if e.register.FromTrash && anyMissing(itemPaths(e.register.Items)) {
		e.register = Register{}
	}
	if dropped > 0 {
		e.logger.Info().Int("dropped", dropped).Msg("history entries referring to the trash dropped")
	}
}

// anyMissing reports whether a recorded vault path no longer exists. Empty
// paths mark items that were never kept and do not count.
func anyMissing(paths []string) bool {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Lstat(p); err != nil {
			return true
		}
	}
	return false
}

func itemPaths(items []catalog.Item) []string {
	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.Path
	}
	return paths
}

// CopyPath places the current item's path on the clipboard.
func (e *Engine) CopyPath() (string, error) {
	item, err := e.Current()
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(item.Path) {
		return "", fxerr.EncodeName(item.Path)
	}
	if err := e.clipboard(item.Path); err != nil {
		return "", fxerr.IO(err)
	}
	return item.Path, nil
}

func validName(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", name == "..":
		return fxerr.IOPath(name, errors.New("invalid name"))
	case strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/'):
		return fxerr.IOPath(name, fmt.Errorf("name must not contain %q", filepath.Separator))
	case !utf8.ValidString(name):
		return fxerr.EncodeName(name)
	}
	return nil
}

func renameNoClobber(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return fxerr.IOPath(to, fs.ErrExist)
	}
	if err := os.Rename(from, to); err != nil {
		return fxerr.IOPath(from, err)
	}
	return nil
}
