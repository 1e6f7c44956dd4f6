// Package engine owns the navigation and operation state of the browser:
// the catalog of the current directory, the cursor, selection, directory
// memos, the undo log, the trash vault and the yank register. It is not
// safe for concurrent use; callers serialize every call.
package engine

import (
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/cursor"
	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/memo"
	"github.com/Paintersrp/fx/internal/oplog"
	"github.com/Paintersrp/fx/internal/preview"
	"github.com/Paintersrp/fx/internal/selection"
	"github.com/Paintersrp/fx/internal/trash"
)

type Options struct {
	Dir        string
	Sort       catalog.SortKey
	ShowHidden bool
	Rows       int
	Vault      *trash.Vault
	Classifier *preview.Classifier
	Logger     zerolog.Logger
	// Clipboard receives copied paths; defaults to the system clipboard.
	Clipboard func(string) error
}

// Register holds the items captured by the last yank or delete.
type Register struct {
	Items     []catalog.Item
	FromTrash bool
}

type Engine struct {
	dir        string
	items      []catalog.Item
	cur        cursor.State
	rows       int
	sortKey    catalog.SortKey
	showHidden bool

	sel      selection.Model
	memos    memo.Stack
	log      *oplog.Log
	vault    *trash.Vault
	classify *preview.Classifier
	register Register
	query    string

	logger    zerolog.Logger
	clipboard func(string) error
}

func New(opts Options) (*Engine, error) {
	if opts.Vault == nil {
		return nil, fxerr.IO(os.ErrInvalid)
	}
	e := &Engine{
		rows:       opts.Rows,
		sortKey:    opts.Sort,
		showHidden: opts.ShowHidden,
		log:        oplog.New(),
		vault:      opts.Vault,
		classify:   opts.Classifier,
		logger:     opts.Logger,
		clipboard:  opts.Clipboard,
	}
	if e.rows < 1 {
		e.rows = 1
	}
	if e.classify == nil {
		e.classify = preview.NewClassifier(nil)
	}
	e.classify.SetShowHidden(e.showHidden)
	if e.clipboard == nil {
		e.clipboard = clipboard.WriteAll
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fxerr.IO(err)
		}
		dir = wd
	}
	if err := e.Open(dir); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) Dir() string { return e.dir }
func (e *Engine) Items() []catalog.Item { return e.items }
func (e *Engine) Cursor() cursor.State { return e.cur }
func (e *Engine) Rows() int { return e.rows }
func (e *Engine) Sort() catalog.SortKey { return e.sortKey }
func (e *Engine) ShowHidden() bool { return e.showHidden }
func (e *Engine) Register() Register { return e.register }
func (e *Engine) Query() string { return e.query }
func (e *Engine) SelectMode() bool { return e.sel.Active() }
func (e *Engine) Selected() int { return selection.Count(e.items) }
func (e *Engine) CanUndo() bool { return e.log.CanUndo() }
func (e *Engine) CanRedo() bool { return e.log.CanRedo() }
func (e *Engine) Vault() *trash.Vault { return e.vault }
func (e *Engine) Window() (start, end int) { return e.cur.Window(len(e.items), e.rows) }
func (e *Engine) HistoryLen() (total, undone int) { return e.log.Len(), e.log.Pos() }

// Current returns the item under the cursor.
func (e *Engine) Current() (catalog.Item, error) {
	if e.cur.Index < 0 || e.cur.Index >= len(e.items) {
		return catalog.Item{}, fxerr.NotFound(e.cur.Index)
	}
	return e.items[e.cur.Index], nil
}

// Open lists dir and makes it current with the cursor at the top. On
// failure the previous state is kept.
func (e *Engine) Open(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fxerr.IOPath(dir, err)
	}
	items, err := catalog.Rebuild(abs, e.sortKey, e.showHidden)
	if err != nil {
		return err
	}
	e.enter(abs, items)
	e.cur.Reset()
	return nil
}

func (e *Engine) enter(dir string, items []catalog.Item) {
	e.dir = dir
	e.items = items
	e.sel.Reset()
	e.query = ""
	e.logger.Debug().Str("dir", dir).Int("items", len(items)).Msg("entered directory")
}

// Refresh rebuilds the catalog of the current directory, keeping the
// cursor on the same name when it still exists.
func (e *Engine) Refresh() error {
	items, err := catalog.Rebuild(e.dir, e.sortKey, e.showHidden)
	if err != nil {
		return err
	}
	e.replace(items)
	return nil
}

func (e *Engine) replace(items []catalog.Item) {
	name := ""
	if cur, err := e.Current(); err == nil {
		name = cur.Name
	}

	e.items = items
	e.sel.Reset()
	if e.query != "" {
		e.markMatches()
	}

	if idx := catalog.IndexOf(items, name); idx >= 0 {
		e.cur.Focus(idx, len(items), e.rows)
		return
	}
	e.cur.Clamp(len(items), e.rows)
}

func (e *Engine) focusName(name string) {
	if idx := catalog.IndexOf(e.items, name); idx >= 0 {
		e.cur.Focus(idx, len(e.items), e.rows)
	}
}

// Resize sets the viewport height in rows.
func (e *Engine) Resize(rows int) {
	if rows < 1 {
		rows = 1
	}
	e.rows = rows
	e.cur.Clamp(len(e.items), e.rows)
}

func (e *Engine) Down() {
	e.cur.MoveDown(len(e.items), e.rows)
	e.sel.Extend(e.items, e.cur.Index)
}

func (e *Engine) Up() {
	e.cur.MoveUp(e.rows)
	e.sel.Extend(e.items, e.cur.Index)
}

func (e *Engine) Top() {
	e.cur.JumpTop()
	e.sel.Extend(e.items, e.cur.Index)
}

func (e *Engine) Bottom() {
	e.cur.JumpBottom(len(e.items), e.rows)
	e.sel.Extend(e.items, e.cur.Index)
}

// Enter descends into the current directory. For anything else it returns
// the path the caller should open.
func (e *Engine) Enter() (string, error) {
	item, err := e.Current()
	if err != nil {
		return "", err
	}
	if !item.IsDirLike() {
		return item.Path, nil
	}

	target := item.Target()
	items, err := catalog.Rebuild(target, e.sortKey, e.showHidden)
	if err != nil {
		return "", err
	}

	restored, ok := e.memos.Descend(e.snapshot(), target)
	e.enter(target, items)
	e.cur = restored
	if !ok {
		e.cur.Reset()
	}
	e.cur.Clamp(len(e.items), e.rows)
	return "", nil
}

// Back moves to the parent directory, restoring the cursor from history or
// placing it on the directory just left.
func (e *Engine) Back() error {
	parent := filepath.Dir(e.dir)
	if parent == e.dir {
		return nil
	}

	items, err := catalog.Rebuild(parent, e.sortKey, e.showHidden)
	if err != nil {
		return err
	}

	left := filepath.Base(e.dir)
	restored, ok := e.memos.Ascend(e.snapshot(), parent)
	e.enter(parent, items)
	if ok {
		e.cur = restored
		e.cur.Clamp(len(e.items), e.rows)
		return nil
	}

	e.cur.Reset()
	e.focusName(left)
	return nil
}

// Jump opens an unrelated directory and forgets navigation history.
func (e *Engine) Jump(dir string) error {
	if err := e.Open(dir); err != nil {
		return err
	}
	e.memos.Jump()
	return nil
}

func (e *Engine) Home() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fxerr.IO(err)
	}
	return e.Jump(home)
}

// TrashDir jumps into the vault.
func (e *Engine) TrashDir() error {
	return e.Jump(e.vault.Dir())
}

func (e *Engine) snapshot() memo.Memo {
	return memo.Memo{Dir: e.dir, Cursor: e.cur, Row: e.cur.Index - e.cur.Skip}
}

func (e *Engine) ToggleHidden() error {
	e.showHidden = !e.showHidden
	if err := e.Refresh(); err != nil {
		e.showHidden = !e.showHidden
		return err
	}
	e.classify.SetShowHidden(e.showHidden)
	return nil
}

func (e *Engine) ToggleSort() error {
	return e.SetSort(e.sortKey.Toggle())
}

func (e *Engine) SetSort(key catalog.SortKey) error {
	prev := e.sortKey
	e.sortKey = key
	if err := e.Refresh(); err != nil {
		e.sortKey = prev
		return err
	}
	return nil
}

func (e *Engine) ToggleSelectMode() {
	e.sel.Toggle(e.items, e.cur.Index)
}

// ToggleMark flips the current row and moves down.
func (e *Engine) ToggleMark() {
	e.sel.Mark(e.items, e.cur.Index)
	e.cur.MoveDown(len(e.items), e.rows)
}

func (e *Engine) ClearSelection() {
	e.sel.Clear(e.items)
}

// Preview classifies the current item on first use and returns its
// preview.
func (e *Engine) Preview() (catalog.Item, error) {
	if _, err := e.Current(); err != nil {
		return catalog.Item{}, err
	}
	item := &e.items[e.cur.Index]
	if item.Preview == nil {
		e.classify.Classify(item)
	}
	return *item, nil
}

// ScrollPreview moves the preview of the current item by delta lines.
func (e *Engine) ScrollPreview(delta int) {
	if e.cur.Index < 0 || e.cur.Index >= len(e.items) {
		return
	}
	p := e.items[e.cur.Index].Preview
	if p == nil {
		return
	}
	p.Scroll += delta
	if last := preview.LineCount(p) - 1; p.Scroll > last {
		p.Scroll = last
	}
	if p.Scroll < 0 {
		p.Scroll = 0
	}
}
