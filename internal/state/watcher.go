package state

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/fx/internal/pathutil"
)

// DirChangedMsg reports a change to the watched directory or one of its
// direct children. The receiver decides whether to refresh.
type DirChangedMsg struct {
	Dir  string
	Name string
}

type DirWatcherErrMsg struct {
	Err error
}

// DirWatcher follows a single directory, non-recursively. It never touches
// browser state; it only delivers messages.
type DirWatcher struct {
	watcher   *fsnotify.Watcher
	done      chan struct{}
	once      sync.Once
	mu        sync.Mutex
	dir       string
	pending   []tea.Msg
	heartbeat func() tea.Cmd
	interval  time.Duration
	onClose   func()
}

func NewDirWatcher(dir string) (*DirWatcher, error) {
	normalized := pathutil.NormalizePath(dir)
	if normalized == "" {
		return nil, errors.New("watched directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &DirWatcher{
		watcher: w,
		done:    make(chan struct{}),
	}

	if err := watcher.Retarget(normalized); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Dir returns the directory currently watched.
func (w *DirWatcher) Dir() string {
	if w == nil {
		return ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Retarget moves the watch to dir. On failure the previous directory is
// no longer watched and Dir reports the empty string.
func (w *DirWatcher) Retarget(dir string) error {
	if w == nil {
		return nil
	}
	normalized := pathutil.NormalizePath(dir)

	w.mu.Lock()
	defer w.mu.Unlock()
	if normalized == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.watcher.Remove(w.dir)
		w.dir = ""
	}
	if err := w.watcher.Add(normalized); err != nil {
		return err
	}
	w.dir = normalized
	return nil
}

// Start returns a command that blocks until the next relevant event. The
// receiver re-issues it after handling each message.
func (w *DirWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		if msg := w.dequeuePending(); msg != nil {
			return msg
		}

		hb, interval := w.heartbeatConfig()
		var ticks <-chan time.Time
		if hb != nil && interval > 0 {
			ticker := time.NewTicker(interval)
			ticks = ticker.C
			defer ticker.Stop()
		}

		for {
			select {
			case <-w.done:
				return nil
			case <-ticks:
				if msg := w.invokeHeartbeat(hb); msg != nil {
					return msg
				}
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				msg, relevant := w.changeFor(event)
				if !relevant {
					continue
				}

				if beat := w.invokeHeartbeat(hb); beat != nil {
					w.enqueuePending(msg)
					return beat
				}

				return msg
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return DirWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *DirWatcher) changeFor(event fsnotify.Event) (DirChangedMsg, bool) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) == 0 {
		return DirChangedMsg{}, false
	}

	dir := w.Dir()
	if dir == "" {
		return DirChangedMsg{}, false
	}

	name := pathutil.NormalizePath(event.Name)
	if name == dir {
		return DirChangedMsg{Dir: dir}, true
	}
	if filepath.Dir(name) != dir {
		return DirChangedMsg{}, false
	}
	return DirChangedMsg{Dir: dir, Name: filepath.Base(name)}, true
}

func (w *DirWatcher) heartbeatConfig() (func() tea.Cmd, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.heartbeat, w.interval
}

func (w *DirWatcher) invokeHeartbeat(fn func() tea.Cmd) tea.Msg {
	if fn == nil {
		return nil
	}
	cmd := fn()
	if cmd == nil {
		return nil
	}
	return cmd()
}

func (w *DirWatcher) enqueuePending(msg tea.Msg) {
	w.mu.Lock()
	w.pending = append(w.pending, msg)
	w.mu.Unlock()
}

func (w *DirWatcher) dequeuePending() tea.Msg {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	msg := w.pending[0]
	w.pending = w.pending[1:]
	return msg
}

func (w *DirWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if w.onClose != nil {
			w.onClose()
		}
	})

	return closeErr
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *DirWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.onClose = fn
}

// SetHeartbeat configures a command that is invoked whenever the watcher
// detects a change event or when the periodic ticker fires.
func (w *DirWatcher) SetHeartbeat(fn func() tea.Cmd, interval time.Duration) {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.heartbeat = fn
	w.interval = interval
}
