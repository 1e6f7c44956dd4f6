// Package browser is the bubbletea front end. Every engine call happens
// inside Update; background commands only deliver messages.
package browser

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/fx/internal/constants"
	"github.com/Paintersrp/fx/internal/engine"
	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/opener"
	"github.com/Paintersrp/fx/internal/preview"
	"github.com/Paintersrp/fx/internal/session"
	"github.com/Paintersrp/fx/internal/state"
)

const trashStatusInterval = 30 * time.Second

type inputMode int

const (
	modeNone inputMode = iota
	modeRename
	modeMkdir
	modeTouch
	modeSearch
)

func (m inputMode) prompt() string {
	switch m {
	case modeRename:
		return "rename: "
	case modeMkdir:
		return "mkdir: "
	case modeTouch:
		return "new file: "
	case modeSearch:
		return "/"
	default:
		return ""
	}
}

type Model struct {
	state    *state.State
	engine   *engine.Engine
	logger   zerolog.Logger
	keys     *keyMap
	help     help.Model
	input    textinput.Model
	mode     inputMode
	renderer *preview.Renderer

	width       int
	height      int
	showPreview bool
	split       session.Split
	showHelp    bool
	status      string
	statusErr   bool
	trashLine   string
	quitting    bool
}

func New(s *state.State, e *engine.Engine) Model {
	palette := s.Config.Palette()
	r := preview.NewRenderer(preview.RenderOptions{
		Highlight:    s.Config.SyntaxHighlight,
		Theme:        s.Config.DefaultTheme,
		DirColor:     palette.Dir,
		FileColor:    palette.File,
		SymlinkColor: palette.Symlink,
	})

	input := textinput.New()
	input.PromptStyle = promptStyle
	input.CharLimit = 255

	m := Model{
		state:       s,
		engine:      e,
		logger:      s.Logger,
		keys:        newKeyMap(),
		help:        help.New(),
		input:       input,
		renderer:    r,
		showPreview: s.Session.PreviewOn(),
		split:       s.Session.Layout(),
	}

	if cmd := s.TrashStatusCmd(); cmd != nil {
		if msg, ok := cmd().(state.TrashStatusMsg); ok {
			m.trashLine = msg.Line
		}
	}
	if s.Watcher != nil {
		s.Watcher.SetHeartbeat(s.TrashStatusCmd, trashStatusInterval)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.state.Watcher == nil {
		return nil
	}
	return m.state.Watcher.Start()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if m, ok := next.(Model); ok && m.showPreview {
		// Classification is lazy and cached on the item.
		_, _ = m.engine.Preview()
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - len(m.mode.prompt()) - 1
		m.engine.Resize(m.listRows())
		return m, nil

	case state.DirChangedMsg:
		if msg.Dir == m.engine.Dir() {
			if err := m.engine.Refresh(); err != nil {
				m.setError(err)
			}
		}
		return m, m.state.Watcher.Start()

	case state.DirWatcherErrMsg:
		m.logger.Warn().Err(msg.Err).Msg("directory watcher error")
		return m, m.state.Watcher.Start()

	case state.TrashStatusMsg:
		m.trashLine = msg.Line
		return m, m.state.Watcher.Start()

	case opener.OpenedMsg:
		if msg.Err != nil {
			m.setError(fmt.Errorf("open %s: %w", msg.Path, msg.Err))
		}
		if err := m.engine.Refresh(); err != nil {
			m.setError(err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNone {
			return m.handleInput(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.engine
	m.status = ""
	m.statusErr = false

	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.down):
		e.Down()
	case key.Matches(msg, m.keys.up):
		e.Up()
	case key.Matches(msg, m.keys.top):
		e.Top()
	case key.Matches(msg, m.keys.bottom):
		e.Bottom()

	case key.Matches(msg, m.keys.enter):
		path, err := e.Enter()
		if err != nil {
			m.setError(err)
			break
		}
		if path != "" {
			return m, m.open(path)
		}
		m.retarget()
	case key.Matches(msg, m.keys.back):
		m.navigate(e.Back())
	case key.Matches(msg, m.keys.home):
		m.navigate(e.Home())
	case key.Matches(msg, m.keys.trash):
		m.navigate(e.TrashDir())

	case key.Matches(msg, m.keys.toggleHidden):
		m.report(e.ToggleHidden(), "")
	case key.Matches(msg, m.keys.toggleSort):
		m.report(e.ToggleSort(), "sorted by "+e.Sort().String())

	case key.Matches(msg, m.keys.selectMode):
		e.ToggleSelectMode()
	case key.Matches(msg, m.keys.mark):
		e.ToggleMark()
	case key.Matches(msg, m.keys.clear):
		e.ClearSelection()
		e.ClearSearch()

	case key.Matches(msg, m.keys.remove):
		n, err := e.Delete()
		m.report(err, plural(n, "deleted"))
	case key.Matches(msg, m.keys.yank):
		n, err := e.Yank()
		m.report(err, plural(n, "yanked"))
	case key.Matches(msg, m.keys.put):
		n, err := e.Put()
		m.report(err, plural(n, "put"))

	case key.Matches(msg, m.keys.undo):
		op, err := e.Undo()
		if err == nil {
			m.report(nil, "undid "+op.Name())
		} else {
			m.report(err, "")
		}
	case key.Matches(msg, m.keys.redo):
		op, err := e.Redo()
		if err == nil {
			m.report(nil, "redid "+op.Name())
		} else {
			m.report(err, "")
		}

	case key.Matches(msg, m.keys.rename):
		item, err := e.Current()
		if err != nil {
			m.setError(err)
			break
		}
		return m, m.startInput(modeRename, item.Name)
	case key.Matches(msg, m.keys.mkdir):
		return m, m.startInput(modeMkdir, "")
	case key.Matches(msg, m.keys.touch):
		return m, m.startInput(modeTouch, "")
	case key.Matches(msg, m.keys.search):
		return m, m.startInput(modeSearch, e.Query())
	case key.Matches(msg, m.keys.nextMatch):
		if !e.NextMatch() {
			m.status = "no matches"
		}
	case key.Matches(msg, m.keys.prevMatch):
		if !e.PrevMatch() {
			m.status = "no matches"
		}

	case key.Matches(msg, m.keys.togglePreview):
		m.showPreview = !m.showPreview
		e.Resize(m.listRows())
	case key.Matches(msg, m.keys.toggleSplit):
		if m.split == session.Vertical {
			m.split = session.Horizontal
		} else {
			m.split = session.Vertical
		}
		e.Resize(m.listRows())
	case key.Matches(msg, m.keys.scrollDown):
		e.ScrollPreview(m.previewRows() / 2)
	case key.Matches(msg, m.keys.scrollUp):
		e.ScrollPreview(-m.previewRows() / 2)

	case key.Matches(msg, m.keys.copyPath):
		path, err := e.CopyPath()
		m.report(err, "copied "+path)
	case key.Matches(msg, m.keys.refresh):
		m.report(e.Refresh(), "")
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = !m.showHelp
		e.Resize(m.listRows())
	}

	return m, nil
}

func (m *Model) startInput(mode inputMode, value string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeNone
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.engine

	switch {
	case key.Matches(msg, m.keys.cancel):
		if m.mode == modeSearch {
			e.ClearSearch()
		}
		m.stopInput()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		value := m.input.Value()
		mode := m.mode
		m.stopInput()
		switch mode {
		case modeRename:
			m.report(e.Rename(value), "renamed to "+value)
		case modeMkdir:
			m.report(e.Mkdir(value), "created "+value+"/")
		case modeTouch:
			m.report(e.Touch(value), "created "+value)
		case modeSearch:
			n := e.Search(value)
			if value != "" {
				m.status = plural(n, "matched")
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		e.Search(m.input.Value())
	}
	return m, cmd
}

func (m *Model) open(path string) tea.Cmd {
	launch, err := opener.For(m.state.Config, path)
	if err != nil {
		m.setError(err)
		return nil
	}
	m.logger.Info().Str("path", path).Strs("cmd", launch.Cmd.Args).Msg("opening")
	return launch.Command()
}

func (m *Model) navigate(err error) {
	if err != nil {
		m.setError(err)
		return
	}
	m.retarget()
}

func (m *Model) retarget() {
	if m.state.Watcher == nil {
		return
	}
	if err := m.state.Watcher.Retarget(m.engine.Dir()); err != nil {
		m.logger.Warn().Err(err).Str("dir", m.engine.Dir()).Msg("failed to watch directory")
	}
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.setError(err)
		return
	}
	m.status = ok
	m.statusErr = false
}

func (m *Model) setError(err error) {
	switch fxerr.KindOf(err) {
	case fxerr.NothingToUndo, fxerr.NothingToRedo:
		m.logger.Debug().Err(err).Msg("history")
	default:
		m.logger.Error().Err(err).Str("dir", m.engine.Dir()).Msg("operation failed")
	}
	m.status = err.Error()
	m.statusErr = true
}

// listRows is the height of the item list: the terminal minus the header
// and status lines, the help block, and the preview pane when it sits
// below the list.
func (m Model) listRows() int {
	rows := m.height - 2
	if m.showHelp {
		rows -= m.helpHeight()
	}
	if m.showPreview && m.split == session.Horizontal {
		rows /= 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) previewRows() int {
	if m.split == session.Horizontal {
		return m.height - 2 - m.listRows() - 1
	}
	return m.listRows()
}

func (m Model) helpHeight() int {
	tallest := 0
	for _, column := range m.keys.FullHelp() {
		if len(column) > tallest {
			tallest = len(column)
		}
	}
	return tallest
}

func (m Model) tooSmall() bool {
	return m.width > 0 && (m.width < constants.MinTermSize || m.height < constants.MinTermSize)
}

// Dir is the directory shown when the program stopped.
func (m Model) Dir() string {
	return m.engine.Dir()
}

func (m Model) PreviewOn() bool      { return m.showPreview }
func (m Model) Split() session.Split { return m.split }

func plural(n int, verb string) string {
	if n == 1 {
		return verb + " 1 item"
	}
	return fmt.Sprintf("%s %d items", verb, n)
}
