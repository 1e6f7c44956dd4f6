package browser

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	down          key.Binding
	up            key.Binding
	top           key.Binding
	bottom        key.Binding
	enter         key.Binding
	back          key.Binding
	home          key.Binding
	trash         key.Binding
	toggleHidden  key.Binding
	toggleSort    key.Binding
	selectMode    key.Binding
	mark          key.Binding
	clear         key.Binding
	remove        key.Binding
	yank          key.Binding
	put           key.Binding
	rename        key.Binding
	mkdir         key.Binding
	touch         key.Binding
	undo          key.Binding
	redo          key.Binding
	search        key.Binding
	nextMatch     key.Binding
	prevMatch     key.Binding
	togglePreview key.Binding
	toggleSplit   key.Binding
	scrollDown    key.Binding
	scrollUp      key.Binding
	copyPath      key.Binding
	refresh       key.Binding
	toggleHelp    key.Binding
	quit          key.Binding
	submit        key.Binding
	cancel        key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		enter: key.NewBinding(
			key.WithKeys("l", "right", "enter"),
			key.WithHelp("l/↵", "open"),
		),
		back: key.NewBinding(
			key.WithKeys("h", "left", "backspace"),
			key.WithHelp("h", "parent"),
		),
		home: key.NewBinding(
			key.WithKeys("~"),
			key.WithHelp("~", "home"),
		),
		trash: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "trash"),
		),
		toggleHidden: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "hidden"),
		),
		toggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		selectMode: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "select range"),
		),
		mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark"),
		),
		clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yank"),
		),
		put: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "put"),
		),
		rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		mkdir: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "mkdir"),
		),
		touch: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new file"),
		),
		undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		redo: key.NewBinding(
			key.WithKeys("U", "ctrl+r"),
			key.WithHelp("U", "redo"),
		),
		search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		nextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		prevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "prev match"),
		),
		togglePreview: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "preview"),
		),
		toggleSplit: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "split"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("J", "ctrl+d"),
			key.WithHelp("J", "scroll preview"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("K", "ctrl+u"),
			key.WithHelp("K", "scroll preview up"),
		),
		copyPath: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy path"),
		),
		refresh: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "refresh"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "submit"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.back, k.remove, k.put, k.undo, k.search, k.toggleHelp, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.down, k.up, k.top, k.bottom, k.enter, k.back, k.home, k.trash},
		{k.selectMode, k.mark, k.clear, k.remove, k.yank, k.put, k.rename, k.mkdir, k.touch},
		{k.undo, k.redo, k.search, k.nextMatch, k.prevMatch, k.copyPath, k.refresh},
		{k.toggleHidden, k.toggleSort, k.togglePreview, k.toggleSplit, k.scrollDown, k.scrollUp, k.toggleHelp, k.quit},
	}
}
