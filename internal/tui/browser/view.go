package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/pathutil"
	"github.com/Paintersrp/fx/internal/session"
)

const ellipsis = "…"

func (m Model) View() string {
	if m.quitting || m.width == 0 {
		return ""
	}
	if m.tooSmall() {
		return errorStyle.Render(fxerr.TooSmall(m.width, m.height).Error())
	}

	sections := []string{m.headerView(), m.bodyView()}
	if m.showHelp {
		sections = append(sections, helpStyle.Render(m.help.FullHelpView(m.keys.FullHelp())))
	}
	sections = append(sections, m.statusView())
	return strings.Join(sections, "\n")
}

func (m Model) headerView() string {
	e := m.engine
	flags := []string{e.Sort().String()}
	if e.ShowHidden() {
		flags = append(flags, "hidden")
	}
	if e.SelectMode() {
		flags = append(flags, "select")
	}
	right := mutedStyle.Render(" [" + strings.Join(flags, " ") + "]")

	room := m.width - lipgloss.Width(right)
	path := pathutil.Display(e.Dir())
	if runewidth.StringWidth(path) > room {
		path = ellipsis + truncateLeft(path, room-1)
	}
	return headerStyle.Render(path) + right
}

func (m Model) bodyView() string {
	if !m.showPreview {
		return m.listView(m.width)
	}

	if m.split == session.Horizontal {
		list := m.listView(m.width)
		rows := m.previewRows()
		body := m.previewView(m.width, rows)
		return list + "\n" + previewBelowStyle.Width(m.width).Height(rows).Render(body)
	}

	listWidth := m.width / 2
	previewWidth := m.width - listWidth - previewStyle.GetHorizontalFrameSize()
	list := lipgloss.NewStyle().Width(listWidth).Render(m.listView(listWidth))
	body := previewStyle.Height(m.listRows()).Render(m.previewView(previewWidth, m.listRows()))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, body)
}

func (m Model) listView(width int) string {
	e := m.engine
	items := e.Items()
	rows := m.listRows()

	if len(items) == 0 {
		lines := []string{mutedStyle.Render("(empty)")}
		for len(lines) < rows {
			lines = append(lines, "")
		}
		return strings.Join(lines, "\n")
	}

	start, end := e.Window()
	lines := make([]string, 0, rows)
	for i := start; i < end; i++ {
		lines = append(lines, m.rowView(items[i], i == e.Cursor().Index, width))
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) rowView(item catalog.Item, focused bool, width int) string {
	name := item.DisplayName()
	marker := "  "
	if item.Selected {
		marker = "* "
	}

	size := ""
	if item.Kind == catalog.File && !item.Degraded {
		size = humanize.Bytes(uint64(item.Size))
	}

	room := width - len(marker)
	if size != "" {
		room -= runewidth.StringWidth(size) + 1
	}
	if room < 1 {
		room = 1
		size = ""
	}
	name = runewidth.Truncate(name, room, ellipsis)
	gap := room - runewidth.StringWidth(name)
	if size != "" {
		gap++
	}
	line := marker + name + strings.Repeat(" ", gap) + size

	switch {
	case focused:
		return cursorStyle.Render(line)
	case item.Selected:
		return selectedStyle.Render(line)
	case item.Matches:
		return m.renderer.KindStyle(item.Kind).Inherit(matchStyle).Render(line)
	default:
		return m.renderer.KindStyle(item.Kind).Render(line)
	}
}

func (m Model) previewView(width, height int) string {
	item, err := m.engine.Current()
	if err != nil || item.Preview == nil {
		return ""
	}
	return m.renderer.Render(item, width, height)
}

func (m Model) statusView() string {
	if m.mode != modeNone {
		return m.input.View()
	}

	right := mutedStyle.Render(m.trashLine)

	var left string
	switch {
	case m.status != "" && m.statusErr:
		left = errorStyle.Render(m.status)
	case m.status != "":
		left = statusStyle.Render(m.status)
	default:
		left = statusStyle.Render(m.itemSummary())
	}

	room := m.width - lipgloss.Width(left)
	if room < lipgloss.Width(right)+1 {
		return truncate.StringWithTail(left, uint(m.width), ellipsis)
	}
	return left + strings.Repeat(" ", room-lipgloss.Width(right)) + right
}

func (m Model) itemSummary() string {
	e := m.engine
	total := len(e.Items())
	if total == 0 {
		return "0/0"
	}

	parts := []string{fmt.Sprintf("%d/%d", e.Cursor().Index+1, total)}
	if n := e.Selected(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if q := e.Query(); q != "" {
		parts = append(parts, "/"+q)
	}
	if item, err := e.Current(); err == nil {
		if perm := item.Permissions(); perm != "" {
			parts = append(parts, perm)
		}
		if ts := item.Timestamp(); ts != "" {
			parts = append(parts, ts)
		}
	}
	return strings.Join(parts, "  ")
}

// truncateLeft keeps the last width cells of s.
func truncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	cells := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if cells+w > width {
			break
		}
		cells += w
		i--
	}
	return string(runes[i:])
}
