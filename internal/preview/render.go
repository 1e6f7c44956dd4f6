package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/fx/internal/cache"
	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/constants"
)

const markdownStyle = "dracula"

type RenderOptions struct {
	Highlight    bool
	Theme        string
	DirColor     lipgloss.TerminalColor
	FileColor    lipgloss.TerminalColor
	SymlinkColor lipgloss.TerminalColor
}

// Renderer turns a classified item into the lines shown in the preview
// pane. Text renderings are cached per path, size, mtime and width.
type Renderer struct {
	opts  RenderOptions
	cache *cache.LRUCache
	kinds map[catalog.Kind]lipgloss.Style
	muted lipgloss.Style
}

func NewRenderer(opts RenderOptions) *Renderer {
	if opts.Theme == "" {
		opts.Theme = "dracula"
	}
	style := func(c lipgloss.TerminalColor) lipgloss.Style {
		s := lipgloss.NewStyle()
		if c != nil {
			s = s.Foreground(c)
		}
		return s
	}
	return &Renderer{
		opts:  opts,
		cache: cache.NewLRUCache(constants.PreviewCacheSize),
		kinds: map[catalog.Kind]lipgloss.Style{
			catalog.Dir:     style(opts.DirColor).Bold(true),
			catalog.File:    style(opts.FileColor),
			catalog.Symlink: style(opts.SymlinkColor),
		},
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// KindStyle is the configured style for names of the given kind.
func (r *Renderer) KindStyle(k catalog.Kind) lipgloss.Style {
	return r.kinds[k]
}

// Render returns at most height lines of item's preview, starting at its
// scroll offset, each fitted to width.
func (r *Renderer) Render(item catalog.Item, width, height int) string {
	if item.Preview == nil || width < 1 || height < 1 {
		return ""
	}
	p := item.Preview

	var lines []string
	switch p.Kind {
	case catalog.PreviewTooBig:
		lines = []string{r.muted.Render(fmt.Sprintf("too big to preview (%s)", humanize.Bytes(uint64(item.Size))))}
	case catalog.PreviewDirectory:
		lines = r.directoryLines(p.Entries, width)
	case catalog.PreviewImage:
		lines = []string{r.muted.Render(fmt.Sprintf("image: %s (%s)", item.Ext, humanize.Bytes(uint64(item.Size))))}
	case catalog.PreviewText:
		lines = strings.Split(r.text(item, width), "\n")
	case catalog.PreviewBinary:
		lines = []string{r.muted.Render(fmt.Sprintf("binary file (%s)", humanize.Bytes(uint64(item.Size))))}
	case catalog.PreviewNotReadable:
		lines = []string{r.muted.Render("not readable")}
	default:
		return ""
	}

	start := p.Scroll
	if start > len(lines)-1 {
		start = len(lines) - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(lines) {
		end = len(lines)
	}

	fit := lipgloss.NewStyle().MaxWidth(width)
	out := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		out = append(out, fit.Render(line))
	}
	return strings.Join(out, "\n")
}

// LineCount is how many lines the preview has before rendering; used to
// bound scrolling.
func LineCount(p *catalog.Preview) int {
	if p == nil {
		return 0
	}
	switch p.Kind {
	case catalog.PreviewText:
		return strings.Count(p.Text, "\n") + 1
	case catalog.PreviewDirectory:
		return len(p.Entries)
	default:
		return 1
	}
}

func (r *Renderer) directoryLines(entries []catalog.Item, width int) []string {
	if len(entries) == 0 {
		return []string{r.muted.Render("empty")}
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		name := e.Name
		if e.Kind == catalog.Dir {
			name += "/"
		}
		lines[i] = r.kinds[e.Kind].Render(runewidth.Truncate(name, width, "…"))
	}
	return lines
}

func (r *Renderer) text(item catalog.Item, width int) string {
	key := cache.Key(item.Path, item.Size, item.ModTime, width)
	if out, ok := r.cache.Get(key); ok {
		return out
	}

	text := item.Preview.Text
	var out string
	switch {
	case item.Ext == "md" || item.Ext == "markdown":
		out = renderMarkdown(text, width)
	case r.opts.Highlight:
		out = highlight(item.Name, text, r.opts.Theme)
	default:
		out = text
	}
	out = strings.TrimRight(out, "\n")

	r.cache.Put(key, out)
	return out
}

func renderMarkdown(text string, width int) string {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return text
	}
	out, err := tr.Render(text)
	if err != nil {
		return text
	}
	return out
}

func highlight(name, text, theme string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return text
	}

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return text
	}
	return buf.String()
}
