package config

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colorCodes maps the configurable color names to ANSI color indexes.
var colorCodes = map[string]string{
	"black":        "0",
	"red":          "1",
	"green":        "2",
	"yellow":       "3",
	"blue":         "4",
	"magenta":      "5",
	"cyan":         "6",
	"white":        "7",
	"grey":         "8",
	"gray":         "8",
	"lightblack":   "8",
	"lightred":     "9",
	"lightgreen":   "10",
	"lightyellow":  "11",
	"lightblue":    "12",
	"lightmagenta": "13",
	"lightcyan":    "14",
	"lightwhite":   "15",
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParseColor accepts a color name (case-insensitive) or a #rgb/#rrggbb
// value.
func ParseColor(name string) (lipgloss.Color, bool) {
	trimmed := strings.TrimSpace(name)
	if hexColor.MatchString(trimmed) {
		return lipgloss.Color(trimmed), true
	}
	if code, ok := colorCodes[strings.ToLower(trimmed)]; ok {
		return lipgloss.Color(code), true
	}
	return "", false
}

// Palette is the resolved set of item colors.
type Palette struct {
	Dir     lipgloss.Color
	File    lipgloss.Color
	Symlink lipgloss.Color
}

func (cfg *Config) Palette() Palette {
	resolve := func(name, fallback string) lipgloss.Color {
		if c, ok := ParseColor(name); ok {
			return c
		}
		c, _ := ParseColor(fallback)
		return c
	}
	return Palette{
		Dir:     resolve(cfg.Colors.DirFg, defaultColors.DirFg),
		File:    resolve(cfg.Colors.FileFg, defaultColors.FileFg),
		Symlink: resolve(cfg.Colors.SymlinkFg, defaultColors.SymlinkFg),
	}
}
