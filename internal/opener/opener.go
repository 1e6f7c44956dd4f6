// Package opener turns the configured exec table into a process for a file.
package opener

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/fx/internal/config"
)

// OpenedMsg reports that the opener for Path has returned or detached.
type OpenedMsg struct {
	Path string
	Err  error
}

// Launch is a prepared opener. Wait is set for programs that take over the
// terminal; the browser suspends itself while they run.
type Launch struct {
	Path string
	Cmd  *exec.Cmd
	Wait bool
}

// terminal programs that need the tty.
var foreground = map[string]bool{
	"nvim":  true,
	"vim":   true,
	"vi":    true,
	"nano":  true,
	"hx":    true,
	"micro": true,
	"less":  true,
	"more":  true,
	"bat":   true,
	"kak":   true,
}

type placeholderContext struct {
	File     string
	Filename string
	Dir      string
}

// For builds the launch for path from the opener registered for its
// extension, falling back to the default opener.
func For(cfg *config.Config, path string) (*Launch, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Build(cfg.Command(ext), path)
}

// Build expands command for path. {file}, {filename} and {dir} are
// replaced per argument; without any placeholder the path is appended.
func Build(command, path string) (*Launch, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no opener configured for %s", filepath.Base(path))
	}

	ctx := placeholderContext{
		File:     path,
		Filename: filepath.Base(path),
		Dir:      filepath.Dir(path),
	}

	used := false
	args := make([]string, 0, len(fields))
	for _, field := range fields[1:] {
		expanded := expandPlaceholders(field, ctx)
		if expanded != field {
			used = true
		}
		args = append(args, expanded)
	}
	if !used {
		args = append(args, path)
	}

	program := expandPlaceholders(fields[0], ctx)
	cmd := exec.Command(program, args...)
	wait := foreground[filepath.Base(program)]
	if !wait {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	}

	return &Launch{Path: path, Cmd: cmd, Wait: wait}, nil
}

func expandPlaceholders(value string, ctx placeholderContext) string {
	replacements := map[string]string{
		"{file}":     ctx.File,
		"{filename}": ctx.Filename,
		"{dir}":      ctx.Dir,
	}

	result := value
	for placeholder, replacement := range replacements {
		result = strings.ReplaceAll(result, placeholder, replacement)
	}

	return result
}

// Command runs the launch from inside the browser. Foreground programs go
// through tea.ExecProcess; others are started and left running.
func (l *Launch) Command() tea.Cmd {
	if l.Wait {
		return tea.ExecProcess(l.Cmd, func(err error) tea.Msg {
			return OpenedMsg{Path: l.Path, Err: err}
		})
	}

	return func() tea.Msg {
		if err := l.Cmd.Start(); err != nil {
			return OpenedMsg{Path: l.Path, Err: err}
		}
		go func() { _ = l.Cmd.Wait() }()
		return OpenedMsg{Path: l.Path}
	}
}
