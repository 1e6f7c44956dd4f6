package browser

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/fx/internal/engine"
	"github.com/Paintersrp/fx/internal/state"
)

// Run starts the browser and blocks until it quits. The session record is
// saved on the way out; chooseDir, when set, receives the final directory
// for shell integration.
func Run(s *state.State, e *engine.Engine, chooseDir string) error {
	p := tea.NewProgram(New(s, e), tea.WithInput(os.Stdin), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running browser: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil
	}

	if err := s.SaveSession(e, m.PreviewOn(), m.Split()); err != nil {
		s.Logger.Error().Err(err).Msg("session not saved")
	}

	if chooseDir != "" {
		if err := WriteChosenDir(chooseDir, m.Dir()); err != nil {
			return err
		}
	}
	return nil
}

// WriteChosenDir writes dir to path for the shell wrapper to cd into.
func WriteChosenDir(path, dir string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create choose-dir parent: %w", err)
	}
	if err := os.WriteFile(path, []byte(dir+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write choose-dir file: %w", err)
	}
	return nil
}
