// Package session stores the few view settings that survive a restart.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/constants"
)

type Split string

const (
	Vertical   Split = "Vertical"
	Horizontal Split = "Horizontal"
)

type Session struct {
	SortBy     string `yaml:"sort_by"`
	ShowHidden bool   `yaml:"show_hidden"`
	Preview    *bool  `yaml:"preview,omitempty"`
	Split      *Split `yaml:"split,omitempty"`
}

func Default() Session {
	return Session{SortBy: catalog.SortName.String(), ShowHidden: true}
}

// Path is the session file inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.SessionFile)
}

// Load reads the session record. Anything missing, unparsable or out of
// range yields the default record as a whole.
func Load(path string) Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default()
	}
	if !s.valid() {
		return Default()
	}
	return s
}

func (s Session) valid() bool {
	if s.SortBy != catalog.SortName.String() && s.SortBy != catalog.SortTime.String() {
		return false
	}
	if s.Split != nil && *s.Split != Vertical && *s.Split != Horizontal {
		return false
	}
	return true
}

func (s Session) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Sort returns the stored sort key.
func (s Session) Sort() catalog.SortKey {
	key, _ := catalog.ParseSortKey(s.SortBy)
	return key
}

// PreviewOn reports whether the preview pane was open; absent means off.
func (s Session) PreviewOn() bool {
	return s.Preview != nil && *s.Preview
}

// Layout returns the stored split; absent means vertical.
func (s Session) Layout() Split {
	if s.Split == nil {
		return Vertical
	}
	return *s.Split
}

// From builds a record from the live view settings.
func From(sortKey catalog.SortKey, showHidden, preview bool, split Split) Session {
	return Session{
		SortBy:     sortKey.String(),
		ShowHidden: showHidden,
		Preview:    &preview,
		Split:      &split,
	}
}
