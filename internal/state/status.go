package state

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/Paintersrp/fx/internal/trash"
)

// TrashStatusMsg notifies the browser that the trash summary was refreshed.
type TrashStatusMsg struct {
	Line string
}

// RootStatus holds the trash summary shown on the right of the status bar.
type RootStatus struct {
	mu   sync.Mutex
	line string
}

func (r *RootStatus) Set(line string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.line = line
	r.mu.Unlock()
}

func (r *RootStatus) Line() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.line
}

// TrashStatusCmd lists the vault, updates the shared status line and
// returns a message so the browser rerenders.
func (s *State) TrashStatusCmd() tea.Cmd {
	if s == nil || s.Vault == nil {
		return nil
	}

	return func() tea.Msg {
		line := formatTrashStatus(s.Vault.List())
		s.RootStatus.Set(line)
		return TrashStatusMsg{Line: line}
	}
}

func formatTrashStatus(entries []trash.Entry, err error) string {
	if err != nil {
		return "trash: unavailable"
	}
	if len(entries) == 0 {
		return "trash: empty"
	}

	var size int64
	for _, e := range entries {
		size += e.Size
	}
	noun := "items"
	if len(entries) == 1 {
		noun = "item"
	}
	parts := []string{
		fmt.Sprintf("trash: %d %s", len(entries), noun),
		humanize.Bytes(uint64(size)),
	}
	if oldest := entries[0].Deleted; !oldest.IsZero() {
		parts = append(parts, "oldest "+humanize.Time(oldest))
	}
	return strings.Join(parts, " · ")
}
