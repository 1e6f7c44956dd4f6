package trash

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/fxerr"
)

// Entry describes one top-level vault item.
type Entry struct {
	Name     string
	Original string
	Path     string
	Deleted  time.Time
	Size     int64
	Kind     catalog.Kind
}

// List returns the vault contents, oldest first. Entries without a
// timestamp prefix have a zero Deleted time and sort first.
func (v *Vault) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(v.dir)
	if err != nil {
		return nil, fxerr.IOPath(v.dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		deleted, original, _ := splitPrefix(de.Name())
		path := filepath.Join(v.dir, de.Name())
		item := catalog.Stat(path)

		entry := Entry{
			Name:     de.Name(),
			Original: original,
			Path:     path,
			Deleted:  deleted,
			Size:     item.Size,
			Kind:     item.Kind,
		}
		if item.Kind == catalog.Dir {
			entry.Size = treeSize(path)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Deleted.Equal(entries[j].Deleted) {
			return entries[i].Deleted.Before(entries[j].Deleted)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Find returns the vault entry called name.
func (v *Vault) Find(name string) (Entry, error) {
	entries, err := v.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fxerr.IOPath(filepath.Join(v.dir, name), os.ErrNotExist)
}

// Empty permanently removes entries deleted before the given time; a zero
// time removes everything. It returns how many entries were removed.
func (v *Vault) Empty(before time.Time) (int, error) {
	entries, err := v.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if !before.IsZero() && (e.Deleted.IsZero() || !e.Deleted.Before(before)) {
			continue
		}
		if err := os.RemoveAll(e.Path); err != nil {
			return removed, fxerr.Remove(e.Path, err)
		}
		removed++
	}

	v.logger.Info().Int("removed", removed).Msg("emptied trash")
	return removed, nil
}

func treeSize(root string) int64 {
	steps, err := Walk(root)
	if err != nil {
		return 0
	}
	var total int64
	for _, s := range steps {
		if s.Kind != catalog.File {
			continue
		}
		if info, err := os.Lstat(filepath.Join(root, s.Rel)); err == nil {
			total += info.Size()
		}
	}
	return total
}
