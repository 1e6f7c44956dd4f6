// Package catalog lists a directory into the ordered item sequence shown by
// the browser: directories first, each partition sorted by the active key.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"github.com/Paintersrp/fx/internal/fxerr"
)

// SortKey selects the per-partition order of a catalog.
type SortKey int

const (
	SortName SortKey = iota
	SortTime
)

func (k SortKey) String() string {
	if k == SortTime {
		return "Time"
	}
	return "Name"
}

// ParseSortKey accepts the session and flag spellings of a sort key.
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortName, true
	case "time":
		return SortTime, true
	default:
		return SortName, false
	}
}

// Toggle flips between name and time order.
func (k SortKey) Toggle() SortKey {
	if k == SortName {
		return SortTime
	}
	return SortName
}

// Rebuild reads dir and returns its catalog. Unreadable per-entry metadata
// yields a degraded item instead of failing the listing.
func Rebuild(dir string, key SortKey, showHidden bool) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fxerr.IOPath(dir, err)
	}

	var dirs, files []Item
	for _, entry := range entries {
		name := entry.Name()
		if !showHidden && isHidden(name) {
			continue
		}

		item := Stat(filepath.Join(dir, name))
		if item.Kind == Dir {
			dirs = append(dirs, item)
		} else {
			files = append(files, item)
		}
	}

	sortItems(dirs, key)
	sortItems(files, key)

	return append(dirs, files...), nil
}

// Stat builds a single item from path. Symlinks are resolved once to learn
// whether they point at a directory.
func Stat(path string) Item {
	name := filepath.Base(path)
	item := Item{
		Name:   name,
		Path:   path,
		Hidden: isHidden(name),
	}

	info, err := os.Lstat(path)
	if err != nil {
		item.Degraded = true
		item.Ext = extension(name)
		return item
	}

	item.ModTime = info.ModTime()
	item.Mode = info.Mode()
	item.HasMode = true

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		item.Kind = Symlink
		item.Ext = extension(name)
		if link, err := os.Readlink(path); err == nil {
			item.Link = link
		}
		if target, err := os.Stat(path); err == nil {
			if target.IsDir() {
				resolved, rerr := filepath.EvalSymlinks(path)
				if rerr != nil {
					resolved = path
				}
				item.SymlinkDir = resolved
				item.Ext = ""
			} else {
				item.Size = target.Size()
			}
		}
	case info.IsDir():
		item.Kind = Dir
	default:
		item.Kind = File
		item.Size = info.Size()
		item.Ext = extension(name)
	}

	return item
}

// Children lists dir in name order for directory previews.
func Children(dir string, showHidden bool) ([]Item, error) {
	return Rebuild(dir, SortName, showHidden)
}

// IndexOf returns the position of the item called name, or -1.
func IndexOf(items []Item, name string) int {
	for i := range items {
		if items[i].Name == name {
			return i
		}
	}
	return -1
}

// Names returns item names with a trailing slash on directories.
func Names(items []Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		if item.Kind == Dir {
			names[i] = item.Name + "/"
		} else {
			names[i] = item.Name
		}
	}
	return names
}

func sortItems(items []Item, key SortKey) {
	switch key {
	case SortTime:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].ModTime, items[j].ModTime
			switch {
			case a.IsZero() != b.IsZero():
				return b.IsZero()
			case !a.Equal(b):
				return a.After(b)
			default:
				return natural.Less(items[i].Name, items[j].Name)
			}
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return natural.Less(items[i].Name, items[j].Name)
		})
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
