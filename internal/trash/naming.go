package trash

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const copiedSuffix = "_copied"

// UniqueName returns name, or the first free variant of it obtained by
// appending "_copied" to the stem. Each retry lengthens the name, so the
// loop terminates for any finite set.
func UniqueName(name string, taken map[string]bool) string {
	for taken[name] {
		stem, ext := splitName(name)
		name = stem + copiedSuffix + ext
	}
	return name
}

// splitName treats a leading dot as part of the stem, so ".bashrc" has no
// extension.
func splitName(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// TrashName is the vault name for an item deleted at now.
func TrashName(name string, now time.Time) string {
	return strconv.FormatInt(now.Unix(), 10) + "_" + name
}

// StripPrefix removes the "<unix-seconds>_" prefix of a vault name. Names
// without the prefix are returned unchanged.
func StripPrefix(name string) string {
	_, rest, ok := splitPrefix(name)
	if !ok {
		return name
	}
	return rest
}

func splitPrefix(name string) (time.Time, string, bool) {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(name)-1 || name[i] != '_' {
		return time.Time{}, name, false
	}
	secs, err := strconv.ParseInt(name[:i], 10, 64)
	if err != nil {
		return time.Time{}, name, false
	}
	return time.Unix(secs, 0), name[i+1:], true
}

// namesIn returns the entry names of dir; a missing dir has none.
func namesIn(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, err
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	return names, nil
}
