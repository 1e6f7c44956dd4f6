package catalog

import (
	"io/fs"
	"time"
)

type Kind int

const (
	File Kind = iota
	Dir
	Symlink
)

func (k Kind) String() string {
	switch k {
	case Dir:
		return "dir"
	case Symlink:
		return "symlink"
	default:
		return "file"
	}
}

// PreviewKind is how an item's content is shown in the preview pane.
type PreviewKind int

const (
	PreviewNone PreviewKind = iota
	PreviewTooBig
	PreviewDirectory
	PreviewImage
	PreviewText
	PreviewBinary
	PreviewNotReadable
)

var previewKindNames = [...]string{
	PreviewNone:        "none",
	PreviewTooBig:      "too big",
	PreviewDirectory:   "directory",
	PreviewImage:       "image",
	PreviewText:        "text",
	PreviewBinary:      "binary",
	PreviewNotReadable: "not readable",
}

func (k PreviewKind) String() string {
	if int(k) < len(previewKindNames) {
		return previewKindNames[k]
	}
	return "unknown"
}

// Preview is the transient preview state attached to an item.
type Preview struct {
	Kind    PreviewKind
	Scroll  int
	Text    string
	Entries []Item
}

// Item is one filesystem entry of the current directory.
type Item struct {
	Kind       Kind
	Name       string
	Path       string
	SymlinkDir string
	Link       string
	Size       int64
	Ext        string
	ModTime    time.Time
	Mode       fs.FileMode
	HasMode    bool
	Hidden     bool
	Degraded   bool

	Selected bool
	Matches  bool
	Preview  *Preview
}

const timestampLayout = "2006-01-02T15:04:05"

// Timestamp renders the modification time as ISO-8601 local time with
// second precision, or "" when it is unknown.
func (i Item) Timestamp() string {
	if i.ModTime.IsZero() {
		return ""
	}
	return i.ModTime.Format(timestampLayout)
}

// Permissions renders the POSIX permission bits, or "" when unknown.
func (i Item) Permissions() string {
	if !i.HasMode {
		return ""
	}
	return i.Mode.Perm().String()
}

// IsDirLike reports whether the item is a directory or a symlink resolving
// to one.
func (i Item) IsDirLike() bool {
	return i.Kind == Dir || (i.Kind == Symlink && i.SymlinkDir != "")
}

// Target is the path a directory-like item should be entered through.
func (i Item) Target() string {
	if i.Kind == Symlink && i.SymlinkDir != "" {
		return i.SymlinkDir
	}
	return i.Path
}

// DisplayName is the name as listed: directories end in "/" and symlinks
// show their link text.
func (i Item) DisplayName() string {
	switch i.Kind {
	case Dir:
		return i.Name + "/"
	case Symlink:
		if i.Link != "" {
			return i.Name + " -> " + i.Link
		}
	}
	return i.Name
}
