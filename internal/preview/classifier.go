// Package preview decides how the current item is shown in the preview pane
// and renders it.
package preview

import (
	"io"
	"os"
	"strings"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/constants"
)

var imageExtensions = map[string]bool{
	"avif": true,
	"bmp":  true,
	"gif":  true,
	"heic": true,
	"ico":  true,
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"tif":  true,
	"tiff": true,
	"webp": true,
}

// IsImageExt reports whether ext (lowercase, no dot) names an image format.
func IsImageExt(ext string) bool {
	return imageExtensions[ext]
}

type Classifier struct {
	sniffer    Sniffer
	readLimit  int64
	showHidden bool
}

func NewClassifier(sniffer Sniffer) *Classifier {
	if sniffer == nil {
		sniffer = MimeSniffer{}
	}
	return &Classifier{
		sniffer:    sniffer,
		readLimit:  constants.PreviewReadLimit,
		showHidden: true,
	}
}

// SetShowHidden controls whether directory previews list dotfiles.
func (c *Classifier) SetShowHidden(show bool) {
	c.showHidden = show
}

// Classify attaches a preview to item and returns its kind. The checks run
// in a fixed order: size, directory, image extension, content sniffing.
func (c *Classifier) Classify(item *catalog.Item) catalog.PreviewKind {
	p := &catalog.Preview{}
	if item.Preview != nil {
		p.Scroll = item.Preview.Scroll
	}
	item.Preview = p

	switch {
	case item.Size > constants.TooBigThreshold:
		p.Kind = catalog.PreviewTooBig
	case item.IsDirLike():
		entries, err := catalog.Children(item.Target(), c.showHidden)
		if err != nil {
			p.Kind = catalog.PreviewNotReadable
			break
		}
		p.Kind = catalog.PreviewDirectory
		p.Entries = entries
	case IsImageExt(item.Ext):
		p.Kind = catalog.PreviewImage
	default:
		head, err := readHead(item.Path, c.readLimit)
		if err != nil {
			p.Kind = catalog.PreviewNotReadable
			break
		}
		if !c.sniffer.IsText(head) {
			p.Kind = catalog.PreviewBinary
			break
		}
		p.Kind = catalog.PreviewText
		p.Text = expandTabs(strings.ToValidUTF8(string(head), ""))
	}

	return p.Kind
}

func readHead(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, limit))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", constants.TabWidth))
}
