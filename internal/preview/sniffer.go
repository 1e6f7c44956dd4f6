package preview

import "github.com/gabriel-vasile/mimetype"

// Sniffer decides from a file's leading bytes whether it is text.
type Sniffer interface {
	IsText(head []byte) bool
}

// MimeSniffer detects the content type with mimetype and accepts anything
// that descends from text/plain (json, xml, csv, source files...).
type MimeSniffer struct{}

func (MimeSniffer) IsText(head []byte) bool {
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// SnifferFunc adapts a plain function to Sniffer.
type SnifferFunc func([]byte) bool

func (f SnifferFunc) IsText(head []byte) bool {
	return f(head)
}
