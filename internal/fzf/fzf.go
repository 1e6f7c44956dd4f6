package fzf

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/maruel/natural"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/pathutil"
)

// ErrNoSelection is returned when the finder is aborted.
var ErrNoSelection = errors.New("no directory selected")

// FuzzyFinder picks a directory below root.
type FuzzyFinder struct {
	root       string
	Header     string
	ShowHidden bool
	dirs       []string
}

func NewFuzzyFinder(root, header string) *FuzzyFinder {
	return &FuzzyFinder{root: pathutil.NormalizePath(root), Header: header}
}

// Collect lists every directory below root relative to it, with forward
// slashes, in natural order. Unreadable directories are skipped.
func (f *FuzzyFinder) Collect() ([]string, error) {
	var (
		mu   sync.Mutex
		dirs []string
	)

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}

		rel, rerr := pathutil.Relative(f.root, path)
		if rerr != nil || rel == "." {
			return nil
		}
		if !f.ShowHidden && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		mu.Lock()
		dirs = append(dirs, rel)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing directories: %w", err)
	}

	sort.Slice(dirs, func(i, j int) bool { return natural.Less(dirs[i], dirs[j]) })
	f.dirs = dirs
	return dirs, nil
}

// Run collects and opens the finder; it returns the absolute path of the
// chosen directory.
func (f *FuzzyFinder) Run(query string) (string, error) {
	if _, err := f.Collect(); err != nil {
		return "", err
	}
	if len(f.dirs) == 0 {
		return "", fmt.Errorf("no directories below %s", f.root)
	}

	idx, err := f.fuzzySelectDir(query)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("error selecting directory: %w", err)
	}

	return f.Resolve(idx), nil
}

// Resolve maps an index from the last Collect to an absolute path.
func (f *FuzzyFinder) Resolve(idx int) string {
	return filepath.Join(f.root, filepath.FromSlash(f.dirs[idx]))
}

func (f *FuzzyFinder) fuzzySelectDir(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderListing),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	return fuzzyfinder.Find(f.dirs, func(i int) string {
		return f.dirs[i] + "/"
	}, options...)
}

func (f *FuzzyFinder) renderListing(i, _, h int) string {
	if i == -1 {
		return ""
	}
	return f.Listing(i, h)
}

// Listing is the preview for the directory at idx: its entries, dirs
// first, at most limit lines.
func (f *FuzzyFinder) Listing(idx, limit int) string {
	items, err := catalog.Rebuild(f.Resolve(idx), catalog.SortName, f.ShowHidden)
	if err != nil {
		return "Error reading directory"
	}
	if len(items) == 0 {
		return "(empty)"
	}

	names := catalog.Names(items)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return strings.Join(names, "\n")
}
