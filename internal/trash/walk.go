package trash

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/Paintersrp/fx/internal/catalog"
)

// Step is one descendant of a walked directory, relative to its root.
type Step struct {
	Rel     string
	Kind    catalog.Kind
	Mode    fs.FileMode
	ModTime time.Time
}

// Walk lists every descendant of root in lexicographic path order so that
// parents always precede their children. Symlinks are reported, not
// followed.
func Walk(root string) ([]Step, error) {
	var (
		mu    sync.Mutex
		steps []Step
	)

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return rerr
		}
		if rel == "." {
			return nil
		}

		info, ierr := d.Info()
		if ierr != nil {
			return ierr
		}

		step := Step{Rel: rel, Mode: info.Mode(), ModTime: info.ModTime()}
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			step.Kind = catalog.Symlink
		case d.IsDir():
			step.Kind = catalog.Dir
		default:
			step.Kind = catalog.File
		}

		mu.Lock()
		steps = append(steps, step)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(steps, func(i, j int) bool {
		return filepath.ToSlash(steps[i].Rel) < filepath.ToSlash(steps[j].Rel)
	})
	return steps, nil
}
