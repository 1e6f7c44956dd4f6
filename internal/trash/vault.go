// Package trash implements the vault that deleted items are moved into.
// Every top-level entry is named "<unix-seconds>_<basename>" and nothing is
// removed from the source until its copy has succeeded.
package trash

import (
	"os"
	"path/filepath"
	"time"

	"github.com/otiai10/copy"
	"github.com/rs/zerolog"

	"github.com/Paintersrp/fx/internal/catalog"
	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/progress"
)

const defaultEvery = 50

type Options struct {
	// Every is how many walk steps pass between progress updates.
	Every    int
	Reporter progress.Reporter
	Logger   zerolog.Logger
	Now      func() time.Time
}

type Vault struct {
	dir      string
	every    int
	reporter progress.Reporter
	logger   zerolog.Logger
	now      func() time.Time
}

// New opens the vault at dir, creating it when missing.
func New(dir string, opts Options) (*Vault, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fxerr.IOPath(dir, err)
	}

	v := &Vault{
		dir:      dir,
		every:    opts.Every,
		reporter: opts.Reporter,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if v.every < 1 {
		v.every = defaultEvery
	}
	if v.reporter == nil {
		v.reporter = progress.NoOp{}
	}
	if v.now == nil {
		v.now = time.Now
	}
	return v, nil
}

func (v *Vault) Dir() string {
	return v.dir
}

// SetReporter swaps the progress sink, e.g. a bar for CLI commands.
func (v *Vault) SetReporter(r progress.Reporter) {
	if r == nil {
		r = progress.NoOp{}
	}
	v.reporter = r
}

func copyOptions() copy.Options {
	return copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		PreserveTimes: true,
	}
}

// Delete moves item into the vault and returns its vault path. A symlink
// whose target is gone is removed outright and "" is returned, meaning the
// item cannot be restored.
func (v *Vault) Delete(item catalog.Item) (string, error) {
	info, err := os.Lstat(item.Path)
	if err != nil {
		return "", fxerr.Remove(item.Path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if _, err := os.Stat(item.Path); err != nil {
			if err := os.Remove(item.Path); err != nil {
				return "", fxerr.Remove(item.Path, err)
			}
			v.logger.Info().Str("path", item.Path).Msg("removed broken symlink")
			return "", nil
		}
	}

	taken, err := namesIn(v.dir)
	if err != nil {
		return "", fxerr.IOPath(v.dir, err)
	}
	name := UniqueName(TrashName(filepath.Base(item.Path), v.now()), taken)
	dst := filepath.Join(v.dir, name)

	if info.IsDir() {
		if err := v.copyTree(item.Path, dst, "delete "+info.Name()); err != nil {
			return "", err
		}
		if err := os.RemoveAll(item.Path); err != nil {
			return "", fxerr.Remove(item.Path, err)
		}
	} else {
		if err := copy.Copy(item.Path, dst, copyOptions()); err != nil {
			return "", fxerr.Put(dst, err)
		}
		if err := os.Remove(item.Path); err != nil {
			return "", fxerr.Remove(item.Path, err)
		}
	}

	v.logger.Info().Str("path", item.Path).Str("trash", dst).Msg("moved to trash")
	return dst, nil
}

// Restore copies a vault entry back into targetDir under its original name,
// made unique against targetDir. The vault copy is left in place.
func (v *Vault) Restore(trashPath, targetDir string) (string, error) {
	return v.put(trashPath, StripPrefix(filepath.Base(trashPath)), targetDir)
}

// RestoreAs is Restore with the original name supplied by the caller. A
// vault name that needed a collision suffix no longer carries the name the
// item was deleted under.
func (v *Vault) RestoreAs(trashPath, name, targetDir string) (string, error) {
	return v.put(trashPath, name, targetDir)
}

// Put copies src into targetDir under a collision-free name.
func (v *Vault) Put(src, targetDir string) (string, error) {
	return v.put(src, filepath.Base(src), targetDir)
}

func (v *Vault) put(src, name, targetDir string) (string, error) {
	info, err := os.Lstat(src)
	if err != nil {
		return "", fxerr.Put(src, err)
	}

	taken, err := namesIn(targetDir)
	if err != nil {
		return "", fxerr.IOPath(targetDir, err)
	}
	dst := filepath.Join(targetDir, UniqueName(name, taken))

	if info.IsDir() {
		if err := v.copyTree(src, dst, "put "+name); err != nil {
			return "", err
		}
	} else if err := copy.Copy(src, dst, copyOptions()); err != nil {
		return "", fxerr.Put(dst, err)
	}

	v.logger.Info().Str("src", src).Str("dst", dst).Msg("put item")
	return dst, nil
}

// copyTree recreates the directory src at dst one walk step at a time,
// reporting progress every v.every steps. A failure leaves whatever was
// already copied in place.
func (v *Vault) copyTree(src, dst, description string) error {
	steps, err := Walk(src)
	if err != nil {
		return fxerr.Put(src, err)
	}

	rootInfo, err := os.Stat(src)
	if err != nil {
		return fxerr.Put(src, err)
	}
	if err := os.MkdirAll(dst, rootInfo.Mode().Perm()|0o700); err != nil {
		return fxerr.Put(dst, err)
	}

	total := int64(len(steps))
	v.reporter.Start(total, description)
	defer v.reporter.Finish()

	for i, step := range steps {
		from := filepath.Join(src, step.Rel)
		to := filepath.Join(dst, step.Rel)

		if step.Kind == catalog.Dir {
			if err := os.MkdirAll(to, step.Mode.Perm()|0o700); err != nil {
				return fxerr.Put(to, err)
			}
		} else if err := copy.Copy(from, to, copyOptions()); err != nil {
			return fxerr.Put(to, err)
		}

		if (i+1)%v.every == 0 {
			v.reporter.Update(int64(i + 1))
		}
	}
	v.reporter.Update(total)

	// Directory times change as children are written, so they are applied
	// deepest first once everything is in place.
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.Kind != catalog.Dir {
			continue
		}
		v.applyDirMeta(filepath.Join(dst, step.Rel), step.Mode.Perm(), step.ModTime)
	}
	v.applyDirMeta(dst, rootInfo.Mode().Perm(), rootInfo.ModTime())

	return nil
}

// applyDirMeta copies a directory's mode and mtime. The contents are
// already in place, so failures are logged and not returned.
func (v *Vault) applyDirMeta(path string, perm os.FileMode, modTime time.Time) {
	if err := os.Chmod(path, perm); err != nil {
		v.logger.Debug().Err(err).Str("path", path).Msg("failed to copy directory mode")
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		v.logger.Debug().Err(err).Str("path", path).Msg("failed to copy directory times")
	}
}
