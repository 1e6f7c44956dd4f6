package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/fx/internal/fxerr"
	"github.com/Paintersrp/fx/internal/pathutil"
	"github.com/Paintersrp/fx/internal/trash"
)

// ResolvePath turns a CLI argument into an absolute, existing path.
// Relative arguments are taken from the working directory.
func ResolvePath(arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", fmt.Errorf("a path argument is required")
	}

	resolved := pathutil.NormalizePath(pathutil.ExpandHome(arg))
	if !filepath.IsAbs(resolved) {
		abs, err := filepath.Abs(resolved)
		if err != nil {
			return "", fxerr.IOPath(arg, err)
		}
		resolved = abs
	}

	if _, err := os.Lstat(resolved); err != nil {
		return "", fxerr.IOPath(resolved, err)
	}
	return resolved, nil
}

// ResolveTrashEntry accepts a trash entry name or a path inside the vault
// and returns the entry's absolute path.
func ResolveTrashEntry(v *trash.Vault, arg string) (string, error) {
	if v == nil {
		return "", errors.New("trash is not initialized")
	}
	if strings.TrimSpace(arg) == "" {
		return "", fmt.Errorf("a trash entry is required")
	}

	vaultDir := v.Dir()
	var resolved string
	if filepath.IsAbs(arg) || strings.ContainsRune(pathutil.NormalizePath(arg), filepath.Separator) {
		abs, err := filepath.Abs(pathutil.NormalizePath(pathutil.ExpandHome(arg)))
		if err != nil {
			return "", fxerr.IOPath(arg, err)
		}
		resolved = abs
	} else {
		entry, err := v.Find(arg)
		if err != nil {
			return "", err
		}
		resolved = entry.Path
	}

	if err := ensureWithinTrash(vaultDir, resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

func ensureWithinTrash(vaultDir, resolved string) error {
	rel, err := pathutil.Relative(vaultDir, resolved)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q relative to trash %q: %w", resolved, vaultDir, err)
	}

	if rel == "." {
		return fmt.Errorf("path %q is the trash directory itself", resolved)
	}
	if !pathutil.Within(vaultDir, resolved) {
		return fmt.Errorf("path %q is outside the trash %q", resolved, vaultDir)
	}
	if strings.Contains(rel, "/") {
		return fmt.Errorf("path %q is not a top-level trash entry", resolved)
	}

	return nil
}
