// Package fsutil holds small filesystem helpers shared by the CLI and the
// model registry.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome rewrites a leading "~" or "~/" to the current user's home
// directory. Any other path, including "~user" forms, passes through
// untouched.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// PathExists reports whether path can be observed at all. Errors other than
// not-exist (permission, for one) count as existing.
func PathExists(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return !errors.Is(err, fs.ErrNotExist)
	}
	return true
}
