package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// Resolve expands '~' and anchors relative paths at base. Absolute paths and
// an empty base leave path untouched apart from home expansion.
func Resolve(base, path string) (string, error) {
	p, err := ExpandHome(path)
	if err != nil || p == "" {
		return p, err
	}
	if filepath.IsAbs(p) || base == "" {
		return filepath.Clean(p), nil
	}
	return filepath.Join(base, p), nil
}

// ExecutableDir returns the directory holding the running binary, following
// symlinks so artifacts resolve next to the real install location.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if real, err := filepath.EvalSymlinks(exe); err == nil {
		exe = real
	}
	return filepath.Dir(exe), nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
