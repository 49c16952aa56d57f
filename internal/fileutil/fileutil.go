// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants. Generated sites are served as-is, so
// everything is world-readable.
const (
	DirPermissions  = 0o755
	FilePermissions = 0o644
)

// ErrUnsafeOutputDir is returned when a directory that is about to be wiped
// is empty, the filesystem root, or contains the working directory.
var ErrUnsafeOutputDir = errors.New("refusing to reset directory")

// ResetDir deletes dir and everything below it, then recreates it empty.
// A missing dir is not an error.
func ResetDir(dir string) error {
	if err := checkResettable(dir); err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func checkResettable(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty path", ErrUnsafeOutputDir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeOutputDir, err)
	}
	if filepath.Dir(abs) == abs {
		return fmt.Errorf("%w: %s is a filesystem root", ErrUnsafeOutputDir, abs)
	}

	// Wiping the working directory or one of its parents would take the
	// sources down with the output.
	if wd, err := os.Getwd(); err == nil && IsPathUnderDir(wd, abs) {
		return fmt.Errorf("%w: %s contains the working directory", ErrUnsafeOutputDir, abs)
	}
	return nil
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, FilePermissions); err != nil { // #nosec G306 -- site output is public
		return err
	}
	return nil
}

// IsPathUnderDir reports whether path equals dir or lies below it.
// Both arguments are cleaned; callers pass absolute paths.
func IsPathUnderDir(path, dir string) bool {
	cleanPath := filepath.Clean(path)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "site" -> false (name)
//   - "./site.yaml" -> true (relative path)
//   - "/etc/labsite/site.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
