// Package fsutil provides file system helpers for walking target roots.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// IsDir reports whether path exists and is a directory. A missing path is
// not an error; any other stat failure is returned.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// RegularFiles recursively collects every regular file under root, in lexical
// order. The root itself may be a symbolic link to a directory; below the
// root, symbolic links are never followed and links to files are skipped.
// Devices, sockets and pipes are ignored. Returned paths are joined onto root
// as given, not onto its resolved target.
func RegularFiles(root string) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.Join(root, rel))
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}
