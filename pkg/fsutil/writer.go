package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return ErrEmptyOutputPath
	}

	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, DirPerm)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	perm := FilePerm

	info, err := os.Stat(path)
	if err == nil {
		perm = info.Mode().Perm()
	}

	err = os.WriteFile(path, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// WriteIfChanged writes data to an existing file only when its content differs.
// It reports whether the file was rewritten.
func WriteIfChanged(path string, data []byte) (bool, error) {
	current, err := os.ReadFile(path) //nolint:gosec // path is inside a materialization target
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if err == nil && bytes.Equal(current, data) {
		return false, nil
	}

	err = WriteFile(path, data)
	if err != nil {
		return false, err
	}

	return true, nil
}
