package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// CollisionPolicy decides what a copy does with files already present at the destination.
type CollisionPolicy int

const (
	// FailIfNotEmpty refuses to copy into a non-empty destination directory.
	FailIfNotEmpty CollisionPolicy = iota
	// Overwrite replaces existing files and keeps unrelated ones.
	Overwrite
)

// CopyTree copies the directory root of src into dst.
// The executable bit of source files is preserved when src reports it.
func CopyTree(src fs.FS, root, dst string, policy CollisionPolicy) error {
	info, err := fs.Stat(src, root)
	if err != nil {
		return fmt.Errorf("failed to read source %s: %w", root, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	if policy == FailIfNotEmpty {
		empty, emptyErr := IsEmptyDir(dst)
		if emptyErr != nil {
			return emptyErr
		}

		if !empty {
			return fmt.Errorf("%w: %s", ErrDestinationNotEmpty, dst)
		}
	}

	err = fs.WalkDir(src, root, func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		target, targetErr := destination(root, name, dst)
		if targetErr != nil {
			return targetErr
		}

		if entry.IsDir() {
			mkErr := os.MkdirAll(target, DirPerm)
			if mkErr != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, mkErr)
			}

			return nil
		}

		return CopyFile(src, name, target)
	})
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", root, dst, err)
	}

	return nil
}

// CopyFile copies the file name of src to the native path target, replacing it if present.
func CopyFile(src fs.FS, name, target string) error {
	in, err := src.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}

	defer func() { _ = in.Close() }()

	perm := FilePerm

	info, err := in.Stat()
	if err == nil && info.Mode().Perm()&0o111 != 0 {
		perm = ExecPerm
	}

	err = os.MkdirAll(filepath.Dir(target), DirPerm)
	if err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}

	//nolint:gosec // target is derived from a validated destination
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	_, err = io.Copy(out, in)
	closeErr := out.Close()

	if err != nil {
		return fmt.Errorf("failed to copy %s: %w", name, err)
	}

	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", target, closeErr)
	}

	return nil
}

func destination(root, name, dst string) (string, error) {
	rel := name

	switch {
	case name == root:
		rel = ""
	case root != ".":
		rel = strings.TrimPrefix(name, root+"/")
	}

	if rel == "" {
		return dst, nil
	}

	if !fs.ValidPath(rel) || strings.HasPrefix(path.Clean(rel), "..") {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideBase, name)
	}

	return filepath.Join(dst, filepath.FromSlash(rel)), nil
}
