package fsutil

import "errors"

// ErrEmptyOutputPath is returned when a write targets an empty path.
var ErrEmptyOutputPath = errors.New("output path cannot be empty")

// ErrDestinationNotEmpty is returned when a tree is copied into a non-empty directory without overwrite.
var ErrDestinationNotEmpty = errors.New("destination is not empty")

// ErrNotDirectory is returned when a copy source or destination is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrPathOutsideBase is returned when a source entry would be written outside the destination.
var ErrPathOutsideBase = errors.New("invalid path: file is outside base directory")
