package fsutil

import "os"

const (
	// DirPerm is used for every directory created while materializing.
	DirPerm os.FileMode = 0o755
	// FilePerm is used for regular files.
	FilePerm os.FileMode = 0o644
	// ExecPerm is used for files that were executable in the source tree.
	ExecPerm os.FileMode = 0o755
)
