// Package fsutil provides the filesystem operations used to materialize projects.
//
// Key functionality:
//   - Tree copy from an fs.FS onto disk: CopyTree, CopyFile
//   - File writing: WriteFile, WriteIfChanged
//   - Path operations: ExpandHomePath, Exists, IsEmptyDir
//
// Subpackages:
//   - mutate: targeted text and manifest rewrites applied after a copy
//   - materializer: blueprint + overlay + mutations for one service
package fsutil
