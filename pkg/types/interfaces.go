package types

import (
	"io/fs"
	"time"
)

// FS is the filesystem surface the mapping store, copy engine and sync
// procedure need. filesystem.NewOS and filesystem.NewAferoFS implement it.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Metadata
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
}
