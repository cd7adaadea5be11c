package filesystem

import (
	"io/fs"
	"os"
	"time"

	"github.com/Duckilicious/sggit/pkg/types"
)

// osFS implements types.FS on top of the os package
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error)  { return os.Stat(name) }
func (o *osFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (o *osFS) ReadFile(name string) ([]byte, error)   { return os.ReadFile(name) }

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(name, mode)
}

func (o *osFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

func (o *osFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}
