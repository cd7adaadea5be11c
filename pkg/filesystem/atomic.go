package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Duckilicious/sggit/pkg/types"
)

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a truncated file. The temporary
// file is removed on failure.
func WriteFileAtomic(fsys types.FS, path string, data []byte, perm fs.FileMode) error {
	tmp := tempName(path)

	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	// WriteFile is subject to the umask
	if err := fsys.Chmod(tmp, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

func tempName(path string) string {
	return filepath.Join(filepath.Dir(path),
		fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), time.Now().UnixNano()))
}
