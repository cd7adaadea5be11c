package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	mem := afero.NewMemMapFs()
	fsys := NewAferoFS(mem)
	require.NoError(t, fsys.MkdirAll("/repo", 0755))

	require.NoError(t, WriteFileAtomic(fsys, "/repo/store.json", []byte("one"), 0600))
	require.NoError(t, WriteFileAtomic(fsys, "/repo/store.json", []byte("two"), 0644))

	got, err := fsys.ReadFile("/repo/store.json")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	info, err := fsys.Stat("/repo/store.json")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())

	entries, err := afero.ReadDir(mem, "/repo")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file may be left behind")
}

// renameFailFS fails every rename, leaving the temp file for cleanup.
type renameFailFS struct{ afero.Fs }

func (renameFailFS) Rename(string, string) error { return errors.New("rename refused") }

func TestWriteFileAtomicCleansUpOnFailure(t *testing.T) {
	mem := afero.NewMemMapFs()
	fsys := NewAferoFS(renameFailFS{mem})
	require.NoError(t, mem.MkdirAll("/repo", 0755))
	require.NoError(t, afero.WriteFile(mem, "/repo/store.json", []byte("original"), 0644))

	err := WriteFileAtomic(fsys, "/repo/store.json", []byte("new"), 0644)
	require.Error(t, err)

	got, err := afero.ReadFile(mem, "/repo/store.json")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	entries, err := afero.ReadDir(mem, "/repo")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
