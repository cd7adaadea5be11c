package hashutil

import (
	"testing"

	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFileChecksum(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/data", 0755))
	require.NoError(t, fsys.WriteFile("/data/a.txt", []byte("Hello, World!\n"), 0644))
	require.NoError(t, fsys.WriteFile("/data/b.txt", []byte("Hello, World!\n"), 0644))
	require.NoError(t, fsys.WriteFile("/data/empty", nil, 0644))

	checksum, err := CalculateFileChecksum(fsys, "/data/a.txt")
	require.NoError(t, err)
	assert.Contains(t, checksum, "sha256:")
	assert.Len(t, checksum, 71) // "sha256:" + 64 hex chars

	same, err := CalculateFileChecksum(fsys, "/data/b.txt")
	require.NoError(t, err)
	assert.Equal(t, checksum, same)

	empty, err := CalculateFileChecksum(fsys, "/data/empty")
	require.NoError(t, err)
	assert.Equal(t, "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", empty)

	_, err = CalculateFileChecksum(fsys, "/non/existent/file")
	assert.Error(t, err)
}
