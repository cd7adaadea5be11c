package copier

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/testutil"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const repoRoot = "/repo"

// countingFS counts every mutating call.
type countingFS struct {
	types.FS
	writes int
}

func (c *countingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	c.writes++
	return c.FS.WriteFile(name, data, perm)
}

func (c *countingFS) MkdirAll(path string, perm fs.FileMode) error {
	c.writes++
	return c.FS.MkdirAll(path, perm)
}

func (c *countingFS) Rename(oldpath, newpath string) error {
	c.writes++
	return c.FS.Rename(oldpath, newpath)
}

func (c *countingFS) Chtimes(name string, atime, mtime time.Time) error {
	c.writes++
	return c.FS.Chtimes(name, atime, mtime)
}

func (c *countingFS) Chmod(name string, mode fs.FileMode) error {
	c.writes++
	return c.FS.Chmod(name, mode)
}

func setup(t *testing.T) (*countingFS, afero.Fs) {
	t.Helper()
	testutil.QuietLogs(t)
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll(repoRoot, 0755))
	return &countingFS{FS: filesystem.NewAferoFS(mem)}, mem
}

func writeFile(t *testing.T, mem afero.Fs, path, content string, mtime time.Time) {
	t.Helper()
	require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0640))
	require.NoError(t, mem.Chtimes(path, mtime, mtime))
}

func readFile(t *testing.T, mem afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(mem, path)
	require.NoError(t, err)
	return string(data)
}

func TestCopyToRepo(t *testing.T) {
	fsys, mem := setup(t)
	mtime := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, mem.MkdirAll("/tmp/a", 0755))
	writeFile(t, mem, "/tmp/a/x.txt", "Hello", mtime)

	pairs := []types.Pair{{RealPath: "/tmp/a/x.txt", RepoPath: "deep/nested/x.txt"}}
	result, err := New(fsys).Copy(pairs, repoRoot, types.ToRepo)
	require.NoError(t, err)
	require.NoError(t, result.Err())

	assert.Equal(t, "Hello", readFile(t, mem, "/repo/deep/nested/x.txt"))
	require.Len(t, result.Copied, 1)
	assert.Equal(t, pairs[0], result.Copied[0].Pair)
	assert.True(t, result.Copied[0].SourceModTime.Equal(mtime))
	assert.Equal(t, []string{"deep/nested/x.txt"}, result.RepoPaths())

	info, err := mem.Stat("/repo/deep/nested/x.txt")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "source mtime is preserved")
	assert.Equal(t, fs.FileMode(0640), info.Mode().Perm(), "source mode is preserved")
}

func TestCopyFromRepo(t *testing.T) {
	fsys, mem := setup(t)
	mtime := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
	writeFile(t, mem, "/repo/x.txt", "World", mtime)
	require.NoError(t, mem.MkdirAll("/tmp/a", 0755))
	writeFile(t, mem, "/tmp/a/x.txt", "Hello", mtime.Add(-time.Hour))

	pairs := []types.Pair{{RealPath: "/tmp/a/x.txt", RepoPath: "x.txt"}}
	result, err := New(fsys).Copy(pairs, repoRoot, types.FromRepo)
	require.NoError(t, err)
	require.Len(t, result.Copied, 1)

	assert.Equal(t, "World", readFile(t, mem, "/tmp/a/x.txt"))
}

func TestCopyIdentityPairIsSkippedWithoutWrites(t *testing.T) {
	fsys, mem := setup(t)
	writeFile(t, mem, "/repo/repo_config.json", "{}", time.Now())

	pairs := []types.Pair{{RealPath: "/repo/repo_config.json", RepoPath: "repo_config.json"}}
	for _, direction := range []types.Direction{types.ToRepo, types.FromRepo} {
		result, err := New(fsys).Copy(pairs, repoRoot, direction)
		require.NoError(t, err)
		assert.Empty(t, result.Copied)
		assert.Equal(t, pairs, result.Skipped)
		assert.NoError(t, result.Err())
	}
	assert.Equal(t, 0, fsys.writes)
}

func TestCopyPathPolicyViolationPerformsNoIO(t *testing.T) {
	fsys, mem := setup(t)
	writeFile(t, mem, "/tmp/ok.txt", "ok", time.Now())

	pairs := []types.Pair{
		{RealPath: "/tmp/ok.txt", RepoPath: "ok.txt"},
		{RealPath: "/tmp/evil.txt", RepoPath: "../../etc/passwd"},
	}
	result, err := New(fsys).Copy(pairs, repoRoot, types.ToRepo)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathPolicy))
	assert.Equal(t, 0, fsys.writes)

	_, statErr := mem.Stat("/repo/ok.txt")
	assert.Error(t, statErr, "valid sibling must not be copied either")
}

func TestCopyMissingSourceContinues(t *testing.T) {
	fsys, mem := setup(t)
	writeFile(t, mem, "/tmp/b.txt", "B", time.Now())

	pairs := []types.Pair{
		{RealPath: "/tmp/missing.txt", RepoPath: "a.txt"},
		{RealPath: "/tmp/b.txt", RepoPath: "b.txt"},
		{RealPath: "/tmp/also-missing.txt", RepoPath: "c.txt"},
	}
	result, err := New(fsys).Copy(pairs, repoRoot, types.ToRepo)
	require.NoError(t, err)

	require.Len(t, result.Copied, 1)
	assert.Equal(t, "b.txt", result.Copied[0].RepoPath)
	assert.Equal(t, "B", readFile(t, mem, "/repo/b.txt"))

	require.Len(t, result.Failures, 2)
	assert.Equal(t, "a.txt", result.Failures[0].Pair.RepoPath)
	assert.True(t, errors.IsErrorCode(result.Failures[0].Err, errors.ErrFileNotFound))

	combined := result.Err()
	require.Error(t, combined)
	assert.Len(t, multierr.Errors(combined), 2)
}

func TestCopySourceIsDirectory(t *testing.T) {
	fsys, mem := setup(t)
	require.NoError(t, mem.MkdirAll("/tmp/dir", 0755))

	result, err := New(fsys).Copy([]types.Pair{{RealPath: "/tmp/dir", RepoPath: "dir"}}, repoRoot, types.ToRepo)
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.True(t, errors.IsErrorCode(result.Failures[0].Err, errors.ErrCopy))
}

func TestCopyOverwritesExisting(t *testing.T) {
	fsys, mem := setup(t)
	writeFile(t, mem, "/tmp/x.txt", "new", time.Now())
	writeFile(t, mem, "/repo/x.txt", "old", time.Now().Add(time.Hour))

	result, err := New(fsys).Copy([]types.Pair{{RealPath: "/tmp/x.txt", RepoPath: "x.txt"}}, repoRoot, types.ToRepo)
	require.NoError(t, err)
	assert.Len(t, result.Copied, 1)
	assert.Equal(t, "new", readFile(t, mem, "/repo/x.txt"))
}

func TestCopyUnknownDirection(t *testing.T) {
	fsys, _ := setup(t)
	_, err := New(fsys).Copy([]types.Pair{{RealPath: "/a", RepoPath: "a"}}, repoRoot, types.Direction(9))
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCopyFromRepoWritesThroughSymlink(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	dotfiles := filepath.Join(root, "dotfiles")
	home := filepath.Join(root, "home")
	for _, dir := range []string{repo, dotfiles, home} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	target := filepath.Join(dotfiles, "vimrc")
	link := filepath.Join(home, ".vimrc")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(repo, "vimrc"), []byte("new"), 0644))

	result, err := New(filesystem.NewOS()).Copy([]types.Pair{{RealPath: link, RepoPath: "vimrc"}}, repo, types.FromRepo)
	require.NoError(t, err)
	require.Len(t, result.Copied, 1)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink, "link must survive the copy")
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestCopyFromRepoDanglingSymlinkFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.txt"), []byte("new"), 0644))
	link := filepath.Join(root, "dangling")
	if err := os.Symlink(filepath.Join(root, "missing", "x"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	result, err := New(filesystem.NewOS()).Copy([]types.Pair{{RealPath: link, RepoPath: "x.txt"}}, root, types.FromRepo)
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.True(t, errors.IsErrorCode(result.Failures[0].Err, errors.ErrFileAccess))
}
