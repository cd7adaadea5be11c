package vcs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Duckilicious/sggit/pkg/config"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (Repository, string) {
	t.Helper()
	testutil.RequireGit(t)
	testutil.SetGitIdentity(t)

	dir := filepath.Join(t.TempDir(), "repo")
	repo, err := NewGitBackend(nil).Init(context.Background(), dir)
	require.NoError(t, err)
	return repo, dir
}

func TestInitAndOpen(t *testing.T) {
	_, dir := newRepo(t)
	ctx := context.Background()
	backend := NewGitBackend(config.Default())

	repo, err := backend.Open(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Root())
	assert.True(t, backend.IsRepository(ctx, dir))

	t.Run("plain directory", func(t *testing.T) {
		plain := t.TempDir()
		_, err := backend.Open(ctx, plain)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVCSNotARepo))
	})

	t.Run("subdirectory of a repository", func(t *testing.T) {
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.MkdirAll(sub, 0755))
		_, err := backend.Open(ctx, sub)
		assert.True(t, errors.IsErrorCode(err, errors.ErrVCSNotARepo))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := backend.Open(ctx, filepath.Join(dir, "absent"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrVCSNotARepo))
	})
}

func TestStageAndCommit(t *testing.T) {
	repo, dir := newRepo(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "x.txt"), []byte("Hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("untouched"), 0644))

	staged, err := repo.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, staged)

	require.NoError(t, repo.Stage(ctx, []string{"nested/x.txt"}))
	staged, err = repo.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.True(t, staged)

	id, err := repo.Commit(ctx, "Add x\n\nbody")
	require.NoError(t, err)
	assert.Len(t, id, 40)
	assert.Equal(t, []string{"nested/x.txt"}, testutil.FilesInHead(t, dir))
	assert.Equal(t, "Add x", testutil.Git(t, dir, "log", "-1", "--format=%s"))

	entries, err := repo.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []StatusEntry{{Code: "??", Path: "other.txt"}}, entries)

	// Restaging identical content stages nothing
	require.NoError(t, repo.Stage(ctx, []string{"nested/x.txt"}))
	staged, err = repo.HasStagedChanges(ctx)
	require.NoError(t, err)
	assert.False(t, staged)
}

func TestCommitWithConfiguredIdentity(t *testing.T) {
	_, dir := newRepo(t)
	ctx := context.Background()

	cfg := config.Default()
	cfg.Commit.AuthorName = "Configured Name"
	cfg.Commit.AuthorEmail = "configured@example.com"
	t.Setenv("GIT_AUTHOR_NAME", "")
	t.Setenv("GIT_AUTHOR_EMAIL", "")
	require.NoError(t, os.Unsetenv("GIT_AUTHOR_NAME"))
	require.NoError(t, os.Unsetenv("GIT_AUTHOR_EMAIL"))

	configured, err := NewGitBackend(cfg).Open(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	require.NoError(t, configured.Stage(ctx, []string{"a.txt"}))
	_, err = configured.Commit(ctx, "identity")
	require.NoError(t, err)

	assert.Equal(t, "Configured Name <configured@example.com>", testutil.Git(t, dir, "log", "-1", "--format=%an <%ae>"))
}

func TestRun(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	require.NoError(t, repo.Run(ctx, []string{"status", "--short", "--branch"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "##")

	err := repo.Run(ctx, []string{"no-such-subcommand"}, &stdout, &stderr)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
}

func TestStageFailureIsVCSError(t *testing.T) {
	repo, _ := newRepo(t)
	err := repo.Stage(context.Background(), []string{"does-not-exist.txt"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVCS))
	assert.Contains(t, err.Error(), "does-not-exist.txt")
}

func TestParsePorcelain(t *testing.T) {
	out := " M a.txt\n?? dir/b.txt\nA  c.txt\n\n"
	assert.Equal(t, []StatusEntry{
		{Code: " M", Path: "a.txt"},
		{Code: "??", Path: "dir/b.txt"},
		{Code: "A ", Path: "c.txt"},
	}, parsePorcelain(out))
	assert.Equal(t, "?? dir/b.txt", StatusEntry{Code: "??", Path: "dir/b.txt"}.String())
}
