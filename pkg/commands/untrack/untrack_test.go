package untrack

import (
	"context"
	"testing"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/mapping"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/Duckilicious/sggit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setup tracks x.txt on linux and macos with a repo copy in place.
func setup(t *testing.T) *testutil.TestEnvironment {
	t.Helper()
	testutil.RequireGit(t)
	testutil.SetGitIdentity(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.InitRepo("linux")

	store := mapping.New()
	require.NoError(t, store.AddBinding("x.txt", platform.Linux, env.External("x.txt")))
	require.NoError(t, store.AddBinding("x.txt", platform.MacOS, "/Users/me/x.txt"))
	require.NoError(t, store.AddBinding("y.txt", platform.Linux, env.External("y.txt")))
	require.NoError(t, store.Save(env.FS, env.RepoDir))
	env.WriteFile(env.Repo("x.txt"), "Hello")
	env.WriteFile(env.Repo("y.txt"), "Bye")
	env.WriteFile(env.External("x.txt"), "Hello")
	return env
}

func load(t *testing.T, env *testutil.TestEnvironment) *mapping.Store {
	t.Helper()
	store, err := mapping.Load(env.FS, env.RepoDir)
	require.NoError(t, err)
	return store
}

func TestUntrack(t *testing.T) {
	t.Run("other platforms keep the artifact", func(t *testing.T) {
		env := setup(t)

		result, err := Untrack(context.Background(), UntrackOptions{RepoPath: "x.txt"})
		require.NoError(t, err)
		assert.Equal(t, "still tracked on other platforms", result.Files[0].Detail)

		a, ok := load(t, env).Find("x.txt")
		require.True(t, ok)
		assert.Len(t, a.Platforms, 1)
		assert.True(t, env.Exists(env.Repo("x.txt")))
		assert.True(t, env.Exists(env.External("x.txt")))
	})

	t.Run("last binding deletes the repo copy", func(t *testing.T) {
		env := setup(t)

		_, err := Untrack(context.Background(), UntrackOptions{RepoPath: "y.txt"})
		require.NoError(t, err)

		_, ok := load(t, env).Find("y.txt")
		assert.False(t, ok)
		assert.False(t, env.Exists(env.Repo("y.txt")))
	})

	t.Run("keep file", func(t *testing.T) {
		env := setup(t)

		_, err := Untrack(context.Background(), UntrackOptions{RepoPath: "y.txt", KeepFile: true})
		require.NoError(t, err)
		assert.True(t, env.Exists(env.Repo("y.txt")))
	})

	t.Run("all platforms", func(t *testing.T) {
		env := setup(t)

		_, err := Untrack(context.Background(), UntrackOptions{RepoPath: "x.txt", All: true})
		require.NoError(t, err)

		_, ok := load(t, env).Find("x.txt")
		assert.False(t, ok)
		assert.False(t, env.Exists(env.Repo("x.txt")))
		assert.True(t, env.Exists(env.External("x.txt")))
	})

	t.Run("unknown repo path", func(t *testing.T) {
		setup(t)

		_, err := Untrack(context.Background(), UntrackOptions{RepoPath: "nope.txt"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("not bound on this platform", func(t *testing.T) {
		env := setup(t)
		store := load(t, env)
		_, err := store.RemoveBinding("x.txt", platform.Linux)
		require.NoError(t, err)
		require.NoError(t, store.Save(env.FS, env.RepoDir))

		_, err = Untrack(context.Background(), UntrackOptions{RepoPath: "x.txt"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}
