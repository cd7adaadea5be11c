package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvPlatform, "")
	t.Setenv(EnvRepoPath, "")
	require.NoError(t, os.Unsetenv(EnvPlatform))
	require.NoError(t, os.Unsetenv(EnvRepoPath))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ".sggit.json")

	s := &Settings{Platform: platform.Linux, RepoPath: filepath.Join(dir, "repo")}
	require.NoError(t, s.Save(filesystem.NewOS(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"platform": "linux"`)
	assert.Contains(t, string(raw), `"repo_path"`)

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadNormalizesPlatform(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".sggit.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"platform": " Darwin ", "repo_path": "/tmp/repo"}`), 0644))

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, platform.MacOS, loaded.Platform)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "absent.json"), nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsNotFound))
		assert.Contains(t, err.Error(), "sggit init")
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"platform": `), 0644))
		_, err := Load(path, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("empty repo path", func(t *testing.T) {
		path := filepath.Join(dir, "norepo.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"platform": "linux", "repo_path": ""}`), 0644))
		_, err := Load(path, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	})

	t.Run("invalid platform", func(t *testing.T) {
		path := filepath.Join(dir, "badplatform.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"platform": "no spaces", "repo_path": "/r"}`), 0644))
		_, err := Load(path, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	})

	t.Run("strict parser", func(t *testing.T) {
		path := filepath.Join(dir, "custom.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"platform": "work-laptop", "repo_path": "/r"}`), 0644))
		_, err := Load(path, platform.NewParser(nil, true))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))

		loaded, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, platform.Platform("work-laptop"), loaded.Platform)
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sggit.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"platform": "linux", "repo_path": "/from/file"}`), 0644))

	t.Setenv(EnvPlatform, "macos")
	t.Setenv(EnvRepoPath, "/from/env")

	loaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, platform.MacOS, loaded.Platform)
	assert.Equal(t, "/from/env", loaded.RepoPath)

	loaded, err = Load(filepath.Join(dir, "absent.json"), nil)
	require.NoError(t, err, "complete env settings do not need a file")
	assert.Equal(t, "/from/env", loaded.RepoPath)
}
