// pkg/testutil/environment.go
// DEPENDENCIES: filesystem, types, afero
// PURPOSE: Orchestrate isolated test environments

package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // afero in-memory filesystem, no real files
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment
type TestEnvironment struct {
	// Core paths
	Root         string
	HomeDir      string
	RepoDir      string
	ExternalDir  string
	SettingsPath string
	XDGConfig    string
	XDGState     string

	// Filesystem the environment lives on
	FS types.FS

	// Type of environment
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. Environment variables
// are only redirected for EnvIsolated, since in-memory paths are not
// visible to the OS.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	QuietLogs(t)
	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual"
		env.FS = filesystem.NewAferoFS(afero.NewMemMapFs())
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.HomeDir = filepath.Join(env.Root, "home")
	env.RepoDir = filepath.Join(env.HomeDir, "sggit")
	env.ExternalDir = filepath.Join(env.Root, "external")
	env.SettingsPath = filepath.Join(env.HomeDir, ".sggit.json")
	env.XDGConfig = filepath.Join(env.HomeDir, ".config")
	env.XDGState = filepath.Join(env.HomeDir, ".local", "state")

	for _, dir := range []string{env.HomeDir, env.ExternalDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	if envType == EnvIsolated {
		t.Setenv("HOME", env.HomeDir)
		t.Setenv("XDG_CONFIG_HOME", env.XDGConfig)
		t.Setenv("XDG_STATE_HOME", env.XDGState)
		t.Setenv("SGGIT_SETTINGS", env.SettingsPath)
		t.Setenv("SGGIT_CONFIG_DIR", filepath.Join(env.XDGConfig, "sggit"))
		t.Setenv("NO_COLOR", "1")
		unsetenv(t, "SGGIT_PLATFORM", "SGGIT_REPO_PATH")
	}

	return env
}

// unsetenv removes variables for the duration of the test.
func unsetenv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		if err := os.Unsetenv(name); err != nil {
			t.Fatalf("Failed to unset %s: %v", name, err)
		}
	}
}

// External returns a path under the external directory.
func (env *TestEnvironment) External(rel string) string {
	return filepath.Join(env.ExternalDir, filepath.FromSlash(rel))
}

// Repo returns a path under the repository.
func (env *TestEnvironment) Repo(rel string) string {
	return filepath.Join(env.RepoDir, filepath.FromSlash(rel))
}

// WriteFile writes content to path, creating parent directories.
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path.
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists.
func (env *TestEnvironment) Exists(path string) bool {
	_, err := env.FS.Stat(path)
	return err == nil
}

// SetModTime sets both access and modification time of path.
func (env *TestEnvironment) SetModTime(path string, mtime time.Time) {
	env.t.Helper()
	if err := env.FS.Chtimes(path, mtime, mtime); err != nil {
		env.t.Fatalf("Failed to set times on %s: %v", path, err)
	}
}

// ModTime returns the modification time of path.
func (env *TestEnvironment) ModTime(path string) time.Time {
	env.t.Helper()
	info, err := env.FS.Stat(path)
	if err != nil {
		env.t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return info.ModTime()
}

// Touch advances the modification time of path by d relative to its
// current value.
func (env *TestEnvironment) Touch(path string, d time.Duration) {
	env.t.Helper()
	env.SetModTime(path, env.ModTime(path).Add(d))
}

// FileTree represents a directory structure for testing
type FileTree map[string]interface{}

// WithFileTree creates a file tree under basePath
func (env *TestEnvironment) WithFileTree(basePath string, tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, basePath, tree)
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", filepath.Dir(fullPath), err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
