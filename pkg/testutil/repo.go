package testutil

import (
	"fmt"
	"path/filepath"
)

// InitRepo sets up what `sggit init` leaves behind without going through the
// command: a settings file naming platform and RepoDir, a git repository and
// an empty committed mapping file. Only meaningful for EnvIsolated; the
// caller is expected to have called RequireGit and SetGitIdentity.
func (env *TestEnvironment) InitRepo(platform string) {
	env.t.Helper()
	if env.Type != EnvIsolated {
		env.t.Fatalf("InitRepo needs an isolated environment")
	}

	env.WriteFile(env.SettingsPath,
		fmt.Sprintf("{\n  \"platform\": %q,\n  \"repo_path\": %q\n}\n", platform, env.RepoDir))

	if err := env.FS.MkdirAll(env.RepoDir, 0755); err != nil {
		env.t.Fatalf("Failed to create repository %s: %v", env.RepoDir, err)
	}
	Git(env.t, env.RepoDir, "init", "--quiet")
	env.WriteFile(filepath.Join(env.RepoDir, "repo_config.json"), "{\n  \"files\": []\n}\n")
	Git(env.t, env.RepoDir, "add", "repo_config.json")
	Git(env.t, env.RepoDir, "commit", "--quiet", "-m", "init")
}
