package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// RequireGit skips the test when no git executable is available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// SetGitIdentity isolates git from the user's global and system config and
// provides a commit identity.
func SetGitIdentity(t *testing.T) {
	t.Helper()

	global := filepath.Join(t.TempDir(), "gitconfig")
	if err := os.WriteFile(global, []byte("[init]\n\tdefaultBranch = main\n"), 0644); err != nil {
		t.Fatalf("Failed to write git config: %v", err)
	}

	t.Setenv("GIT_CONFIG_GLOBAL", global)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "sggit test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@sggit.invalid")
	t.Setenv("GIT_COMMITTER_NAME", "sggit test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@sggit.invalid")
}

// Git runs git in dir and returns trimmed stdout, failing the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// CommitCount returns the number of commits reachable from HEAD, 0 for an
// unborn branch.
func CommitCount(t *testing.T, dir string) int {
	t.Helper()
	cmd := exec.Command("git", "-C", dir, "rev-list", "--count", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		t.Fatalf("unexpected rev-list output %q", out)
	}
	return n
}

// FilesInHead lists the paths changed by the HEAD commit.
func FilesInHead(t *testing.T, dir string) []string {
	t.Helper()
	out := Git(t, dir, "show", "--name-only", "--pretty=format:", "HEAD")
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}
