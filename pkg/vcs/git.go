package vcs

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Duckilicious/sggit/pkg/config"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
)

// GitBackend implements Backend by shelling out to the git command
type GitBackend struct {
	Binary      string
	AuthorName  string
	AuthorEmail string
}

// NewGitBackend creates a git backend from configuration.
func NewGitBackend(cfg *config.Config) *GitBackend {
	b := &GitBackend{Binary: "git"}
	if cfg != nil {
		if cfg.VCS.GitBinary != "" {
			b.Binary = cfg.VCS.GitBinary
		}
		b.AuthorName = cfg.Commit.AuthorName
		b.AuthorEmail = cfg.Commit.AuthorEmail
	}
	return b
}

// Init creates path if needed and runs git init in it.
func (b *GitBackend) Init(ctx context.Context, path string) (Repository, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", path)
	}
	repo := &gitRepo{backend: b, root: path}
	if _, err := repo.git(ctx, "init"); err != nil {
		return nil, err
	}
	logger := logging.GetLogger("vcs")
	logger.Info().Str("path", path).Msg("Initialized git repository")
	return repo, nil
}

// Open returns the repository rooted exactly at path. A directory that is
// not a work tree root (including a subdirectory of another repository)
// yields errors.ErrVCSNotARepo.
func (b *GitBackend) Open(ctx context.Context, path string) (Repository, error) {
	repo := &gitRepo{backend: b, root: path}
	notARepo := func() error {
		return errors.Newf(errors.ErrVCSNotARepo, "%s is not a git repository", path).
			WithDetail("path", path)
	}

	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return nil, notARepo()
	}

	out, err := repo.git(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, notARepo()
	}
	if !sameDir(strings.TrimSpace(out), path) {
		return nil, notARepo()
	}
	return repo, nil
}

// IsRepository reports whether path is the root of a git work tree.
func (b *GitBackend) IsRepository(ctx context.Context, path string) bool {
	_, err := b.Open(ctx, path)
	return err == nil
}

func sameDir(a, b string) bool {
	ra, errA := filepath.EvalSymlinks(a)
	rb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return filepath.Clean(ra) == filepath.Clean(rb)
}

type gitRepo struct {
	backend *GitBackend
	root    string
}

func (r *gitRepo) Root() string { return r.root }

// Stage adds the given repo-relative paths to the index.
func (r *gitRepo) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, toNative(paths)...)
	_, err := r.git(ctx, args...)
	return err
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *gitRepo) HasStagedChanges(ctx context.Context) (bool, error) {
	cmd := r.command(ctx, "diff", "--cached", "--quiet")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, r.failure(err, stderr.String(), "diff")
}

// Commit records the index with message and returns the new commit id.
func (r *gitRepo) Commit(ctx context.Context, message string) (string, error) {
	if _, err := r.git(ctx, r.identityArgs("commit", "--quiet", "-m", message)...); err != nil {
		return "", err
	}
	out, err := r.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	logger := logging.GetLogger("vcs")
	logger.Info().Str("commit", id).Msg("Created commit")
	return id, nil
}

// Status parses git status --porcelain.
func (r *gitRepo) Status(ctx context.Context) ([]StatusEntry, error) {
	out, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// Run executes an arbitrary git command in the repository, streaming its
// output.
func (r *gitRepo) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := r.command(ctx, r.identityArgs(args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrVCS, "git %s failed", strings.Join(args, " ")).
			WithDetail("args", args)
	}
	return nil
}

func (r *gitRepo) command(ctx context.Context, args ...string) *exec.Cmd {
	full := append([]string{"-C", r.root}, args...)
	logger := logging.GetLogger("vcs")
	logger.Trace().Strs("args", full).Msg("Running git")
	return exec.CommandContext(ctx, r.backend.Binary, full...)
}

// git runs a command and returns stdout. Failures carry stderr.
func (r *gitRepo) git(ctx context.Context, args ...string) (string, error) {
	cmd := r.command(ctx, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", r.failure(err, stderr.String(), args...)
	}
	return stdout.String(), nil
}

func (r *gitRepo) failure(err error, stderr string, args ...string) error {
	msg := "git " + strings.Join(args, " ") + " failed"
	if s := strings.TrimSpace(stderr); s != "" {
		msg += ": " + s
	}
	return errors.Wrap(err, errors.ErrVCS, msg).
		WithDetail("repo", r.root)
}

// identityArgs prefixes -c user.name / -c user.email when configured.
func (r *gitRepo) identityArgs(args ...string) []string {
	var out []string
	if r.backend.AuthorName != "" {
		out = append(out, "-c", "user.name="+r.backend.AuthorName)
	}
	if r.backend.AuthorEmail != "" {
		out = append(out, "-c", "user.email="+r.backend.AuthorEmail)
	}
	return append(out, args...)
}

func toNative(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.FromSlash(p)
	}
	return out
}

func parsePorcelain(out string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		entries = append(entries, StatusEntry{Code: line[:2], Path: line[3:]})
	}
	return entries
}
