package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/Duckilicious/sggit/pkg/errors"
)

// maxPathLength is a common filesystem limit
const maxPathLength = 4096

// ValidateRepoPath checks a repo path against the repository path policy and
// returns its normalized slash form.
//
// A repo path must be non-empty, relative, free of null bytes, must not be
// the repository root itself, must not climb above the root and must not
// point into the .git directory. Violations carry errors.ErrPathPolicy.
func ValidateRepoPath(repoPath string) (string, error) {
	policy := func(reason string) error {
		return errors.Newf(errors.ErrPathPolicy, "repo path %q %s", repoPath, reason).
			WithDetail("repo_path", repoPath)
	}

	if strings.TrimSpace(repoPath) == "" {
		return "", policy("is empty")
	}
	if strings.Contains(repoPath, "\x00") {
		return "", policy("contains null bytes")
	}
	if len(repoPath) > maxPathLength {
		return "", policy("exceeds maximum length")
	}

	slashed := strings.ReplaceAll(repoPath, "\\", "/")
	if path.IsAbs(slashed) || filepath.IsAbs(repoPath) || filepath.VolumeName(repoPath) != "" {
		return "", policy("must be relative to the repository root")
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", policy("refers to the repository root")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", policy("escapes the repository root")
	}
	if cleaned == ".git" || strings.HasPrefix(cleaned, ".git/") {
		return "", policy("points into the .git directory")
	}

	return cleaned, nil
}

// RepoFilePath validates repoPath and joins it to repoRoot.
func RepoFilePath(repoRoot, repoPath string) (string, error) {
	cleaned, err := ValidateRepoPath(repoPath)
	if err != nil {
		return "", err
	}
	full := filepath.Join(repoRoot, filepath.FromSlash(cleaned))
	if !ContainsPath(repoRoot, full) {
		return "", errors.Newf(errors.ErrPathPolicy, "repo path %q escapes the repository root", repoPath).
			WithDetail("repo_path", repoPath)
	}
	return full, nil
}

// ContainsPath checks if child is contained within parent.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// SamePath reports whether two paths name the same location after cleaning.
func SamePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
