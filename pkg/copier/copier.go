// Package copier moves whole files between their real paths and the
// repository. It creates missing parent directories, skips pairs whose
// source and destination are the same file, and keeps going when a single
// pair fails.
package copier

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/filesystem"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/types"
	"go.uber.org/multierr"
)

// Failure records a pair that could not be copied.
type Failure struct {
	Pair types.Pair
	Err  error
}

// Result is the outcome of a batch copy.
type Result struct {
	// Copied lists written pairs with the source modification time
	Copied []types.CopiedFile
	// Skipped lists pairs whose source and destination are the same file
	Skipped []types.Pair
	// Failures lists pairs that could not be copied, in input order
	Failures []Failure
}

// Err combines every failure into one error, or returns nil.
func (r *Result) Err() error {
	var combined error
	for _, f := range r.Failures {
		combined = multierr.Append(combined, f.Err)
	}
	return combined
}

// RepoPaths returns the repo paths of the copied pairs, in copy order.
func (r *Result) RepoPaths() []string {
	out := make([]string, len(r.Copied))
	for i, c := range r.Copied {
		out[i] = c.RepoPath
	}
	return out
}

// Engine copies pairs on a filesystem.
type Engine struct {
	fs types.FS
}

// New creates a copy engine.
func New(fsys types.FS) *Engine {
	return &Engine{fs: fsys}
}

type job struct {
	pair     types.Pair
	src, dst string
	// throughLink writes to the target when dst is a symlink
	throughLink bool
}

// Copy copies every pair in the given direction. Every repo path is checked
// against the path policy first; a violation aborts the batch before any
// file is touched. Per-pair failures are collected in the result and do not
// stop the remaining pairs.
func (e *Engine) Copy(pairs []types.Pair, repoRoot string, direction types.Direction) (*Result, error) {
	logger := logging.GetLogger("copier")

	jobs := make([]job, 0, len(pairs))
	for _, pair := range pairs {
		repoFile, err := paths.RepoFilePath(repoRoot, pair.RepoPath)
		if err != nil {
			return nil, err
		}
		j := job{pair: pair}
		switch direction {
		case types.ToRepo:
			j.src, j.dst = pair.RealPath, repoFile
		case types.FromRepo:
			j.src, j.dst = repoFile, pair.RealPath
			j.throughLink = true
		default:
			return nil, errors.Newf(errors.ErrInvalidInput, "unknown copy direction %d", int(direction))
		}
		jobs = append(jobs, j)
	}

	result := &Result{}
	for _, j := range jobs {
		log := logger.With().
			Str("repo_path", j.pair.RepoPath).
			Str("real_path", j.pair.RealPath).
			Str("direction", direction.String()).
			Logger()

		if e.sameFile(j.src, j.dst) {
			log.Debug().Msg("Source and destination are the same file, skipping")
			result.Skipped = append(result.Skipped, j.pair)
			continue
		}

		dst := j.dst
		if j.throughLink {
			resolved, err := e.resolveLink(dst)
			if err != nil {
				log.Warn().Err(err).Msg("Copy failed")
				result.Failures = append(result.Failures, Failure{Pair: j.pair, Err: err})
				continue
			}
			dst = resolved
		}

		modTime, err := e.copyFile(j.src, dst)
		if err != nil {
			log.Warn().Err(err).Msg("Copy failed")
			result.Failures = append(result.Failures, Failure{Pair: j.pair, Err: err})
			continue
		}

		log.Debug().Time("mod_time", modTime).Msg("Copied")
		result.Copied = append(result.Copied, types.CopiedFile{Pair: j.pair, SourceModTime: modTime})
	}

	logger.Info().
		Str("direction", direction.String()).
		Int("copied", len(result.Copied)).
		Int("skipped", len(result.Skipped)).
		Int("failed", len(result.Failures)).
		Msg("Copy finished")

	return result, nil
}

// sameFile reports whether src and dst name the same file, either
// lexically or, when both exist, by identity.
func (e *Engine) sameFile(src, dst string) bool {
	if paths.SamePath(src, dst) {
		return true
	}
	srcInfo, err := e.fs.Stat(src)
	if err != nil {
		return false
	}
	dstInfo, err := e.fs.Stat(dst)
	if err != nil {
		return false
	}
	return os.SameFile(srcInfo, dstInfo)
}

// resolveLink returns the final target of path when path is a symlink, so
// the rename lands on the linked file and the link itself survives.
func (e *Engine) resolveLink(path string) (string, error) {
	info, err := e.fs.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve symlink %s", path).
			WithDetail("path", path)
	}
	return resolved, nil
}

// copyFile writes src over dst atomically, keeping the source mode and
// modification time. It returns the source modification time.
func (e *Engine) copyFile(src, dst string) (time.Time, error) {
	info, err := e.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, errors.Wrapf(err, errors.ErrFileNotFound, "source %s does not exist", src).
				WithDetail("path", src)
		}
		return time.Time{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src).
			WithDetail("path", src)
	}
	if !info.Mode().IsRegular() {
		return time.Time{}, errors.Newf(errors.ErrCopy, "source %s is not a regular file", src).
			WithDetail("path", src)
	}

	if dstInfo, err := e.fs.Stat(dst); err == nil && dstInfo.IsDir() {
		return time.Time{}, errors.Newf(errors.ErrCopy, "destination %s is a directory", dst).
			WithDetail("path", dst)
	}

	dir := filepath.Dir(dst)
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		return time.Time{}, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail("path", dir)
	}

	data, err := e.fs.ReadFile(src)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src).
			WithDetail("path", src)
	}

	if err := filesystem.WriteFileAtomic(e.fs, dst, data, info.Mode().Perm()); err != nil {
		return time.Time{}, errors.Wrapf(err, errors.ErrCopy, "failed to write %s", dst).
			WithDetail("path", dst)
	}

	modTime := info.ModTime()
	if err := e.fs.Chtimes(dst, modTime, modTime); err != nil {
		return time.Time{}, errors.Wrapf(err, errors.ErrCopy, "failed to set modification time on %s", dst).
			WithDetail("path", dst)
	}
	return modTime, nil
}
