// Package untrack implements `sggit untrack`.
package untrack

import (
	"context"
	"os"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/types"
)

// UntrackOptions holds options for the untrack command.
type UntrackOptions struct {
	RepoPath string
	// All drops the artifact for every platform.
	All bool
	// KeepFile leaves the repo copy in place when the artifact goes away.
	KeepFile bool

	internal.LoadOptions
}

// Untrack removes this platform's binding of RepoPath (or the whole artifact
// with All). When the artifact disappears its repo copy is deleted unless
// KeepFile is set. Real files are never touched.
func Untrack(ctx context.Context, opts UntrackOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.untrack")

	repoPath, err := paths.ValidateRepoPath(opts.RepoPath)
	if err != nil {
		return nil, err
	}

	loadOpts := opts.LoadOptions
	loadOpts.SkipRepository = true
	c, err := internal.Load(ctx, loadOpts)
	if err != nil {
		return nil, err
	}

	artifact, ok := c.Store.Find(repoPath)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "%s is not tracked", repoPath).
			WithDetail("repo_path", repoPath)
	}

	result := c.NewResult("untrack")
	removed := opts.All
	if opts.All {
		err = c.Store.RemoveArtifact(repoPath)
	} else {
		removed, err = c.Store.RemoveBinding(repoPath, c.Platform())
	}
	if err != nil {
		return nil, err
	}

	report := types.FileReport{RepoPath: repoPath, Status: types.FileRemoved}
	if b, ok := artifact.Binding(c.Platform()); ok {
		report.RealPath = b.Path
	}
	if !removed {
		report.Detail = "still tracked on other platforms"
	}

	if removed && !opts.KeepFile {
		repoFile, err := paths.RepoFilePath(c.Root(), repoPath)
		if err != nil {
			return nil, err
		}
		if err := c.FS.Remove(repoFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", repoFile).
				WithDetail("path", repoFile)
		}
		report.Detail = "repository copy deleted"
	}
	result.Add(report)

	if err := c.SaveStore(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("repo_path", repoPath).
		Bool("artifact_removed", removed).
		Bool("keep_file", opts.KeepFile).
		Msg("Untracked")
	return result, nil
}
