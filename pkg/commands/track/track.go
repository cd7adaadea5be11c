// Package track implements `sggit track`: bind a real file on this platform
// to a repo path.
package track

import (
	"context"
	"path/filepath"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/types"
)

// TrackOptions holds options for the track command.
type TrackOptions struct {
	// RealPath is the file on this machine; ~ is expanded.
	RealPath string
	// RepoPath defaults to the base name of RealPath.
	RepoPath string

	internal.LoadOptions
}

// Track records RealPath as this platform's location of RepoPath and saves
// the mapping file. Nothing is copied or committed.
func Track(ctx context.Context, opts TrackOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.track")

	if opts.RealPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a file path is required")
	}

	loadOpts := opts.LoadOptions
	loadOpts.AllowMissingStore = true
	loadOpts.SkipRepository = true
	c, err := internal.Load(ctx, loadOpts)
	if err != nil {
		return nil, err
	}

	realPath, err := paths.Absolute(opts.RealPath)
	if err != nil {
		return nil, err
	}
	info, err := c.FS.Stat(realPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "cannot track %s", realPath).
			WithDetail("real_path", realPath)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a regular file", realPath).
			WithDetail("real_path", realPath)
	}

	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath = filepath.Base(realPath)
	}
	repoPath, err = paths.ValidateRepoPath(repoPath)
	if err != nil {
		return nil, err
	}

	if err := c.Store.AddBinding(repoPath, c.Platform(), realPath); err != nil {
		return nil, err
	}
	if err := c.SaveStore(); err != nil {
		return nil, err
	}

	result := c.NewResult("track")
	result.Add(types.FileReport{RepoPath: repoPath, RealPath: realPath, Status: types.FileTracked})
	result.Message = "run 'sggit update' to copy it into the repository"

	logger.Info().
		Str("repo_path", repoPath).
		Str("real_path", realPath).
		Str("platform", c.Platform().String()).
		Msg("Tracked")
	return result, nil
}
