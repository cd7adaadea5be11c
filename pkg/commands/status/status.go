// Package status implements `sggit status`: a read-only comparison of every
// file bound on this platform with its repository copy.
package status

import (
	"context"
	"os"
	"time"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/internal/hashutil"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/Duckilicious/sggit/pkg/platform"
	"github.com/Duckilicious/sggit/pkg/types"
)

// StatusOptions holds options for the status command.
type StatusOptions struct {
	internal.LoadOptions
}

type side struct {
	exists  bool
	modTime time.Time
	path    string
}

// Status reports, per resolved pair, whether the two copies are identical
// and otherwise which one is newer. Artifacts without a binding for this
// platform and the repository's own working tree status are listed too.
// Nothing is written.
func Status(ctx context.Context, opts StatusOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.status")

	c, err := internal.Load(ctx, opts.LoadOptions)
	if err != nil {
		return nil, err
	}

	result := c.NewResult("status")
	for _, pair := range c.Pairs() {
		report, err := compare(c.FS, c.Root(), pair)
		if err != nil {
			return nil, err
		}
		result.Add(report)
	}

	for _, repoPath := range platform.Unbound(c.Store, c.Platform()) {
		result.Add(types.FileReport{RepoPath: repoPath, Status: types.FileNotBound})
	}

	entries, err := c.Repo.Status(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		result.VCSStatus = append(result.VCSStatus, e.String())
	}

	logger.Info().
		Int("files", len(result.Files)).
		Int("changed", len(result.VCSStatus)).
		Msg("Command finished")
	return result, nil
}

func compare(fsys types.FS, root string, pair types.Pair) (types.FileReport, error) {
	report := types.FileReport{RepoPath: pair.RepoPath, RealPath: pair.RealPath}

	repoFile, err := paths.RepoFilePath(root, pair.RepoPath)
	if err != nil {
		return report, err
	}
	repo, err := stat(fsys, repoFile)
	if err != nil {
		return report, err
	}
	ext, err := stat(fsys, pair.RealPath)
	if err != nil {
		return report, err
	}

	switch {
	case !repo.exists && !ext.exists:
		report.Status = types.FileMissingRepo
		report.Detail = "missing on both sides"
		return report, nil
	case !repo.exists:
		report.Status = types.FileMissingRepo
		report.Detail = "run 'sggit update'"
		return report, nil
	case !ext.exists:
		report.Status = types.FileMissingExternal
		report.Detail = "run 'sggit sync'"
		return report, nil
	}

	repoSum, err := hashutil.CalculateFileChecksum(fsys, repo.path)
	if err != nil {
		return report, err
	}
	extSum, err := hashutil.CalculateFileChecksum(fsys, ext.path)
	if err != nil {
		return report, err
	}

	switch {
	case repoSum == extSum:
		report.Status = types.FileInSync
	case ext.modTime.After(repo.modTime):
		report.Status = types.FileExternalNewer
	default:
		report.Status = types.FileRepoNewer
	}
	return report, nil
}

func stat(fsys types.FS, path string) (side, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return side{path: path}, nil
		}
		return side{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
			WithDetail("path", path)
	}
	return side{exists: true, modTime: info.ModTime(), path: path}, nil
}
