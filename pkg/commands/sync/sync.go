// Package sync implements `sggit sync`: push repository content out to the
// real paths of this platform wherever the sync policy says so.
package sync

import (
	"context"

	"github.com/Duckilicious/sggit/pkg/commands/internal"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/syncer"
	"github.com/Duckilicious/sggit/pkg/types"
)

// SyncOptions holds options for the sync command.
type SyncOptions struct {
	// DryRun plans without copying or saving.
	DryRun bool

	internal.LoadOptions
}

// Sync plans every resolved pair with the configured policy, copies the
// CopyToExternal items from the repository, records last_synced in the
// mapping file and hands the (always empty) set of repo writes to the
// commit batcher.
func Sync(ctx context.Context, opts SyncOptions) (*types.CommandResult, error) {
	logger := logging.GetLogger("commands.sync")

	c, err := internal.Load(ctx, opts.LoadOptions)
	if err != nil {
		return nil, err
	}

	policy, err := syncer.PolicyByName(c.Config.Sync.Policy)
	if err != nil {
		return nil, err
	}
	s := syncer.New(c.FS, policy)

	items, err := s.Plan(c.Pairs(), c.Root())
	if err != nil {
		return nil, err
	}

	result := c.NewResult("sync")
	result.DryRun = opts.DryRun

	if opts.DryRun {
		for _, item := range items {
			status := types.FileSkipped
			if item.Decision == syncer.CopyToExternal {
				status = types.FilePlanned
			}
			result.Add(types.FileReport{
				RepoPath: item.Pair.RepoPath,
				RealPath: item.Pair.RealPath,
				Status:   status,
				Detail:   item.Reason,
			})
		}
		logger.Info().Int("count", len(items)).Msg("Dry run, nothing copied")
		return result, nil
	}

	res, err := s.Apply(items, c.Root(), c.Store, c.Platform())
	if err != nil {
		return nil, err
	}

	copied := make(map[string]bool, len(res.Copied))
	for _, cf := range res.Copied {
		copied[cf.RepoPath] = true
	}
	failed := make(map[string]string, len(res.Failures))
	for _, f := range res.Failures {
		failed[f.Pair.RepoPath] = f.Err.Error()
	}
	for _, item := range items {
		report := types.FileReport{RepoPath: item.Pair.RepoPath, RealPath: item.Pair.RealPath, Detail: item.Reason}
		switch {
		case copied[item.Pair.RepoPath]:
			report.Status = types.FileCopied
		case failed[item.Pair.RepoPath] != "":
			report.Status = types.FileFailed
			report.Detail = failed[item.Pair.RepoPath]
		default:
			report.Status = types.FileSkipped
		}
		result.Add(report)
	}

	if len(res.Copied) > 0 {
		if err := c.SaveStore(); err != nil {
			return nil, err
		}
	}

	// Sync writes nothing into the repository, so the batch is empty.
	outcome, err := c.Commit(ctx, nil, "", "Sync")
	if err != nil {
		return nil, err
	}
	result.Commit = outcome.Summary()

	logger.Info().
		Int("count", len(items)).
		Int("copied", len(res.Copied)).
		Int("failed", len(res.Failures)).
		Msg("Command finished")
	return result, res.Err()
}
