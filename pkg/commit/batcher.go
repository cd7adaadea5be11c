// Package commit turns the set of repo paths touched by one command into at
// most one commit.
package commit

import (
	"context"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/types"
	"github.com/Duckilicious/sggit/pkg/vcs"
)

// Outcome describes what the batcher did.
type Outcome struct {
	Status  types.CommitStatus
	ID      string
	Message string
	Files   []string
}

// Summary converts the outcome for command results.
func (o *Outcome) Summary() *types.CommitSummary {
	if o == nil {
		return nil
	}
	return &types.CommitSummary{Status: o.Status, ID: o.ID, Message: o.Message, Files: o.Files}
}

// BatchAndCommit stages exactly the touched paths and commits them with a
// message from builder. An empty set is reported as CommitNothingToDo without
// touching the repository; staged paths whose content did not change are
// reported as CommitNoChanges. Staging or commit failures are returned as
// errors.ErrVCS and nothing is retried.
func BatchAndCommit(ctx context.Context, repo vcs.Repository, touched []Entry, builder *MessageBuilder) (*Outcome, error) {
	logger := logging.GetLogger("commit")

	entries := dedupe(touched)
	if len(entries) == 0 {
		logger.Debug().Msg("Nothing touched, no commit")
		return &Outcome{Status: types.CommitNothingToDo}, nil
	}

	files := make([]string, len(entries))
	for i, e := range entries {
		files[i] = e.RepoPath
	}

	message, err := builder.Build(entries)
	if err != nil {
		return nil, err
	}

	if err := repo.Stage(ctx, files); err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "failed to stage files")
	}

	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "failed to inspect staged changes")
	}
	if !staged {
		logger.Info().Int("count", len(files)).Msg("Files unchanged, no commit")
		return &Outcome{Status: types.CommitNoChanges, Files: files}, nil
	}

	id, err := repo.Commit(ctx, message)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "failed to commit")
	}

	logger.Info().Str("commit", id).Int("count", len(files)).Msg("Committed")
	return &Outcome{Status: types.CommitCreated, ID: id, Message: message, Files: files}, nil
}

// FromCopied builds entries from copy engine output.
func FromCopied(copied []types.CopiedFile) []Entry {
	entries := make([]Entry, len(copied))
	for i, c := range copied {
		entries[i] = Entry{RepoPath: c.RepoPath, ModTime: c.SourceModTime}
	}
	return entries
}

// dedupe keeps the first occurrence of each repo path.
func dedupe(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e.RepoPath] {
			continue
		}
		seen[e.RepoPath] = true
		out = append(out, e)
	}
	return out
}
